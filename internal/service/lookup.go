package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"code-jam-service/internal/model"
	"code-jam-service/internal/repository"
)

// MsgNotParticipant показывается, если у пользователя нет текущей команды.
const MsgNotParticipant = ":x: It seems like the user is not a participant!"

// Lookup содержит запросы без побочных эффектов: текущая команда участника,
// категории и роли джема, канал команды.
type Lookup struct {
	guild Guild
	teams TeamRepository
	users UserRepository
	log   *slog.Logger
}

// NewLookup создаёт набор запросов поверх сервера и API управления.
func NewLookup(guild Guild, teams TeamRepository, users UserRepository, log *slog.Logger) *Lookup {
	return &Lookup{guild: guild, teams: teams, users: users, log: log}
}

// TeamOf возвращает текущую команду участника одним запросом к API управления.
func (l *Lookup) TeamOf(ctx context.Context, memberID string) (model.UserTeam, error) {
	ut, err := l.users.CurrentTeam(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.UserTeam{}, ErrNotFound(MsgNotParticipant)
		}
		l.log.Error("failed to get current team",
			slog.String("user_id", memberID),
			slog.Any("err", err),
		)
		return model.UserTeam{}, ErrUpstream(err)
	}
	return ut, nil
}

// JamCategories возвращает категории сервера с зарезервированным именем джема.
func (l *Lookup) JamCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := l.guild.Categories(ctx)
	if err != nil {
		return nil, ErrUpstream(err)
	}
	return FilterJamCategories(categories), nil
}

// JamRoles возвращает роли команд текущего джема. Неразрешимые идентификаторы пропускаются.
// Ошибка означает, что API управления недоступно, а не что команд нет.
func (l *Lookup) JamRoles(ctx context.Context) ([]model.Role, error) {
	guildRoles, err := l.guild.Roles(ctx)
	if err != nil {
		return nil, ErrUpstream(err)
	}
	return l.JamRolesFrom(ctx, guildRoles)
}

// JamRolesFrom сопоставляет команды текущего джема с уже полученным списком ролей сервера.
func (l *Lookup) JamRolesFrom(ctx context.Context, guildRoles []model.Role) ([]model.Role, error) {
	teams, err := l.teams.ListCurrentJam(ctx)
	if err != nil {
		l.log.Error("could not fetch roles from the management API", slog.Any("err", err))
		return nil, ErrUpstream(err)
	}

	byID := make(map[string]model.Role, len(guildRoles))
	for _, r := range guildRoles {
		byID[r.ID] = r
	}

	roles := make([]model.Role, 0, len(teams))
	for _, t := range teams {
		if r, ok := byID[t.DiscordRoleID]; ok {
			roles = append(roles, r)
		}
	}
	return roles, nil
}

// TeamChannelByName ищет канал команды по имени канала или по отображаемому имени команды.
func (l *Lookup) TeamChannelByName(ctx context.Context, name string) (model.Channel, bool, error) {
	categories, err := l.JamCategories(ctx)
	if err != nil {
		return model.Channel{}, false, err
	}
	for _, c := range categories {
		for _, ch := range c.Channels {
			if name == ch.Name || name == DisplayName(ch.Name) {
				return ch, true, nil
			}
		}
	}
	return model.Channel{}, false, nil
}

// TeamChannelByMember ищет канал команды, доступ к которому выдан участнику
// напрямую или через одну из его ролей.
func (l *Lookup) TeamChannelByMember(ctx context.Context, member model.Member) (model.Channel, bool, error) {
	categories, err := l.JamCategories(ctx)
	if err != nil {
		return model.Channel{}, false, err
	}
	for _, c := range categories {
		for _, ch := range c.Channels {
			for _, o := range ch.Overwrites {
				switch {
				case o.Type == model.OverwriteMember && o.ID == member.ID:
					return ch, true, nil
				case o.Type == model.OverwriteRole && member.HasRole(o.ID):
					return ch, true, nil
				}
			}
		}
	}
	return model.Channel{}, false, nil
}

// FilterJamCategories оставляет только категории джема.
func FilterJamCategories(categories []model.Category) []model.Category {
	out := make([]model.Category, 0)
	for _, c := range categories {
		if c.Name == JamCategoryName {
			out = append(out, c)
		}
	}
	return out
}

// DisplayName восстанавливает имя команды из имени канала: дефисы в пробелы, каждое слово с заглавной.
// Преобразование необратимо: пунктуация, потерянная при создании канала, не восстанавливается.
func DisplayName(channelName string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(channelName, "-", " "))
}

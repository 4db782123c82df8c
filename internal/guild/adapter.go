// Package guild реализует операции над сервером поверх discordgo.
package guild

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/bwmarrin/discordgo"

	"code-jam-service/internal/model"
)

// API описывает методы discordgo.Session, которые использует адаптер.
type API interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildRoleCreate(guildID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)
	GuildRoleDelete(guildID, roleID string, options ...discordgo.RequestOption) error
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// Adapter работает с одним сервером.
type Adapter struct {
	api     API
	state   *discordgo.State
	guildID string
}

// New создаёт адаптер. state может быть nil, тогда участники всегда запрашиваются через REST.
func New(api API, state *discordgo.State, guildID string) *Adapter {
	return &Adapter{api: api, state: state, guildID: guildID}
}

// NewFromSession создаёт адаптер поверх сессии discordgo.
func NewFromSession(s *discordgo.Session, guildID string) *Adapter {
	return New(s, s.State, guildID)
}

// Member возвращает участника сервера, сначала из кэша состояния.
func (a *Adapter) Member(ctx context.Context, userID string) (model.Member, error) {
	if a.state != nil {
		if m, err := a.state.Member(a.guildID, userID); err == nil {
			return toMember(m), nil
		}
	}
	m, err := a.api.GuildMember(a.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return model.Member{}, fmt.Errorf("get member %s: %w", userID, err)
	}
	return toMember(m), nil
}

// Categories возвращает категории сервера вместе с их текстовыми каналами.
func (a *Adapter) Categories(ctx context.Context) ([]model.Category, error) {
	channels, err := a.api.GuildChannels(a.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return GroupCategories(channels), nil
}

// Roles возвращает роли сервера.
func (a *Adapter) Roles(ctx context.Context) ([]model.Role, error) {
	roles, err := a.api.GuildRoles(a.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	out := make([]model.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, model.Role{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// CreateRole создаёт роль без прав с возможностью упоминания.
func (a *Adapter) CreateRole(ctx context.Context, name string) (model.Role, error) {
	mentionable := true
	var perms int64
	r, err := a.api.GuildRoleCreate(a.guildID, &discordgo.RoleParams{
		Name:        name,
		Mentionable: &mentionable,
		Permissions: &perms,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return model.Role{}, fmt.Errorf("create role %q: %w", name, err)
	}
	return model.Role{ID: r.ID, Name: r.Name}, nil
}

// CreateCategory создаёт категорию, скрытую от @everyone.
func (a *Adapter) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	ch, err := a.api.GuildChannelCreateComplex(a.guildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildCategory,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			// у роли @everyone тот же идентификатор, что и у сервера
			{ID: a.guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return model.Category{}, fmt.Errorf("create category %q: %w", name, err)
	}
	return model.Category{ID: ch.ID, Name: ch.Name, Channels: make([]model.Channel, 0)}, nil
}

// CreateChannel создаёт текстовый канал в категории, видимый только роли roleID.
func (a *Adapter) CreateChannel(ctx context.Context, categoryID, name, roleID string) (model.Channel, error) {
	ch, err := a.api.GuildChannelCreateComplex(a.guildID, discordgo.GuildChannelCreateData{
		Name:     ChannelName(name),
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: categoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: a.guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
			{ID: roleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionViewChannel},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return model.Channel{}, fmt.Errorf("create channel %q: %w", name, err)
	}
	return toChannel(ch), nil
}

// AddRole выдаёт роль участнику.
func (a *Adapter) AddRole(ctx context.Context, userID, roleID string) error {
	if err := a.api.GuildMemberRoleAdd(a.guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("add role %s to %s: %w", roleID, userID, err)
	}
	return nil
}

// RemoveRole снимает роль с участника.
func (a *Adapter) RemoveRole(ctx context.Context, userID, roleID string) error {
	if err := a.api.GuildMemberRoleRemove(a.guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("remove role %s from %s: %w", roleID, userID, err)
	}
	return nil
}

// DeleteChannel удаляет канал или категорию.
func (a *Adapter) DeleteChannel(ctx context.Context, channelID string) error {
	if _, err := a.api.ChannelDelete(channelID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete channel %s: %w", channelID, err)
	}
	return nil
}

// DeleteRole удаляет роль.
func (a *Adapter) DeleteRole(ctx context.Context, roleID string) error {
	if err := a.api.GuildRoleDelete(a.guildID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete role %s: %w", roleID, err)
	}
	return nil
}

// GroupCategories раскладывает каналы сервера по категориям в порядке позиций.
// Каналы вне категорий отбрасываются, пустые категории возвращаются с пустым списком.
func GroupCategories(channels []*discordgo.Channel) []model.Category {
	sorted := make([]*discordgo.Channel, len(channels))
	copy(sorted, channels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	index := make(map[string]int)
	categories := make([]model.Category, 0)
	for _, ch := range sorted {
		if ch.Type != discordgo.ChannelTypeGuildCategory {
			continue
		}
		index[ch.ID] = len(categories)
		categories = append(categories, model.Category{ID: ch.ID, Name: ch.Name, Channels: make([]model.Channel, 0)})
	}

	for _, ch := range sorted {
		if ch.Type == discordgo.ChannelTypeGuildCategory || ch.ParentID == "" {
			continue
		}
		if i, ok := index[ch.ParentID]; ok {
			categories[i].Channels = append(categories[i].Channels, toChannel(ch))
		}
	}
	return categories
}

// ChannelName приводит имя команды к виду, который платформа использует для текстовых каналов.
func ChannelName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !dash && b.Len() > 0 {
				b.WriteRune('-')
				dash = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			dash = false
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func toMember(m *discordgo.Member) model.Member {
	out := model.Member{Roles: append([]string(nil), m.Roles...)}
	if m.User != nil {
		out.ID = m.User.ID
		out.Username = m.User.Username
	}
	return out
}

func toChannel(ch *discordgo.Channel) model.Channel {
	out := model.Channel{
		ID:         ch.ID,
		Name:       ch.Name,
		ParentID:   ch.ParentID,
		Overwrites: make([]model.Overwrite, 0, len(ch.PermissionOverwrites)),
	}
	for _, o := range ch.PermissionOverwrites {
		t := model.OverwriteRole
		if o.Type == discordgo.PermissionOverwriteTypeMember {
			t = model.OverwriteMember
		}
		out.Overwrites = append(out.Overwrites, model.Overwrite{ID: o.ID, Type: t})
	}
	return out
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"code-jam-service/internal/model"
	"code-jam-service/internal/repository"
)

// UserRepository описывает контракт API управления для членства пользователей.
type UserRepository interface {
	CurrentTeam(ctx context.Context, userID string) (model.UserTeam, error)
	AddToTeam(ctx context.Context, teamID, userID string, isLeader bool) error
	RemoveFromTeam(ctx context.Context, teamID, userID string) error
}

// Сообщения операций над членством.
const (
	MsgTeamOrUserNotFound = ":x: Team or user could not be found!"
	MsgNotOnTeam          = ":x: The member given is not part of the team! (Might have been removed already)"
)

// MoveResult описывает успешное перемещение участника.
type MoveResult struct {
	Member   model.Member
	From     model.Team
	To       model.Team
	IsLeader bool
}

// Message возвращает сообщение об успехе для оператора.
func (r MoveResult) Message() string {
	return fmt.Sprintf("Success! Participant %s has been moved from %s to %s",
		r.Member.Mention(), r.From.Name, r.To.Name)
}

// RemoveResult описывает успешное удаление участника из команды.
type RemoveResult struct {
	Member model.Member
	Team   model.Team
}

// Message возвращает сообщение об успехе для оператора.
func (r RemoveResult) Message() string {
	return fmt.Sprintf("Successfully removed %s from team %s", r.Member.Mention(), r.Team.Name)
}

// UserService синхронизирует членство участников: запись в API управления, затем роли на сервере.
// Роли меняются только после успешной мутации в API; компенсации при поздних ошибках нет.
type UserService struct {
	guild  Guild
	teams  TeamRepository
	users  UserRepository
	lookup *Lookup
	log    *slog.Logger
}

// NewUserService создаёт новый сервис для операций над членством.
func NewUserService(guild Guild, teams TeamRepository, users UserRepository, lookup *Lookup, log *slog.Logger) *UserService {
	return &UserService{guild: guild, teams: teams, users: users, lookup: lookup, log: log}
}

// Info возвращает текущую команду участника. Если API управления не знает канал команды,
// канал ищется на сервере: сначала по имени команды, затем по правам участника.
func (s *UserService) Info(ctx context.Context, member model.Member) (model.UserTeam, error) {
	ut, err := s.lookup.TeamOf(ctx, member.ID)
	if err != nil {
		return model.UserTeam{}, err
	}
	if ut.Team.DiscordChannelID == "" {
		ut.Team.DiscordChannelID = s.teamChannel(ctx, member, ut.Team.Name)
	}
	return ut, nil
}

// teamChannel возвращает идентификатор канала команды или пустую строку, если канал не найден.
func (s *UserService) teamChannel(ctx context.Context, member model.Member, team string) string {
	ch, ok, err := s.lookup.TeamChannelByName(ctx, team)
	if err == nil && !ok {
		ch, ok, err = s.lookup.TeamChannelByMember(ctx, member)
	}
	if err != nil {
		s.log.Warn("could not look up team channel",
			slog.String("team", team),
			slog.Any("err", err),
		)
		return ""
	}
	if !ok {
		return ""
	}
	return ch.ID
}

// Move переводит участника в команду target, сохраняя признак лидерства.
// Если добавление в новую команду не удалось, снятая роль старой команды не возвращается.
func (s *UserService) Move(ctx context.Context, member model.Member, target string) (MoveResult, error) {
	to, err := s.teams.FindByName(ctx, target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return MoveResult{}, ErrNotFound(fmt.Sprintf(":x: Team `%s` does not exist in the database!", target))
		}
		return MoveResult{}, s.upstream("find target team", err)
	}

	current, err := s.lookup.TeamOf(ctx, member.ID)
	if err != nil {
		return MoveResult{}, err
	}
	from := current.Team

	if err := s.users.RemoveFromTeam(ctx, from.ID, current.UserID); err != nil {
		return MoveResult{}, s.membershipError("remove from current team", err)
	}

	if err := s.guild.RemoveRole(ctx, member.ID, from.DiscordRoleID); err != nil {
		return MoveResult{}, s.upstream("remove former team role", err)
	}

	isLeader := from.IsLeader(member.ID)

	if err := s.users.AddToTeam(ctx, to.ID, member.ID, isLeader); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.log.Info("team or user not found while adding to team",
				slog.String("team", to.Name),
				slog.String("user_id", member.ID),
				slog.Any("err", err),
			)
			return MoveResult{}, &AppError{Code: CodeNotFound, Message: ":x: Team or user could not be found.", Err: err}
		case errors.Is(err, repository.ErrBadRequest):
			return MoveResult{}, &AppError{
				Code:    CodeConflict,
				Message: fmt.Sprintf(":x: user %s is already in %s", member.Mention(), to.Name),
				Err:     err,
			}
		}
		return MoveResult{}, s.upstream("add to target team", err)
	}

	if err := s.guild.AddRole(ctx, member.ID, to.DiscordRoleID); err != nil {
		return MoveResult{}, s.upstream("grant target team role", err)
	}

	s.log.Info("member moved",
		slog.String("user_id", member.ID),
		slog.String("from", from.Name),
		slog.String("to", to.Name),
		slog.Bool("is_leader", isLeader),
	)
	return MoveResult{Member: member, From: from, To: to, IsLeader: isLeader}, nil
}

// Remove удаляет участника из текущей команды и снимает роль команды и роль лидера.
// Если записи о членстве уже нет, роли всё равно снимаются, а оператору сообщается об ошибке.
func (s *UserService) Remove(ctx context.Context, member model.Member) (RemoveResult, error) {
	current, err := s.lookup.TeamOf(ctx, member.ID)
	if err != nil {
		return RemoveResult{}, err
	}
	team := current.Team

	deleteErr := s.users.RemoveFromTeam(ctx, team.ID, current.UserID)
	if deleteErr != nil && !errors.Is(deleteErr, repository.ErrNotFound) && !errors.Is(deleteErr, repository.ErrBadRequest) {
		return RemoveResult{}, s.upstream("remove from team", deleteErr)
	}

	if err := s.stripRoles(ctx, member, team); err != nil {
		if deleteErr != nil {
			return RemoveResult{}, errors.Join(s.membershipError("remove from team", deleteErr), err)
		}
		return RemoveResult{}, s.upstream("remove team roles", err)
	}

	if deleteErr != nil {
		return RemoveResult{}, s.membershipError("remove from team", deleteErr)
	}

	s.log.Info("member removed",
		slog.String("user_id", member.ID),
		slog.String("team", team.Name),
	)
	return RemoveResult{Member: member, Team: team}, nil
}

// stripRoles снимает роль команды и, без проверки лидерства, роль лидера.
func (s *UserService) stripRoles(ctx context.Context, member model.Member, team model.Team) error {
	if err := s.guild.RemoveRole(ctx, member.ID, team.DiscordRoleID); err != nil {
		return fmt.Errorf("remove team role: %w", err)
	}

	roles, err := s.guild.Roles(ctx)
	if err != nil {
		return fmt.Errorf("list roles: %w", err)
	}
	for _, r := range roles {
		if r.Name == TeamLeaderRoleName && member.HasRole(r.ID) {
			if err := s.guild.RemoveRole(ctx, member.ID, r.ID); err != nil {
				return fmt.Errorf("remove leader role: %w", err)
			}
		}
	}
	return nil
}

// membershipError переводит ответ API на удаление членства в ошибку для оператора.
func (s *UserService) membershipError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &AppError{Code: CodeNotFound, Message: MsgTeamOrUserNotFound, Err: err}
	case errors.Is(err, repository.ErrBadRequest):
		return &AppError{Code: CodeConflict, Message: MsgNotOnTeam, Err: err}
	}
	return s.upstream(op, err)
}

func (s *UserService) upstream(op string, err error) error {
	s.log.Error("something went wrong with processing the request",
		slog.String("op", op),
		slog.Any("err", err),
	)
	return ErrUpstream(fmt.Errorf("%s: %w", op, err))
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"code-jam-service/internal/model"
)

// TeamRepository описывает контракт API управления для команд.
type TeamRepository interface {
	ListCurrentJam(ctx context.Context) ([]model.Team, error)
	FindByName(ctx context.Context, name string) (model.Team, error)
	Create(ctx context.Context, t model.NewTeam) (model.Team, error)
}

// TeamFailure описывает команду (или служебный ресурс), который не удалось создать.
type TeamFailure struct {
	Team string
	Err  error
}

// CreationReport описывает итог массового создания команд. Частичный успех является штатным исходом.
type CreationReport struct {
	Created []model.Team
	Failed  []TeamFailure
}

// TeamService создаёт команды: роль, канал, выдачу ролей участникам и регистрацию в API управления.
type TeamService struct {
	guild              Guild
	repo               TeamRepository
	participantsRoleID string
	log                *slog.Logger
}

// NewTeamService создаёт новый сервис для создания команд.
// participantsRoleID может быть пустым, тогда общая роль участников не выдаётся.
func NewTeamService(guild Guild, repo TeamRepository, participantsRoleID string, log *slog.Logger) *TeamService {
	return &TeamService{
		guild:              guild,
		repo:               repo,
		participantsRoleID: participantsRoleID,
		log:                log,
	}
}

// CreateTeams создаёт все команды распределения по очереди. Ошибка одной команды попадает в отчёт
// и не прерывает остальные. Повторный запуск с теми же именами создаст дубликаты.
func (s *TeamService) CreateTeams(ctx context.Context, a *model.TeamAssignment) (CreationReport, error) {
	report := CreationReport{
		Created: make([]model.Team, 0, a.Len()),
		Failed:  make([]TeamFailure, 0),
	}

	leaderRole, err := s.leaderRole(ctx)
	if err != nil {
		s.log.Error("failed to prepare team leader role", slog.Any("err", err))
		return report, ErrUpstream(err)
	}

	categories, err := s.guild.Categories(ctx)
	if err != nil {
		return report, ErrUpstream(err)
	}
	alloc := &categoryAllocator{guild: s.guild, categories: FilterJamCategories(categories)}

	hasLeaders := false
	for _, name := range a.Teams() {
		members := a.Members(name)
		for _, m := range members {
			hasLeaders = hasLeaders || m.IsLeader
		}

		team, err := s.createTeam(ctx, alloc, name, members, leaderRole)
		if err != nil {
			s.log.Error("failed to create team",
				slog.String("team", name),
				slog.Any("err", err),
			)
			report.Failed = append(report.Failed, TeamFailure{Team: name, Err: err})
			continue
		}

		s.log.Info("team created",
			slog.String("team", name),
			slog.String("team_id", team.ID),
			slog.Int("members", len(members)),
		)
		report.Created = append(report.Created, team)
	}

	if hasLeaders && !alloc.hasChannel(TeamLeadersChannelName) {
		if err := s.createLeadersChannel(ctx, alloc, leaderRole); err != nil {
			s.log.Error("failed to create team leaders channel", slog.Any("err", err))
			report.Failed = append(report.Failed, TeamFailure{Team: TeamLeadersChannelName, Err: err})
		}
	}

	return report, nil
}

func (s *TeamService) createTeam(
	ctx context.Context,
	alloc *categoryAllocator,
	name string,
	members []model.MemberAssignment,
	leaderRole model.Role,
) (model.Team, error) {
	role, err := s.guild.CreateRole(ctx, name)
	if err != nil {
		return model.Team{}, fmt.Errorf("create role: %w", err)
	}

	categoryID, err := alloc.next(ctx)
	if err != nil {
		return model.Team{}, fmt.Errorf("allocate category: %w", err)
	}

	channel, err := s.guild.CreateChannel(ctx, categoryID, name, role.ID)
	if err != nil {
		return model.Team{}, fmt.Errorf("create channel: %w", err)
	}
	alloc.add(categoryID, channel)

	users := make([]model.TeamUser, 0, len(members))
	for _, m := range members {
		if err := s.guild.AddRole(ctx, m.Member.ID, role.ID); err != nil {
			return model.Team{}, fmt.Errorf("grant team role to %s: %w", m.Member.ID, err)
		}
		if m.IsLeader {
			if err := s.guild.AddRole(ctx, m.Member.ID, leaderRole.ID); err != nil {
				return model.Team{}, fmt.Errorf("grant leader role to %s: %w", m.Member.ID, err)
			}
		}
		if s.participantsRoleID != "" {
			if err := s.guild.AddRole(ctx, m.Member.ID, s.participantsRoleID); err != nil {
				return model.Team{}, fmt.Errorf("grant participants role to %s: %w", m.Member.ID, err)
			}
		}
		users = append(users, model.TeamUser{UserID: m.Member.ID, IsLeader: m.IsLeader})
	}

	team, err := s.repo.Create(ctx, model.NewTeam{
		Name:             name,
		DiscordRoleID:    role.ID,
		DiscordChannelID: channel.ID,
		Users:            users,
	})
	if err != nil {
		return model.Team{}, fmt.Errorf("register team: %w", err)
	}
	return team, nil
}

// leaderRole возвращает общую роль лидеров, создавая её при первом запуске.
func (s *TeamService) leaderRole(ctx context.Context) (model.Role, error) {
	roles, err := s.guild.Roles(ctx)
	if err != nil {
		return model.Role{}, fmt.Errorf("list roles: %w", err)
	}
	for _, r := range roles {
		if r.Name == TeamLeaderRoleName {
			return r, nil
		}
	}
	return s.guild.CreateRole(ctx, TeamLeaderRoleName)
}

func (s *TeamService) createLeadersChannel(ctx context.Context, alloc *categoryAllocator, leaderRole model.Role) error {
	categoryID, err := alloc.next(ctx)
	if err != nil {
		return fmt.Errorf("allocate category: %w", err)
	}
	channel, err := s.guild.CreateChannel(ctx, categoryID, TeamLeadersChannelName, leaderRole.ID)
	if err != nil {
		return fmt.Errorf("create channel: %w", err)
	}
	alloc.add(categoryID, channel)
	return nil
}

// categoryAllocator выбирает категорию джема со свободным местом и открывает новую, когда все заполнены.
type categoryAllocator struct {
	guild      Guild
	categories []model.Category
}

func (a *categoryAllocator) next(ctx context.Context) (string, error) {
	for _, c := range a.categories {
		if len(c.Channels) < MaxCategoryChannels {
			return c.ID, nil
		}
	}

	created, err := a.guild.CreateCategory(ctx, JamCategoryName)
	if err != nil {
		return "", err
	}
	a.categories = append(a.categories, created)
	return created.ID, nil
}

func (a *categoryAllocator) add(categoryID string, ch model.Channel) {
	for i := range a.categories {
		if a.categories[i].ID == categoryID {
			a.categories[i].Channels = append(a.categories[i].Channels, ch)
			return
		}
	}
}

func (a *categoryAllocator) hasChannel(name string) bool {
	for _, c := range a.categories {
		for _, ch := range c.Channels {
			if ch.Name == name {
				return true
			}
		}
	}
	return false
}

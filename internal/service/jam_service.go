package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"code-jam-service/internal/metrics"
	"code-jam-service/internal/model"
)

// JamRepository описывает контракт API управления для самого джема.
type JamRepository interface {
	EndCurrent(ctx context.Context) error
}

// TeardownFailure описывает ресурс, который не удалось удалить.
type TeardownFailure struct {
	Kind string
	ID   string
	Name string
	Err  error
}

// TeardownReport описывает итог завершения джема.
type TeardownReport struct {
	DeletedChannels   int
	DeletedCategories int
	DeletedRoles      int
	Failures          []TeardownFailure
}

// JamService завершает джем: удаляет каналы, категории и роли и помечает джем неактивным.
type JamService struct {
	guild  Guild
	jams   JamRepository
	lookup *Lookup
	log    *slog.Logger
}

// NewJamService создаёт новый сервис завершения джема.
func NewJamService(guild Guild, jams JamRepository, lookup *Lookup, log *slog.Logger) *JamService {
	return &JamService{guild: guild, jams: jams, lookup: lookup, log: log}
}

// Snapshot фиксирует категории с их каналами и роли джема. Если удалять нечего, возвращает NOTHING_TO_DELETE.
// Недоступность API управления или списка ролей не мешает снимку: роли тогда пропускаются, а снимок помечается.
func (s *JamService) Snapshot(ctx context.Context) (model.CategorySnapshot, error) {
	categories, err := s.lookup.JamCategories(ctx)
	if err != nil {
		return model.CategorySnapshot{}, err
	}

	snapshot := model.CategorySnapshot{
		Categories: make([]model.Category, 0, len(categories)),
		Roles:      make([]model.Role, 0),
	}
	for _, c := range categories {
		channels := make([]model.Channel, len(c.Channels))
		copy(channels, c.Channels)
		snapshot.Categories = append(snapshot.Categories, model.Category{ID: c.ID, Name: c.Name, Channels: channels})
	}

	guildRoles, err := s.guild.Roles(ctx)
	if err != nil {
		// без списка ролей сервера не найти ни роли команд, ни роль лидеров
		s.log.Error("could not list server roles", slog.Any("err", err))
		snapshot.RolesUnavailable = true
	} else {
		roles, err := s.lookup.JamRolesFrom(ctx, guildRoles)
		if err != nil {
			snapshot.RolesUnavailable = true
		} else {
			snapshot.Roles = append(snapshot.Roles, roles...)
		}
		if leader, ok := findLeaderRole(guildRoles); ok {
			snapshot.Roles = append(snapshot.Roles, leader)
		}
	}

	if snapshot.Empty() {
		return model.CategorySnapshot{}, ErrNothingToDelete()
	}
	return snapshot, nil
}

// Preview формирует текстовый список того, что будет удалено.
func (s *JamService) Preview(snapshot model.CategorySnapshot) string {
	var b strings.Builder
	b.WriteString("Categories and Channels: \n")
	for _, c := range snapshot.Categories {
		names := make([]string, 0, len(c.Channels))
		for _, ch := range c.Channels {
			names = append(names, ch.Name)
		}
		fmt.Fprintf(&b, "%s[%s]: %s\n", c.Name, c.ID, strings.Join(names, ","))
	}
	b.WriteString("Roles:\n")
	if snapshot.RolesUnavailable {
		b.WriteString("(team roles could not be fetched, some roles may be left behind)\n")
	}
	for _, r := range snapshot.Roles {
		fmt.Fprintf(&b, "%s[%s]\n", r.Name, r.ID)
	}
	return b.String()
}

// End удаляет всё, что зафиксировано в снимке: каналы, затем категории, затем роли,
// после чего помечает джем неактивным. Каждое удаление выполняется один раз; ошибки копятся в отчёте.
func (s *JamService) End(ctx context.Context, snapshot model.CategorySnapshot) TeardownReport {
	report := TeardownReport{Failures: make([]TeardownFailure, 0)}

	for _, c := range snapshot.Categories {
		for _, ch := range c.Channels {
			if err := s.guild.DeleteChannel(ctx, ch.ID); err != nil {
				report.fail(s.log, "channel", ch.ID, ch.Name, err)
				continue
			}
			report.DeletedChannels++
		}
	}

	for _, c := range snapshot.Categories {
		if err := s.guild.DeleteChannel(ctx, c.ID); err != nil {
			report.fail(s.log, "category", c.ID, c.Name, err)
			continue
		}
		report.DeletedCategories++
	}

	for _, r := range snapshot.Roles {
		if err := s.guild.DeleteRole(ctx, r.ID); err != nil {
			report.fail(s.log, "role", r.ID, r.Name, err)
			continue
		}
		report.DeletedRoles++
	}

	if err := s.jams.EndCurrent(ctx); err != nil {
		report.fail(s.log, "jam", "", "current", err)
	}

	s.log.Info("code jam ended",
		slog.Int("channels", report.DeletedChannels),
		slog.Int("categories", report.DeletedCategories),
		slog.Int("roles", report.DeletedRoles),
		slog.Int("failures", len(report.Failures)),
	)
	return report
}

func findLeaderRole(roles []model.Role) (model.Role, bool) {
	for _, r := range roles {
		if r.Name == TeamLeaderRoleName {
			return r, true
		}
	}
	return model.Role{}, false
}

func (r *TeardownReport) fail(log *slog.Logger, kind, id, name string, err error) {
	log.Error("teardown step failed",
		slog.String("kind", kind),
		slog.String("id", id),
		slog.String("name", name),
		slog.Any("err", err),
	)
	metrics.ObserveTeardownFailure(kind)
	r.Failures = append(r.Failures, TeardownFailure{Kind: kind, ID: id, Name: name, Err: err})
}

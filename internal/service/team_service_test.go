package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"code-jam-service/internal/model"
	"code-jam-service/internal/service"
	"code-jam-service/internal/service/mocks"
)

func TestTeamService_CreateTeams(t *testing.T) {
	leader := model.Role{ID: "lead", Name: service.TeamLeaderRoleName}

	tests := []struct {
		name        string
		assignment  func() *model.TeamAssignment
		setupMocks  func(g *mocks.Guild, tr *mocks.TeamRepository)
		wantCreated []string
		wantFailed  []string
		wantErr     bool
	}{
		{
			name: "Success: New category, leader role and leaders channel",
			assignment: func() *model.TeamAssignment {
				a := model.NewTeamAssignment()
				a.Add("Team A", model.MemberAssignment{Member: model.Member{ID: "1"}, IsLeader: true})
				a.Add("Team A", model.MemberAssignment{Member: model.Member{ID: "2"}})
				return a
			},
			setupMocks: func(g *mocks.Guild, tr *mocks.TeamRepository) {
				// 1. Роли лидеров ещё нет
				g.On("Roles", mock.Anything).Return([]model.Role{}, nil)
				g.On("CreateRole", mock.Anything, service.TeamLeaderRoleName).Return(leader, nil)
				// 2. Категорий джема нет, создаём
				g.On("Categories", mock.Anything).Return([]model.Category{{ID: "other", Name: "General"}}, nil)
				g.On("CreateCategory", mock.Anything, service.JamCategoryName).
					Return(model.Category{ID: "cat", Name: service.JamCategoryName}, nil).Once()
				// 3. Команда
				g.On("CreateRole", mock.Anything, "Team A").Return(model.Role{ID: "rA", Name: "Team A"}, nil)
				g.On("CreateChannel", mock.Anything, "cat", "Team A", "rA").
					Return(model.Channel{ID: "chA", Name: "team-a", ParentID: "cat"}, nil)
				g.On("AddRole", mock.Anything, "1", "rA").Return(nil)
				g.On("AddRole", mock.Anything, "1", "lead").Return(nil)
				g.On("AddRole", mock.Anything, "1", "part").Return(nil)
				g.On("AddRole", mock.Anything, "2", "rA").Return(nil)
				g.On("AddRole", mock.Anything, "2", "part").Return(nil)
				tr.On("Create", mock.Anything, model.NewTeam{
					Name:             "Team A",
					DiscordRoleID:    "rA",
					DiscordChannelID: "chA",
					Users: []model.TeamUser{
						{UserID: "1", IsLeader: true},
						{UserID: "2", IsLeader: false},
					},
				}).Return(model.Team{ID: "10", Name: "Team A", DiscordRoleID: "rA", DiscordChannelID: "chA"}, nil)
				// 4. Канал лидеров в той же категории
				g.On("CreateChannel", mock.Anything, "cat", service.TeamLeadersChannelName, "lead").
					Return(model.Channel{ID: "chL", Name: service.TeamLeadersChannelName, ParentID: "cat"}, nil)
			},
			wantCreated: []string{"Team A"},
			wantFailed:  []string{},
		},
		{
			name: "Partial: One team fails, others continue",
			assignment: func() *model.TeamAssignment {
				a := model.NewTeamAssignment()
				a.Add("Team A", model.MemberAssignment{Member: model.Member{ID: "1"}})
				a.Add("Team B", model.MemberAssignment{Member: model.Member{ID: "2"}})
				a.Add("Team C", model.MemberAssignment{Member: model.Member{ID: "3"}})
				return a
			},
			setupMocks: func(g *mocks.Guild, tr *mocks.TeamRepository) {
				g.On("Roles", mock.Anything).Return([]model.Role{leader}, nil)
				g.On("Categories", mock.Anything).Return([]model.Category{{ID: "cat", Name: service.JamCategoryName}}, nil)

				for _, id := range []string{"A", "C"} {
					name := "Team " + id
					g.On("CreateRole", mock.Anything, name).Return(model.Role{ID: "r" + id}, nil)
					g.On("CreateChannel", mock.Anything, "cat", name, "r"+id).Return(model.Channel{ID: "ch" + id}, nil)
					tr.On("Create", mock.Anything, mock.MatchedBy(func(nt model.NewTeam) bool { return nt.Name == name })).
						Return(model.Team{ID: id, Name: name}, nil)
				}
				g.On("AddRole", mock.Anything, "1", "rA").Return(nil)
				g.On("AddRole", mock.Anything, "1", "part").Return(nil)
				g.On("AddRole", mock.Anything, "3", "rC").Return(nil)
				g.On("AddRole", mock.Anything, "3", "part").Return(nil)

				// Team B: платформа отказала в создании роли
				g.On("CreateRole", mock.Anything, "Team B").Return(model.Role{}, errors.New("rate limited"))
			},
			wantCreated: []string{"Team A", "Team C"},
			wantFailed:  []string{"Team B"},
		},
		{
			name: "Success: Full category rolls over to a new one",
			assignment: func() *model.TeamAssignment {
				a := model.NewTeamAssignment()
				a.Ensure("Team Z")
				return a
			},
			setupMocks: func(g *mocks.Guild, tr *mocks.TeamRepository) {
				full := model.Category{ID: "full", Name: service.JamCategoryName}
				for i := 0; i < service.MaxCategoryChannels; i++ {
					full.Channels = append(full.Channels, model.Channel{ID: fmt.Sprint(i)})
				}
				g.On("Roles", mock.Anything).Return([]model.Role{leader}, nil)
				g.On("Categories", mock.Anything).Return([]model.Category{full}, nil)
				g.On("CreateRole", mock.Anything, "Team Z").Return(model.Role{ID: "rZ"}, nil)
				g.On("CreateCategory", mock.Anything, service.JamCategoryName).
					Return(model.Category{ID: "next", Name: service.JamCategoryName}, nil).Once()
				g.On("CreateChannel", mock.Anything, "next", "Team Z", "rZ").Return(model.Channel{ID: "chZ"}, nil)
				tr.On("Create", mock.Anything, model.NewTeam{
					Name:             "Team Z",
					DiscordRoleID:    "rZ",
					DiscordChannelID: "chZ",
					Users:            []model.TeamUser{},
				}).Return(model.Team{ID: "26", Name: "Team Z"}, nil)
			},
			wantCreated: []string{"Team Z"},
			wantFailed:  []string{},
		},
		{
			name: "Fail: Leader role cannot be prepared",
			assignment: func() *model.TeamAssignment {
				a := model.NewTeamAssignment()
				a.Ensure("Team A")
				return a
			},
			setupMocks: func(g *mocks.Guild, tr *mocks.TeamRepository) {
				g.On("Roles", mock.Anything).Return(nil, errors.New("gateway down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mocks.NewGuild(t)
			tr := mocks.NewTeamRepository(t)
			tt.setupMocks(g, tr)

			svc := service.NewTeamService(g, tr, "part", discardLogger())
			report, err := svc.CreateTeams(context.Background(), tt.assignment())

			if tt.wantErr {
				assert.True(t, service.HasCode(err, service.CodeUpstream))
				return
			}
			require.NoError(t, err)

			created := make([]string, 0, len(report.Created))
			for _, team := range report.Created {
				created = append(created, team.Name)
			}
			failed := make([]string, 0, len(report.Failed))
			for _, f := range report.Failed {
				failed = append(failed, f.Team)
			}
			assert.Equal(t, tt.wantCreated, created)
			assert.Equal(t, tt.wantFailed, failed)
		})
	}
}

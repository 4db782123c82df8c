package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-jam-service/internal/model"
	"code-jam-service/internal/repository"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *repository.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return repository.NewClient(srv.URL+"/", "secret", 5*time.Second)
}

func TestTeamRepo_ListCurrentJam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/teams", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("current_jam"))
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id": 1, "name": "Team Rocket", "discord_role_id": 111, "discord_channel_id": 222,
			"users": [{"user_id": 42, "is_leader": true}]}]`)
	})

	teams, err := repository.NewTeamRepo(c).ListCurrentJam(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, model.Team{
		ID:               "1",
		Name:             "Team Rocket",
		DiscordRoleID:    "111",
		DiscordChannelID: "222",
		Users:            []model.TeamUser{{UserID: "42", IsLeader: true}},
		CurrentJam:       true,
	}, teams[0])
}

func TestTeamRepo_FindByName_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/find", r.URL.Path)
		assert.Equal(t, "Team Magma", r.URL.Query().Get("name"))
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail": "Team with the given name does not exist."}`)
	})

	_, err := repository.NewTeamRepo(c).FindByName(context.Background(), "Team Magma")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.False(t, errors.Is(err, repository.ErrBadRequest))

	var rce *repository.ResponseCodeError
	require.True(t, errors.As(err, &rce))
	assert.Equal(t, http.StatusNotFound, rce.Status)
}

func TestTeamRepo_Create(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/teams", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Team Rocket", body["name"])
		assert.EqualValues(t, 111, body["discord_role_id"])
		assert.EqualValues(t, 222, body["discord_channel_id"])
		users := body["users"].([]any)
		if !assert.Len(t, users, 2) {
			return
		}
		assert.Equal(t, true, users[0].(map[string]any)["is_leader"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 7, "name": "Team Rocket", "discord_role_id": 111, "discord_channel_id": 222,
			"users": [{"user_id": 1, "is_leader": true}, {"user_id": 2, "is_leader": false}]}`)
	})

	team, err := repository.NewTeamRepo(c).Create(context.Background(), model.NewTeam{
		Name:             "Team Rocket",
		DiscordRoleID:    "111",
		DiscordChannelID: "222",
		Users:            []model.TeamUser{{UserID: "1", IsLeader: true}, {UserID: "2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "7", team.ID)
	assert.Len(t, team.Users, 2)
}

func TestTeamRepo_Create_InvalidID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := repository.NewTeamRepo(c).Create(context.Background(), model.NewTeam{
		Name:             "Team Rocket",
		DiscordRoleID:    "not-a-number",
		DiscordChannelID: "222",
	})
	assert.Error(t, err)
}

func TestUserRepo_CurrentTeam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/42/current_team", r.URL.Path)
		_, _ = io.WriteString(w, `{"user_id": 42, "is_leader": false,
			"team": {"id": 3, "name": "Team Aqua", "discord_role_id": 5, "discord_channel_id": 6, "users": []}}`)
	})

	ut, err := repository.NewUserRepo(c).CurrentTeam(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", ut.UserID)
	assert.Equal(t, "3", ut.Team.ID)
	assert.Equal(t, "Team Aqua", ut.Team.Name)
	assert.Equal(t, "5", ut.Team.DiscordRoleID)
}

func TestUserRepo_Membership(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		call      func(r *repository.UserRepo) error
		method    string
		query     string
		wantIs    error
		wantError bool
	}{
		{
			name:   "add leader",
			status: http.StatusNoContent,
			call: func(r *repository.UserRepo) error {
				return r.AddToTeam(context.Background(), "3", "42", true)
			},
			method: http.MethodPost,
			query:  "is_leader=true",
		},
		{
			name:   "add already a member",
			status: http.StatusBadRequest,
			call: func(r *repository.UserRepo) error {
				return r.AddToTeam(context.Background(), "3", "42", false)
			},
			method:    http.MethodPost,
			query:     "is_leader=false",
			wantIs:    repository.ErrBadRequest,
			wantError: true,
		},
		{
			name:   "remove",
			status: http.StatusNoContent,
			call: func(r *repository.UserRepo) error {
				return r.RemoveFromTeam(context.Background(), "3", "42")
			},
			method: http.MethodDelete,
		},
		{
			name:   "remove missing",
			status: http.StatusNotFound,
			call: func(r *repository.UserRepo) error {
				return r.RemoveFromTeam(context.Background(), "3", "42")
			},
			method:    http.MethodDelete,
			wantIs:    repository.ErrNotFound,
			wantError: true,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			call: func(r *repository.UserRepo) error {
				return r.RemoveFromTeam(context.Background(), "3", "42")
			},
			method:    http.MethodDelete,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.method, r.Method)
				assert.Equal(t, "/teams/3/users/42", r.URL.Path)
				assert.Equal(t, tt.query, r.URL.RawQuery)
				w.WriteHeader(tt.status)
			})

			err := tt.call(repository.NewUserRepo(c))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs))
			} else {
				assert.False(t, errors.Is(err, repository.ErrNotFound))
				assert.False(t, errors.Is(err, repository.ErrBadRequest))
			}
		})
	}
}

func TestJamRepo_EndCurrent(t *testing.T) {
	var patched bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/codejams/ongoing":
			_, _ = io.WriteString(w, `{"id": 9, "name": "Summer Code Jam", "ongoing": true}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/codejams/9":
			assert.Equal(t, "false", r.URL.Query().Get("ongoing"))
			patched = true
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	require.NoError(t, repository.NewJamRepo(c).EndCurrent(context.Background()))
	assert.True(t, patched)
}

func TestJamRepo_EndCurrent_NoOngoingJam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	assert.NoError(t, repository.NewJamRepo(c).EndCurrent(context.Background()))
}

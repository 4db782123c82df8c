package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"code-jam-service/internal/model"
)

// TeamRepo реализует доступ к командам через API управления.
type TeamRepo struct {
	c *Client
}

// NewTeamRepo создаёт новый экземпляр TeamRepo поверх клиента API управления.
func NewTeamRepo(c *Client) *TeamRepo {
	return &TeamRepo{c: c}
}

// ListCurrentJam возвращает команды текущего джема.
func (r *TeamRepo) ListCurrentJam(ctx context.Context) ([]model.Team, error) {
	var raw []teamDTO
	q := url.Values{"current_jam": {"true"}}
	if err := r.c.do(ctx, http.MethodGet, "teams", q, nil, &raw); err != nil {
		return nil, err
	}

	teams := make([]model.Team, 0, len(raw))
	for _, t := range raw {
		teams = append(teams, t.toModel(true))
	}
	return teams, nil
}

// FindByName возвращает команду по имени. Если команды нет, вернёт ошибку, совпадающую с ErrNotFound.
func (r *TeamRepo) FindByName(ctx context.Context, name string) (model.Team, error) {
	var raw teamDTO
	q := url.Values{"name": {name}}
	if err := r.c.do(ctx, http.MethodGet, "teams/find", q, nil, &raw); err != nil {
		return model.Team{}, err
	}
	return raw.toModel(false), nil
}

// Create регистрирует команду вместе с её ролью, каналом и участниками.
func (r *TeamRepo) Create(ctx context.Context, t model.NewTeam) (model.Team, error) {
	roleID, err := parseID(t.DiscordRoleID)
	if err != nil {
		return model.Team{}, fmt.Errorf("role id %q: %w", t.DiscordRoleID, err)
	}
	channelID, err := parseID(t.DiscordChannelID)
	if err != nil {
		return model.Team{}, fmt.Errorf("channel id %q: %w", t.DiscordChannelID, err)
	}

	req := createTeamRequest{
		Name:             t.Name,
		Users:            make([]teamUserDTO, 0, len(t.Users)),
		DiscordRoleID:    roleID,
		DiscordChannelID: channelID,
	}
	for _, u := range t.Users {
		id, err := parseID(u.UserID)
		if err != nil {
			return model.Team{}, fmt.Errorf("user id %q: %w", u.UserID, err)
		}
		req.Users = append(req.Users, teamUserDTO{UserID: id, IsLeader: u.IsLeader})
	}

	var created teamDTO
	if err := r.c.do(ctx, http.MethodPost, "teams", nil, req, &created); err != nil {
		return model.Team{}, err
	}
	return created.toModel(true), nil
}

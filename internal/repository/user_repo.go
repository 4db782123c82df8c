package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"code-jam-service/internal/model"
)

// UserRepo реализует операции над членством пользователей через API управления.
type UserRepo struct {
	c *Client
}

// NewUserRepo создаёт новый экземпляр UserRepo поверх клиента API управления.
func NewUserRepo(c *Client) *UserRepo {
	return &UserRepo{c: c}
}

// CurrentTeam возвращает текущую команду пользователя.
// Если пользователь не участвует в джеме, вернёт ошибку, совпадающую с ErrNotFound.
func (r *UserRepo) CurrentTeam(ctx context.Context, userID string) (model.UserTeam, error) {
	var raw userTeamDTO
	path := "users/" + url.PathEscape(userID) + "/current_team"
	if err := r.c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return model.UserTeam{}, err
	}
	return model.UserTeam{
		UserID:   formatID(raw.UserID),
		IsLeader: raw.IsLeader,
		Team:     raw.Team.toModel(true),
	}, nil
}

// AddToTeam добавляет пользователя в команду.
func (r *UserRepo) AddToTeam(ctx context.Context, teamID, userID string, isLeader bool) error {
	path := "teams/" + url.PathEscape(teamID) + "/users/" + url.PathEscape(userID)
	q := url.Values{"is_leader": {strconv.FormatBool(isLeader)}}
	return r.c.do(ctx, http.MethodPost, path, q, nil, nil)
}

// RemoveFromTeam удаляет запись о членстве пользователя в команде.
func (r *UserRepo) RemoveFromTeam(ctx context.Context, teamID, userID string) error {
	path := "teams/" + url.PathEscape(teamID) + "/users/" + url.PathEscape(userID)
	return r.c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

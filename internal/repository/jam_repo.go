package repository

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

// JamRepo управляет состоянием самого код-джема в API управления.
type JamRepo struct {
	c *Client
}

// NewJamRepo создаёт новый экземпляр JamRepo поверх клиента API управления.
func NewJamRepo(c *Client) *JamRepo {
	return &JamRepo{c: c}
}

// EndCurrent помечает текущий джем как завершённый.
// Если активного джема нет, ничего не делает.
func (r *JamRepo) EndCurrent(ctx context.Context) error {
	var jam codeJamDTO
	if err := r.c.do(ctx, http.MethodGet, "codejams/ongoing", nil, nil, &jam); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	path := "codejams/" + strconv.FormatInt(jam.ID, 10)
	q := url.Values{"ongoing": {"false"}}
	return r.c.do(ctx, http.MethodPatch, path, q, nil, nil)
}

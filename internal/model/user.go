package model

// UserTeam описывает текущее членство пользователя: ответ на /users/{id}/current_team.
type UserTeam struct {
	UserID   string `json:"user_id"`
	IsLeader bool   `json:"is_leader"`
	Team     Team   `json:"team"`
}

// Package model содержит доменные структуры код-джема: команды, ростер и снимки сервера.
package model

// TeamUser описывает участника команды в системе управления и признак лидерства.
type TeamUser struct {
	UserID   string `json:"user_id"`
	IsLeader bool   `json:"is_leader"`
}

// Team описывает команду в системе управления. Роль и канал на сервере являются
// внешними ключами этой записи: состав команды определяется только API управления.
type Team struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	DiscordRoleID    string     `json:"discord_role_id"`
	DiscordChannelID string     `json:"discord_channel_id"`
	Users            []TeamUser `json:"users"`
	CurrentJam       bool       `json:"current_jam"`
}

// IsLeader сообщает, отмечен ли пользователь лидером этой команды.
func (t Team) IsLeader(userID string) bool {
	for _, u := range t.Users {
		if u.UserID == userID && u.IsLeader {
			return true
		}
	}
	return false
}

// NewTeam описывает команду, которую нужно зарегистрировать в системе управления.
type NewTeam struct {
	Name             string
	DiscordRoleID    string
	DiscordChannelID string
	Users            []TeamUser
}

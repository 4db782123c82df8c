package repository

import (
	"strconv"

	"code-jam-service/internal/model"
)

// Идентификаторы в API управления передаются числами, в домене они строки.

type teamUserDTO struct {
	UserID   int64 `json:"user_id"`
	IsLeader bool  `json:"is_leader"`
}

type teamDTO struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	DiscordRoleID    int64         `json:"discord_role_id"`
	DiscordChannelID int64         `json:"discord_channel_id"`
	Users            []teamUserDTO `json:"users"`
}

type userTeamDTO struct {
	UserID   int64   `json:"user_id"`
	IsLeader bool    `json:"is_leader"`
	Team     teamDTO `json:"team"`
}

type createTeamRequest struct {
	Name             string        `json:"name"`
	Users            []teamUserDTO `json:"users"`
	DiscordRoleID    int64         `json:"discord_role_id"`
	DiscordChannelID int64         `json:"discord_channel_id"`
}

type codeJamDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Ongoing bool   `json:"ongoing"`
}

func (d teamDTO) toModel(currentJam bool) model.Team {
	users := make([]model.TeamUser, 0, len(d.Users))
	for _, u := range d.Users {
		users = append(users, model.TeamUser{
			UserID:   formatID(u.UserID),
			IsLeader: u.IsLeader,
		})
	}
	return model.Team{
		ID:               formatID(d.ID),
		Name:             d.Name,
		DiscordRoleID:    formatID(d.DiscordRoleID),
		DiscordChannelID: formatID(d.DiscordChannelID),
		Users:            users,
		CurrentJam:       currentJam,
	}
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

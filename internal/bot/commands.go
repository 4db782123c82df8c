package bot

import "github.com/bwmarrin/discordgo"

// CommandName имя группы слэш-команд.
const CommandName = "codejam"

// Commands возвращает определение /codejam для регистрации на сервере.
func Commands() []*discordgo.ApplicationCommand {
	dm := false
	member := []*discordgo.ApplicationCommandOption{{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        optionMember,
		Description: "The participant",
		Required:    true,
	}}

	return []*discordgo.ApplicationCommand{{
		Name:         CommandName,
		Description:  "Manage Code Jam teams",
		DMPermission: &dm,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Create teams, roles and channels from a CSV roster",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionAttachment,
						Name:        optionCSVFile,
						Description: "CSV with 'Team Name', 'Team Member Discord ID' and 'Team Leader' columns",
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionURL,
						Description: "Link to the CSV roster",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "announce",
				Description: "Announce the teams in the announcements channel",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "end",
				Description: "Delete all Code Jam channels and roles",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "info",
				Description: "Show the team a participant is in",
				Options:     member,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "move",
				Description: "Move a participant to another team",
				Options: append(append([]*discordgo.ApplicationCommandOption(nil), member...), &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionNewTeam,
					Description: "Name of the team to move the participant to",
					Required:    true,
				}),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a participant from their team",
				Options:     member,
			},
		},
	}}
}

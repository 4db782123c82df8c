package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"code-jam-service/internal/confirm"
	"code-jam-service/internal/service"
)

func (h *Handler) cmdAnnounce(ctx context.Context, i *discordgo.Interaction, _ options) error {
	if h.opts.AnnouncementsChannelID == "" {
		return service.ErrInput(MsgNoAnnounceCh)
	}

	g := confirm.Present(actorID(i), confirm.Summary{
		Title:          "Would you like to announce the teams?",
		ConfirmLabel:   "Announce teams",
		ConfirmedLabel: "Teams have been announced!",
	}).OnConfirm(func(ctx context.Context) error {
		return h.send(ctx, h.opts.AnnouncementsChannelID, announcement(h.opts.ParticipantsRoleID))
	})

	return h.presentGate(ctx, i, g)
}

// announcement собирает объявление с постоянной кнопкой. Кнопка не привязана к процессу
// и продолжает работать после перезапуска.
func announcement(participantsRoleID string) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{
		Content: "You have been sorted into a team! Click the button below to get a detailed description!",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Show me my team!",
					Style:    discordgo.PrimaryButton,
					CustomID: ShowTeamCustomID,
				},
			}},
		},
	}
	if participantsRoleID != "" {
		msg.Content = fmt.Sprintf("<@&%s> ! %s", participantsRoleID, msg.Content)
		msg.AllowedMentions = &discordgo.MessageAllowedMentions{Roles: []string{participantsRoleID}}
	}
	return msg
}

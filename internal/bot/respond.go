package bot

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Сообщения бота.
const (
	MsgForbidden     = ":x: You don't have permission to use this command."
	MsgForeignActor  = ":x: You can't interact with someone else's response. Please run the command yourself!"
	MsgGateResolved  = ":x: This confirmation has already been answered."
	MsgGateExpired   = ":x: This confirmation has expired. Please run the command again."
	MsgNoRosterSrc   = "You must include either a CSV file or a link to one."
	MsgPasteFailed   = "**Unable to send deletion details to the pasting service.**"
	MsgJamEnded      = "Code Jam has officially ended! :sunrise:"
	MsgNotInGuild    = ":x: That user is not a member of this server."
	MsgNoAnnounceCh  = ":x: The announcements channel is not configured."
	MsgShowTeamNoPar = "It seems like you're not a participant!"
	MsgShowTeamError = "Something went wrong!"
)

// Цвета встраиваемых сообщений.
const (
	colorOrange  = 0xe67e22
	colorBlurple = 0x5865f2
	colorGreen   = 0x2ecc71
)

func (h *Handler) respondEphemeral(ctx context.Context, i *discordgo.Interaction, content string) {
	err := h.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		h.log.Error("failed to respond", slog.Any("err", err))
	}
}

func (h *Handler) editContent(ctx context.Context, i *discordgo.Interaction, content string) {
	if _, err := h.session.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content}, discordgo.WithContext(ctx)); err != nil {
		h.log.Error("failed to edit response", slog.Any("err", err))
	}
}

func (h *Handler) editEmbed(ctx context.Context, i *discordgo.Interaction, embed *discordgo.MessageEmbed) error {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := h.session.InteractionResponseEdit(i, &discordgo.WebhookEdit{Embeds: &embeds}, discordgo.WithContext(ctx))
	return err
}

// send отправляет сообщение в канал. Используется после подтверждения, когда ответ на команду уже занят шлюзом.
func (h *Handler) send(ctx context.Context, channelID string, msg *discordgo.MessageSend) error {
	_, err := h.session.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx))
	if err != nil {
		h.log.Error("failed to send message", slog.String("channel_id", channelID), slog.Any("err", err))
	}
	return err
}

func (h *Handler) sendText(ctx context.Context, channelID, content string) error {
	return h.send(ctx, channelID, &discordgo.MessageSend{Content: content})
}

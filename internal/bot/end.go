package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"code-jam-service/internal/confirm"
	"code-jam-service/internal/service"
)

// cmdEnd фиксирует снимок джема, публикует список удаляемого и удаляет его после подтверждения.
// Удаляется ровно то, что было показано, даже если сервер изменился за время ожидания.
func (h *Handler) cmdEnd(ctx context.Context, i *discordgo.Interaction, _ options) error {
	snapshot, err := h.deps.Jam.Snapshot(ctx)
	if err != nil {
		return err
	}

	details, err := h.deps.Paste.Send(ctx, h.deps.Jam.Preview(snapshot))
	if err != nil {
		h.log.Error("failed to send deletion details to the paste service", slog.Any("err", err))
		details = MsgPasteFailed
	}

	channelID := i.ChannelID
	g := confirm.Present(actorID(i), confirm.Summary{
		Title: "Are you sure?",
		Fields: []confirm.Field{{
			Name:  "For a detailed list of which roles, categories and channels will be deleted see:",
			Value: details,
		}},
	}).OnConfirm(func(ctx context.Context) error {
		report := h.deps.Jam.End(ctx, snapshot)
		msg := &discordgo.MessageSend{Content: MsgJamEnded}
		if len(report.Failures) > 0 {
			msg.Embeds = []*discordgo.MessageEmbed{teardownEmbed(report)}
		}
		return h.send(ctx, channelID, msg)
	})

	return h.presentGate(ctx, i, g)
}

func teardownEmbed(report service.TeardownReport) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		lines = append(lines, fmt.Sprintf("%s %s[%s]: %v", f.Kind, f.Name, f.ID, f.Err))
	}
	return &discordgo.MessageEmbed{
		Title: "Some items could not be deleted",
		Description: fmt.Sprintf("Deleted %d channels, %d categories and %d roles.",
			report.DeletedChannels, report.DeletedCategories, report.DeletedRoles),
		Color: colorOrange,
		Fields: []*discordgo.MessageEmbedField{{
			Name:  fmt.Sprintf("Failures (%d)", len(report.Failures)),
			Value: TruncateField(lines),
		}},
	}
}

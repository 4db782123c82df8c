package bot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"code-jam-service/internal/confirm"
	"code-jam-service/internal/model"
	"code-jam-service/internal/service"
)

// Параметры подкоманды create.
const (
	optionCSVFile = "csv_file"
	optionURL     = "url"
)

const (
	maxReportLines = 15
	maxFieldLen    = 1024
)

// cmdCreate загружает ростер, показывает сводку и создаёт команды после подтверждения.
func (h *Handler) cmdCreate(ctx context.Context, i *discordgo.Interaction, opts options) error {
	src, err := rosterSource(opts)
	if err != nil {
		return err
	}

	raw, err := h.deps.Fetcher.Fetch(ctx, src)
	if err != nil {
		return err
	}

	teams, skipped, err := h.deps.Parser.Parse(ctx, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	if len(skipped) > 0 {
		h.log.Info("roster rows skipped", slog.Int("skipped", len(skipped)))
	}

	summary := confirm.Summary{
		Title:       "Warning!",
		Description: fmt.Sprintf("%d teams, and roles will be created, are you sure?", teams.Len()),
		Footer:      "Code Jam team generation",
	}
	if names := teamNames(teams); names != "" {
		summary.Fields = []confirm.Field{{Name: "Teams", Value: TruncateField([]string{names})}}
	}

	channelID := i.ChannelID
	g := confirm.Present(actorID(i), summary).OnConfirm(func(ctx context.Context) error {
		report, err := h.deps.Teams.CreateTeams(ctx, teams)
		if err != nil {
			_ = h.sendText(ctx, channelID, userMessage(err))
			return err
		}
		return h.send(ctx, channelID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{creationEmbed(report, skipped)},
		})
	})

	return h.presentGate(ctx, i, g)
}

// rosterSource выбирает источник ростера: вложение имеет приоритет над ссылкой.
func rosterSource(opts options) (string, error) {
	if url, ok := opts.attachmentURL(optionCSVFile); ok {
		return url, nil
	}
	if url := opts.text(optionURL); url != "" {
		if err := ValidateRosterURL(url); err != nil {
			return "", err
		}
		return url, nil
	}
	return "", service.ErrInput(MsgNoRosterSrc)
}

func creationEmbed(report service.CreationReport, skipped []service.SkippedRow) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "Code Jam teams created",
		Description: fmt.Sprintf("%d teams have been created.", len(report.Created)),
		Color:       colorGreen,
	}
	if len(report.Failed) > 0 {
		e.Color = colorOrange
		lines := make([]string, 0, len(report.Failed))
		for _, f := range report.Failed {
			lines = append(lines, fmt.Sprintf("%s: %v", f.Team, f.Err))
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Failed (%d)", len(report.Failed)),
			Value: TruncateField(lines),
		})
	}
	if len(skipped) > 0 {
		lines := make([]string, 0, len(skipped))
		for _, s := range skipped {
			lines = append(lines, fmt.Sprintf("line %d (%s): %s", s.Line, s.MemberID, s.Reason))
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Skipped roster rows (%d)", len(skipped)),
			Value: TruncateField(lines),
		})
	}
	return e
}

// TruncateField укладывает список строк в ограничение поля встраиваемого сообщения.
// Обрезка идёт по символам, а не по байтам.
func TruncateField(lines []string) string {
	if len(lines) > maxReportLines {
		rest := len(lines) - maxReportLines
		lines = append(lines[:maxReportLines:maxReportLines], fmt.Sprintf("... and %d more", rest))
	}
	out := strings.Join(lines, "\n")
	if utf8.RuneCountInString(out) > maxFieldLen {
		out = string([]rune(out)[:maxFieldLen-3]) + "..."
	}
	return out
}

// teamNames возвращает имена команд распределения через запятую.
func teamNames(a *model.TeamAssignment) string {
	return strings.Join(a.Teams(), ", ")
}

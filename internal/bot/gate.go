package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"code-jam-service/internal/confirm"
)

// Идентификаторы кнопок. Кнопки шлюза: CJ:GATE:<id>:CONFIRM и CJ:GATE:<id>:CANCEL.
const (
	customIDPrefix   = "CJ"
	customIDGate     = "GATE"
	actionConfirm    = "CONFIRM"
	actionCancel     = "CANCEL"
	ShowTeamCustomID = "CJ:PERS:SHOW_TEAM"
)

// GateCustomID возвращает идентификатор кнопки шлюза.
func GateCustomID(gateID, action string) string {
	return strings.Join([]string{customIDPrefix, customIDGate, gateID, action}, ":")
}

// ParseGateCustomID разбирает идентификатор кнопки шлюза.
func ParseGateCustomID(customID string) (gateID, action string, ok bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 4 || parts[0] != customIDPrefix || parts[1] != customIDGate || parts[2] == "" {
		return "", "", false
	}
	switch parts[3] {
	case actionConfirm, actionCancel:
		return parts[2], parts[3], true
	}
	return "", "", false
}

// presentGate показывает сводку с кнопками в ответе на команду и регистрирует шлюз.
func (h *Handler) presentGate(ctx context.Context, i *discordgo.Interaction, g *confirm.Gate) error {
	h.gates.Add(g)

	embeds := []*discordgo.MessageEmbed{summaryEmbed(g.Summary())}
	components := gateComponents(g)
	if _, err := h.session.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx)); err != nil {
		// без сообщения подтвердить шлюз невозможно
		_ = g.Cancel(ctx, g.ActorID(), nil)
		return err
	}
	return nil
}

func (h *Handler) handleComponent(ctx context.Context, i *discordgo.Interaction) {
	customID := i.MessageComponentData().CustomID
	if customID == ShowTeamCustomID {
		h.showTeam(ctx, i)
		return
	}

	gateID, action, ok := ParseGateCustomID(customID)
	if !ok {
		h.log.Debug("unknown component", slog.String("custom_id", customID))
		return
	}

	g, ok := h.gates.Get(gateID)
	if !ok {
		h.respondEphemeral(ctx, i, MsgGateExpired)
		return
	}

	actor := actorID(i)
	if err := g.Check(actor); err != nil {
		h.rejectGate(ctx, i, err)
		return
	}

	render := h.gateRenderer(i)
	var err error
	if action == actionConfirm {
		err = g.Confirm(ctx, actor, render)
	} else {
		err = g.Cancel(ctx, actor, render)
	}

	switch {
	case errors.Is(err, confirm.ErrForeignActor), errors.Is(err, confirm.ErrResolved):
		// шлюз разрешился между проверкой и нажатием
		h.rejectGate(ctx, i, err)
	case err != nil:
		h.log.Error("confirmation action failed",
			slog.String("gate_id", gateID),
			slog.String("action", action),
			slog.Any("err", err),
		)
	}
}

func (h *Handler) rejectGate(ctx context.Context, i *discordgo.Interaction, err error) {
	if errors.Is(err, confirm.ErrForeignActor) {
		h.respondEphemeral(ctx, i, MsgForeignActor)
		return
	}
	h.respondEphemeral(ctx, i, MsgGateResolved)
}

// gateRenderer обновляет сообщение шлюза в ответ на нажатие: обе кнопки отключаются.
func (h *Handler) gateRenderer(i *discordgo.Interaction) confirm.Renderer {
	return confirm.RendererFunc(func(ctx context.Context, g *confirm.Gate) error {
		return h.session.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Components: gateComponents(g),
			},
		}, discordgo.WithContext(ctx))
	})
}

func gateComponents(g *confirm.Gate) []discordgo.MessageComponent {
	s := g.Summary()
	confirmLabel := s.ConfirmLabel
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	cancelLabel := "Cancel"

	state := g.State()
	switch state {
	case confirm.Confirmed:
		confirmLabel = s.ConfirmedLabel
		if confirmLabel == "" {
			confirmLabel = "Confirmed"
		}
	case confirm.Cancelled:
		cancelLabel = "Cancelled"
	}
	resolved := state != confirm.Pending

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    cancelLabel,
				Style:    discordgo.SecondaryButton,
				CustomID: GateCustomID(g.ID(), actionCancel),
				Disabled: resolved,
			},
			discordgo.Button{
				Label:    confirmLabel,
				Style:    discordgo.SuccessButton,
				CustomID: GateCustomID(g.ID(), actionConfirm),
				Disabled: resolved,
			},
		}},
	}
}

func summaryEmbed(s confirm.Summary) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       s.Title,
		Description: s.Description,
		Color:       colorOrange,
	}
	for _, f := range s.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value})
	}
	if s.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: s.Footer}
	}
	return e
}

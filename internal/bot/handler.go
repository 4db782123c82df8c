// Package bot обрабатывает слэш-команды /codejam и нажатия кнопок.
package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"code-jam-service/internal/confirm"
	"code-jam-service/internal/metrics"
	"code-jam-service/internal/model"
	"code-jam-service/internal/service"
)

// Session описывает методы discordgo.Session, через которые бот отвечает на взаимодействия.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Provisioner создаёт команды по распределению.
type Provisioner interface {
	CreateTeams(ctx context.Context, a *model.TeamAssignment) (service.CreationReport, error)
}

// Teardown завершает джем.
type Teardown interface {
	Snapshot(ctx context.Context) (model.CategorySnapshot, error)
	Preview(snapshot model.CategorySnapshot) string
	End(ctx context.Context, snapshot model.CategorySnapshot) service.TeardownReport
}

// Membership меняет и показывает членство участников.
type Membership interface {
	Info(ctx context.Context, member model.Member) (model.UserTeam, error)
	Move(ctx context.Context, member model.Member, target string) (service.MoveResult, error)
	Remove(ctx context.Context, member model.Member) (service.RemoveResult, error)
}

// RosterFetcher скачивает ростер по ссылке.
type RosterFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// RosterParser разбирает ростер.
type RosterParser interface {
	Parse(ctx context.Context, r io.Reader) (*model.TeamAssignment, []service.SkippedRow, error)
}

// Paster публикует длинный текст и возвращает ссылку.
type Paster interface {
	Send(ctx context.Context, contents string) (string, error)
}

// Deps содержит сервисы, которые вызывает бот.
type Deps struct {
	Teams   Provisioner
	Jam     Teardown
	Members Membership
	Fetcher RosterFetcher
	Parser  RosterParser
	Paste   Paster
}

// Options содержит идентификаторы сервера, которые нужны боту.
type Options struct {
	AdminRoleIDs           []string
	EventTeamRoleID        string
	ParticipantsRoleID     string
	AnnouncementsChannelID string
}

// Handler обрабатывает взаимодействия. Открытые шлюзы подтверждения живут в памяти процесса.
type Handler struct {
	session Session
	deps    Deps
	opts    Options
	gates   *confirm.Registry
	log     *slog.Logger
}

// NewHandler создаёт обработчик взаимодействий.
func NewHandler(session Session, deps Deps, opts Options, log *slog.Logger) *Handler {
	return &Handler{
		session: session,
		deps:    deps,
		opts:    opts,
		gates:   confirm.NewRegistry(),
		log:     log,
	}
}

// Listener возвращает обработчик события для discordgo.Session.AddHandler.
func (h *Handler) Listener(ctx context.Context) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		h.Handle(ctx, ic.Interaction)
	}
}

// Handle обрабатывает одно взаимодействие.
func (h *Handler) Handle(ctx context.Context, i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(ctx, i)
	}
}

func (h *Handler) handleCommand(ctx context.Context, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	if data.Name != CommandName || len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	log := h.log.With(slog.String("command", sub.Name), slog.String("actor_id", actorID(i)))

	if err := h.authorize(sub.Name, i.Member); err != nil {
		h.logError(log, err)
		metrics.ObserveCommand(sub.Name, "forbidden")
		h.respondEphemeral(ctx, i, userMessage(err))
		return
	}

	cmd, ok := h.commands()[sub.Name]
	if !ok {
		return
	}

	// все подкоманды ходят во внешние API, поэтому ответ откладывается сразу
	if err := h.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx)); err != nil {
		log.Error("failed to acknowledge command", slog.Any("err", err))
		metrics.ObserveCommand(sub.Name, "error")
		return
	}

	if err := cmd(ctx, i, newOptions(sub.Options, data.Resolved)); err != nil {
		h.logError(log, err)
		metrics.ObserveCommand(sub.Name, "error")
		h.editContent(ctx, i, userMessage(err))
		return
	}
	metrics.ObserveCommand(sub.Name, "ok")
}

type commandFunc func(ctx context.Context, i *discordgo.Interaction, opts options) error

func (h *Handler) commands() map[string]commandFunc {
	return map[string]commandFunc{
		"create":   h.cmdCreate,
		"announce": h.cmdAnnounce,
		"end":      h.cmdEnd,
		"info":     h.cmdInfo,
		"move":     h.cmdMove,
		"remove":   h.cmdRemove,
	}
}

// authorize возвращает FORBIDDEN, если вызывающему нельзя выполнять подкоманду.
func (h *Handler) authorize(command string, m *discordgo.Member) error {
	if !h.allowed(command, m) {
		return service.ErrForbidden(MsgForbidden)
	}
	return nil
}

// allowed проверяет роли вызывающего. info доступна также команде мероприятия.
func (h *Handler) allowed(command string, m *discordgo.Member) bool {
	if m == nil {
		return false
	}
	if m.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	for _, r := range m.Roles {
		for _, admin := range h.opts.AdminRoleIDs {
			if r == admin {
				return true
			}
		}
		if command == "info" && h.opts.EventTeamRoleID != "" && r == h.opts.EventTeamRoleID {
			return true
		}
	}
	return false
}

func (h *Handler) logError(log *slog.Logger, err error) {
	var app *service.AppError
	if errors.As(err, &app) && app.Code != service.CodeUpstream {
		log.Info("command failed", slog.String("code", app.Code), slog.String("message", app.Message))
		return
	}
	log.Error("command failed", slog.Any("err", err))
}

// userMessage возвращает текст ошибки для оператора.
func userMessage(err error) string {
	var app *service.AppError
	if errors.As(err, &app) {
		return app.Message
	}
	return service.MsgSomethingWentWrong
}

func actorID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

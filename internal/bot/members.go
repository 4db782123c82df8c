package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"code-jam-service/internal/model"
	"code-jam-service/internal/service"
)

// Параметры подкоманд участников.
const (
	optionMember  = "member"
	optionNewTeam = "new_team"
)

func (h *Handler) cmdInfo(ctx context.Context, i *discordgo.Interaction, opts options) error {
	member, err := opts.member(optionMember)
	if err != nil {
		return err
	}

	ut, err := h.deps.Members.Info(ctx, member)
	if err != nil {
		return err
	}

	title := member.Username
	if title == "" {
		title = member.Mention()
	}
	return h.editEmbed(ctx, i, &discordgo.MessageEmbed{
		Title: title,
		Color: colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Team", Value: ut.Team.Name, Inline: true},
		},
	})
}

func (h *Handler) cmdMove(ctx context.Context, i *discordgo.Interaction, opts options) error {
	member, err := opts.member(optionMember)
	if err != nil {
		return err
	}
	target := opts.text(optionNewTeam)
	if err := ValidateTeamName(target); err != nil {
		return err
	}

	res, err := h.deps.Members.Move(ctx, member, target)
	if err != nil {
		return err
	}
	h.editContent(ctx, i, res.Message())
	return nil
}

func (h *Handler) cmdRemove(ctx context.Context, i *discordgo.Interaction, opts options) error {
	member, err := opts.member(optionMember)
	if err != nil {
		return err
	}

	res, err := h.deps.Members.Remove(ctx, member)
	if err != nil {
		return err
	}
	h.editContent(ctx, i, res.Message())
	return nil
}

// showTeam отвечает на нажатие постоянной кнопки объявления: канал и состав команды нажавшего.
func (h *Handler) showTeam(ctx context.Context, i *discordgo.Interaction) {
	actor := actorID(i)
	member := memberOf(i)

	ut, err := h.deps.Members.Info(ctx, member)
	if err != nil {
		if service.IsNotFound(err) {
			h.respondEphemeral(ctx, i, MsgShowTeamNoPar)
			return
		}
		h.log.Error("failed to show team", slog.String("actor_id", actor), slog.Any("err", err))
		h.respondEphemeral(ctx, i, MsgShowTeamError)
		return
	}

	err = h.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{teamEmbed(ut.Team.Name, ut.Team.DiscordChannelID, ut.Team.Users)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		h.log.Error("failed to respond", slog.Any("err", err))
	}
}

func teamEmbed(name, channelID string, users []model.TeamUser) *discordgo.MessageEmbed {
	mentions := make([]string, 0, len(users))
	for _, u := range users {
		mentions = append(mentions, fmt.Sprintf("<@%s>", u.UserID))
	}
	members := strings.Join(mentions, "\n")
	if members == "" {
		members = "-"
	}
	channel := "-"
	if channelID != "" {
		channel = fmt.Sprintf("<#%s>", channelID)
	}
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("You have been sorted into %s", name),
		Color: colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your team's channel:", Value: channel},
			{Name: "Your team's members:", Value: members},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Good luck!"},
	}
}

// memberOf возвращает нажавшего как участника сервера.
func memberOf(i *discordgo.Interaction) model.Member {
	m := model.Member{ID: actorID(i)}
	if i.Member != nil {
		m.Roles = append([]string(nil), i.Member.Roles...)
		if i.Member.User != nil {
			m.Username = i.Member.User.Username
		}
	}
	return m
}

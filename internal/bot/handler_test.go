package bot_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"code-jam-service/internal/bot"
	"code-jam-service/internal/model"
	"code-jam-service/internal/service"
)

// fakeSession запоминает все ответы бота.
type fakeSession struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	sent      map[string][]*discordgo.MessageSend
}

func newFakeSession() *fakeSession {
	return &fakeSession{sent: make(map[string][]*discordgo.MessageSend)}
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{}, nil
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[channelID] = append(f.sent[channelID], data)
	return &discordgo.Message{}, nil
}

func (f *fakeSession) lastResponse() *discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

func (f *fakeSession) lastEdit() *discordgo.WebhookEdit {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return nil
	}
	return f.edits[len(f.edits)-1]
}

type membershipMock struct{ mock.Mock }

func (m *membershipMock) Info(ctx context.Context, member model.Member) (model.UserTeam, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(model.UserTeam), args.Error(1)
}

func (m *membershipMock) Move(ctx context.Context, member model.Member, target string) (service.MoveResult, error) {
	args := m.Called(ctx, member, target)
	return args.Get(0).(service.MoveResult), args.Error(1)
}

func (m *membershipMock) Remove(ctx context.Context, member model.Member) (service.RemoveResult, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(service.RemoveResult), args.Error(1)
}

type teardownMock struct{ mock.Mock }

func (m *teardownMock) Snapshot(ctx context.Context) (model.CategorySnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.CategorySnapshot), args.Error(1)
}

func (m *teardownMock) Preview(s model.CategorySnapshot) string {
	return m.Called(s).String(0)
}

func (m *teardownMock) End(ctx context.Context, s model.CategorySnapshot) service.TeardownReport {
	return m.Called(ctx, s).Get(0).(service.TeardownReport)
}

type pasteMock struct{ mock.Mock }

func (m *pasteMock) Send(ctx context.Context, contents string) (string, error) {
	args := m.Called(ctx, contents)
	return args.String(0), args.Error(1)
}

const (
	adminRole = "admin"
	eventRole = "event"
)

func newHandler(s *fakeSession, deps bot.Deps) *bot.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return bot.NewHandler(s, deps, bot.Options{
		AdminRoleIDs:           []string{adminRole},
		EventTeamRoleID:        eventRole,
		ParticipantsRoleID:     "participants",
		AnnouncementsChannelID: "announcements",
	}, log)
}

func command(userID string, roles []string, sub string, opts []*discordgo.ApplicationCommandInteractionDataOption, resolved *discordgo.ApplicationCommandInteractionDataResolved) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "ops",
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID}, Roles: roles},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: bot.CommandName,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name:    sub,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: opts,
			}},
			Resolved: resolved,
		},
	}
}

func press(userID, customID string) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "ops",
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data:      discordgo.MessageComponentInteractionData{CustomID: customID},
	}
}

// gateID достаёт идентификатор шлюза из последней правки ответа на команду.
func gateID(t *testing.T, edit *discordgo.WebhookEdit) string {
	t.Helper()
	require.NotNil(t, edit)
	require.NotNil(t, edit.Components)
	row := (*edit.Components)[0].(discordgo.ActionsRow)
	btn := row.Components[1].(discordgo.Button)
	id, action, ok := bot.ParseGateCustomID(btn.CustomID)
	require.True(t, ok)
	require.Equal(t, "CONFIRM", action)
	return id
}

func TestHandler_Forbidden(t *testing.T) {
	noMember := command("1", nil, "end", nil, nil)
	noMember.Member = nil

	tests := []struct {
		name string
		i    *discordgo.Interaction
	}{
		{name: "Event team cannot end the jam", i: command("1", []string{eventRole}, "end", nil, nil)},
		{name: "Member without roles", i: command("1", nil, "create", nil, nil)},
		{name: "Outside of a guild", i: noMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSession()
			h := newHandler(s, bot.Deps{})

			h.Handle(context.Background(), tt.i)

			resp := s.lastResponse()
			require.NotNil(t, resp)
			assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
			assert.Equal(t, bot.MsgForbidden, resp.Data.Content)
			assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
			assert.Nil(t, s.lastEdit())
		})
	}
}

func TestHandler_InfoAllowedForEventTeam(t *testing.T) {
	s := newFakeSession()
	members := &membershipMock{}
	h := newHandler(s, bot.Deps{Members: members})

	target := model.Member{ID: "42", Username: "lemon", Roles: []string{"r1"}}
	members.On("Info", mock.Anything, target).
		Return(model.UserTeam{UserID: "42", Team: model.Team{Name: "Team Rocket"}}, nil)

	h.Handle(context.Background(), command("1", []string{eventRole}, "info",
		[]*discordgo.ApplicationCommandInteractionDataOption{{Name: "member", Type: discordgo.ApplicationCommandOptionUser, Value: "42"}},
		&discordgo.ApplicationCommandInteractionDataResolved{
			Members: map[string]*discordgo.Member{"42": {Roles: []string{"r1"}}},
			Users:   map[string]*discordgo.User{"42": {ID: "42", Username: "lemon"}},
		}))

	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, s.lastResponse().Type)
	edit := s.lastEdit()
	require.NotNil(t, edit)
	require.NotNil(t, edit.Embeds)
	embed := (*edit.Embeds)[0]
	assert.Equal(t, "lemon", embed.Title)
	assert.Equal(t, "Team", embed.Fields[0].Name)
	assert.Equal(t, "Team Rocket", embed.Fields[0].Value)
	members.AssertExpectations(t)
}

func TestHandler_MoveReportsServiceMessage(t *testing.T) {
	s := newFakeSession()
	members := &membershipMock{}
	h := newHandler(s, bot.Deps{Members: members})

	members.On("Move", mock.Anything, mock.Anything, "Team X").
		Return(service.MoveResult{}, service.ErrNotFound(":x: Team `Team X` does not exist in the database!"))

	h.Handle(context.Background(), command("1", []string{adminRole}, "move",
		[]*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "member", Type: discordgo.ApplicationCommandOptionUser, Value: "42"},
			{Name: "new_team", Type: discordgo.ApplicationCommandOptionString, Value: "Team X"},
		},
		&discordgo.ApplicationCommandInteractionDataResolved{
			Members: map[string]*discordgo.Member{"42": {}},
		}))

	edit := s.lastEdit()
	require.NotNil(t, edit)
	require.NotNil(t, edit.Content)
	assert.Equal(t, ":x: Team `Team X` does not exist in the database!", *edit.Content)
}

func TestHandler_CreateWithoutSource(t *testing.T) {
	s := newFakeSession()
	h := newHandler(s, bot.Deps{})

	h.Handle(context.Background(), command("1", []string{adminRole}, "create", nil, nil))

	edit := s.lastEdit()
	require.NotNil(t, edit)
	require.NotNil(t, edit.Content)
	assert.Equal(t, bot.MsgNoRosterSrc, *edit.Content)
}

func TestHandler_EndGate(t *testing.T) {
	snapshot := model.CategorySnapshot{
		Categories: []model.Category{{ID: "cat", Name: "Code Jam"}},
	}

	t.Run("Confirm by another actor is rejected, confirm by owner tears down once", func(t *testing.T) {
		s := newFakeSession()
		jam := &teardownMock{}
		paste := &pasteMock{}
		h := newHandler(s, bot.Deps{Jam: jam, Paste: paste})

		jam.On("Snapshot", mock.Anything).Return(snapshot, nil)
		jam.On("Preview", snapshot).Return("Categories and Channels: \n")
		paste.On("Send", mock.Anything, "Categories and Channels: \n").Return("", errors.New("paste down"))
		jam.On("End", mock.Anything, snapshot).Return(service.TeardownReport{DeletedCategories: 1}).Once()

		h.Handle(context.Background(), command("owner", []string{adminRole}, "end", nil, nil))

		edit := s.lastEdit()
		require.NotNil(t, edit.Embeds)
		assert.Equal(t, "**Unable to send deletion details to the pasting service.**", (*edit.Embeds)[0].Fields[0].Value)
		id := gateID(t, edit)

		// чужое нажатие
		h.Handle(context.Background(), press("intruder", bot.GateCustomID(id, "CONFIRM")))
		assert.Equal(t, bot.MsgForeignActor, s.lastResponse().Data.Content)
		jam.AssertNotCalled(t, "End", mock.Anything, mock.Anything)

		// подтверждение владельцем
		h.Handle(context.Background(), press("owner", bot.GateCustomID(id, "CONFIRM")))
		resp := s.lastResponse()
		assert.Equal(t, discordgo.InteractionResponseUpdateMessage, resp.Type)
		row := resp.Data.Components[0].(discordgo.ActionsRow)
		for _, c := range row.Components {
			assert.True(t, c.(discordgo.Button).Disabled)
		}
		assert.Equal(t, "Confirmed", row.Components[1].(discordgo.Button).Label)

		require.Len(t, s.sent["ops"], 1)
		assert.Equal(t, bot.MsgJamEnded, s.sent["ops"][0].Content)

		// повторное нажатие не запускает удаление ещё раз
		h.Handle(context.Background(), press("owner", bot.GateCustomID(id, "CONFIRM")))
		assert.True(t, strings.HasPrefix(s.lastResponse().Data.Content, ":x:"))
		jam.AssertExpectations(t)
	})

	t.Run("Cancel never tears down", func(t *testing.T) {
		s := newFakeSession()
		jam := &teardownMock{}
		paste := &pasteMock{}
		h := newHandler(s, bot.Deps{Jam: jam, Paste: paste})

		jam.On("Snapshot", mock.Anything).Return(snapshot, nil)
		jam.On("Preview", snapshot).Return("preview")
		paste.On("Send", mock.Anything, "preview").Return("https://paste.local/abc", nil)

		h.Handle(context.Background(), command("owner", []string{adminRole}, "end", nil, nil))
		id := gateID(t, s.lastEdit())

		h.Handle(context.Background(), press("owner", bot.GateCustomID(id, "CANCEL")))
		row := s.lastResponse().Data.Components[0].(discordgo.ActionsRow)
		assert.Equal(t, "Cancelled", row.Components[0].(discordgo.Button).Label)

		jam.AssertNotCalled(t, "End", mock.Anything, mock.Anything)
		assert.Empty(t, s.sent["ops"])
	})

	t.Run("Nothing to delete", func(t *testing.T) {
		s := newFakeSession()
		jam := &teardownMock{}
		h := newHandler(s, bot.Deps{Jam: jam})

		jam.On("Snapshot", mock.Anything).Return(model.CategorySnapshot{}, service.ErrNothingToDelete())

		h.Handle(context.Background(), command("owner", []string{adminRole}, "end", nil, nil))
		assert.Equal(t, ":x: The Code Jam channels and roles have already been deleted! ", *s.lastEdit().Content)
	})
}

func TestHandler_AnnounceAndShowTeam(t *testing.T) {
	s := newFakeSession()
	members := &membershipMock{}
	h := newHandler(s, bot.Deps{Members: members})

	h.Handle(context.Background(), command("owner", []string{adminRole}, "announce", nil, nil))
	id := gateID(t, s.lastEdit())
	h.Handle(context.Background(), press("owner", bot.GateCustomID(id, "CONFIRM")))

	row := s.lastResponse().Data.Components[0].(discordgo.ActionsRow)
	assert.Equal(t, "Teams have been announced!", row.Components[1].(discordgo.Button).Label)

	require.Len(t, s.sent["announcements"], 1)
	msg := s.sent["announcements"][0]
	assert.Equal(t, "<@&participants> ! You have been sorted into a team! Click the button below to get a detailed description!", msg.Content)
	btn := msg.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, bot.ShowTeamCustomID, btn.CustomID)

	// постоянная кнопка работает без открытого шлюза
	members.On("Info", mock.Anything, mock.MatchedBy(func(m model.Member) bool { return m.ID == "7" })).
		Return(model.UserTeam{Team: model.Team{
			Name:             "Team Rocket",
			DiscordChannelID: "555",
			Users:            []model.TeamUser{{UserID: "7"}, {UserID: "8"}},
		}}, nil)
	members.On("Info", mock.Anything, mock.MatchedBy(func(m model.Member) bool { return m.ID == "9" })).
		Return(model.UserTeam{}, service.ErrNotFound("not a participant"))

	h.Handle(context.Background(), press("7", bot.ShowTeamCustomID))
	resp := s.lastResponse()
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	embed := resp.Data.Embeds[0]
	assert.Equal(t, "You have been sorted into Team Rocket", embed.Title)
	assert.Equal(t, "<#555>", embed.Fields[0].Value)
	assert.Equal(t, "<@7>\n<@8>", embed.Fields[1].Value)

	h.Handle(context.Background(), press("9", bot.ShowTeamCustomID))
	assert.Equal(t, bot.MsgShowTeamNoPar, s.lastResponse().Data.Content)
}

func TestHandler_ExpiredGate(t *testing.T) {
	s := newFakeSession()
	h := newHandler(s, bot.Deps{})

	h.Handle(context.Background(), press("owner", bot.GateCustomID("unknown", "CONFIRM")))
	assert.Equal(t, bot.MsgGateExpired, s.lastResponse().Data.Content)
}

func TestParseGateCustomID(t *testing.T) {
	id, action, ok := bot.ParseGateCustomID(bot.GateCustomID("abc", "CANCEL"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
	assert.Equal(t, "CANCEL", action)

	for _, bad := range []string{"", bot.ShowTeamCustomID, "CJ:GATE::CONFIRM", "CJ:GATE:abc:DELETE", "XX:GATE:abc:CONFIRM"} {
		_, _, ok := bot.ParseGateCustomID(bad)
		assert.False(t, ok, bad)
	}
}

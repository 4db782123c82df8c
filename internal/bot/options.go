package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"code-jam-service/internal/model"
	"code-jam-service/internal/service"
)

// options даёт доступ к параметрам подкоманды по имени.
type options struct {
	byName   map[string]*discordgo.ApplicationCommandInteractionDataOption
	resolved *discordgo.ApplicationCommandInteractionDataResolved
}

func newOptions(opts []*discordgo.ApplicationCommandInteractionDataOption, resolved *discordgo.ApplicationCommandInteractionDataResolved) options {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		byName[o.Name] = o
	}
	return options{byName: byName, resolved: resolved}
}

func (o options) raw(name string) (string, bool) {
	opt, ok := o.byName[name]
	if !ok || opt.Value == nil {
		return "", false
	}
	return strings.TrimSpace(fmt.Sprint(opt.Value)), true
}

func (o options) text(name string) string {
	v, _ := o.raw(name)
	return v
}

// attachmentURL возвращает ссылку на вложение, переданное параметром name.
func (o options) attachmentURL(name string) (string, bool) {
	id, ok := o.raw(name)
	if !ok || o.resolved == nil {
		return "", false
	}
	a, ok := o.resolved.Attachments[id]
	if !ok || a == nil {
		return "", false
	}
	return a.URL, true
}

// member возвращает участника сервера, переданного параметром name.
func (o options) member(name string) (model.Member, error) {
	id, ok := o.raw(name)
	if !ok {
		return model.Member{}, service.ErrInput(fmt.Sprintf("Missing required option `%s`.", name))
	}
	if o.resolved == nil {
		return model.Member{}, service.ErrNotFound(MsgNotInGuild)
	}
	m, ok := o.resolved.Members[id]
	if !ok || m == nil {
		return model.Member{}, service.ErrNotFound(MsgNotInGuild)
	}

	member := model.Member{ID: id, Roles: append([]string(nil), m.Roles...)}
	if u, ok := o.resolved.Users[id]; ok && u != nil {
		member.Username = u.Username
	}
	return member, nil
}

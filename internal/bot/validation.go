package bot

import (
	"fmt"
	"net/url"
	"regexp"

	"code-jam-service/internal/service"
)

// Ограничения параметров команд
var (
	reTeamName = regexp.MustCompile(`^\S.{0,99}$`)
)

// ValidateRosterURL Валидация ссылки на ростер для /codejam create
func ValidateRosterURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return service.ErrInput(fmt.Sprintf("`%s` is not a valid link.", raw))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return service.ErrInput("The roster link must use http or https.")
	}
	return nil
}

// ValidateTeamName Валидация имени команды для /codejam move
func ValidateTeamName(name string) error {
	if name == "" {
		return service.ErrInput("new_team is required")
	}
	if !reTeamName.MatchString(name) {
		return service.ErrInput("new_team must be at most 100 characters long")
	}
	return nil
}

package model

import "fmt"

// Member описывает участника сервера.
type Member struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Mention возвращает упоминание участника в формате сообщений.
func (m Member) Mention() string {
	return fmt.Sprintf("<@%s>", m.ID)
}

// HasRole сообщает, выдана ли участнику роль.
func (m Member) HasRole(roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// Role описывает роль сервера.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OverwriteType различает права, выданные роли или конкретному участнику.
type OverwriteType int

const (
	// OverwriteRole означает переопределение прав для роли.
	OverwriteRole OverwriteType = iota
	// OverwriteMember означает переопределение прав для участника.
	OverwriteMember
)

// Overwrite описывает запись переопределения прав канала.
type Overwrite struct {
	ID   string
	Type OverwriteType
}

// Channel описывает текстовый канал сервера.
type Channel struct {
	ID         string
	Name       string
	ParentID   string
	Overwrites []Overwrite
}

// Category описывает категорию каналов вместе с её каналами.
type Category struct {
	ID       string
	Name     string
	Channels []Channel
}

// CategorySnapshot фиксирует категории, каналы и роли джема на момент начала завершения.
// Один и тот же снимок используется и для предпросмотра, и для удаления.
type CategorySnapshot struct {
	Categories       []Category
	Roles            []Role
	RolesUnavailable bool
}

// Empty сообщает, что удалять нечего.
func (s CategorySnapshot) Empty() bool {
	return len(s.Categories) == 0 && len(s.Roles) == 0
}

package model

// RosterRow описывает одну запись ростера после разбора.
type RosterRow struct {
	TeamName string
	MemberID string
	IsLeader bool
}

// MemberAssignment описывает участника, распределённого в команду.
type MemberAssignment struct {
	Member   Member
	IsLeader bool
}

// TeamAssignment хранит распределение участников по командам в порядке первого появления.
// Команда без разрешённых участников остаётся в распределении.
type TeamAssignment struct {
	order []string
	teams map[string][]MemberAssignment
}

// NewTeamAssignment создаёт пустое распределение.
func NewTeamAssignment() *TeamAssignment {
	return &TeamAssignment{teams: make(map[string][]MemberAssignment)}
}

// Ensure регистрирует команду, если её ещё нет.
func (a *TeamAssignment) Ensure(team string) {
	if _, ok := a.teams[team]; ok {
		return
	}
	a.order = append(a.order, team)
	a.teams[team] = make([]MemberAssignment, 0)
}

// Add добавляет участника в конец списка команды.
func (a *TeamAssignment) Add(team string, m MemberAssignment) {
	a.Ensure(team)
	a.teams[team] = append(a.teams[team], m)
}

// Teams возвращает имена команд в порядке первого появления.
func (a *TeamAssignment) Teams() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Members возвращает участников команды.
func (a *TeamAssignment) Members(team string) []MemberAssignment {
	return a.teams[team]
}

// Has сообщает, есть ли команда в распределении.
func (a *TeamAssignment) Has(team string) bool {
	_, ok := a.teams[team]
	return ok
}

// Len возвращает количество команд.
func (a *TeamAssignment) Len() int {
	return len(a.order)
}

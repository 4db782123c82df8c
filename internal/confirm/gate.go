// Package confirm реализует шлюз подтверждения: одноразовый автомат PENDING → {CONFIRMED, CANCELLED}
// для массовых и необратимых действий.
package confirm

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"code-jam-service/internal/metrics"
)

// State описывает состояние шлюза.
type State int

const (
	Pending State = iota
	Confirmed
	Cancelled
)

// String возвращает имя состояния.
func (s State) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

var (
	// ErrForeignActor возвращается, если с шлюзом взаимодействует не тот, кому он показан.
	ErrForeignActor = errors.New("confirm: interaction from another actor")

	// ErrResolved возвращается при любом взаимодействии после перехода в конечное состояние.
	ErrResolved = errors.New("confirm: gate already resolved")
)

// Action выполняется при переходе шлюза в конечное состояние.
type Action func(ctx context.Context) error

// Summary описывает то, что показывается оператору до подтверждения.
// Пустые подписи кнопок заменяются на Confirm/Confirmed.
type Summary struct {
	Title       string
	Description string
	Fields      []Field
	Footer      string

	ConfirmLabel   string
	ConfirmedLabel string
}

// Field описывает поле сводки.
type Field struct {
	Name  string
	Value string
}

// Renderer отображает переход шлюза в конечное состояние. Вызывается до действия.
type Renderer interface {
	Render(ctx context.Context, g *Gate) error
}

// RendererFunc позволяет использовать функцию как Renderer.
type RendererFunc func(ctx context.Context, g *Gate) error

// Render вызывает f(ctx, g).
func (f RendererFunc) Render(ctx context.Context, g *Gate) error {
	return f(ctx, g)
}

// Gate хранит ожидающее действие, показанное одному оператору.
type Gate struct {
	id      string
	actorID string
	summary Summary

	mu        sync.Mutex
	state     State
	onConfirm Action
	onCancel  Action
	done      chan struct{}
}

// Present создаёт шлюз для оператора actorID со сводкой summary.
func Present(actorID string, summary Summary) *Gate {
	return &Gate{
		id:      uuid.NewString(),
		actorID: actorID,
		summary: summary,
		state:   Pending,
		done:    make(chan struct{}),
	}
}

// OnConfirm регистрирует действие при подтверждении.
func (g *Gate) OnConfirm(fn Action) *Gate {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onConfirm = fn
	return g
}

// OnCancel регистрирует действие при отмене.
func (g *Gate) OnCancel(fn Action) *Gate {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onCancel = fn
	return g
}

// ID возвращает стабильный идентификатор шлюза.
func (g *Gate) ID() string { return g.id }

// ActorID возвращает идентификатор оператора, которому показан шлюз.
func (g *Gate) ActorID() string { return g.actorID }

// Summary возвращает сводку шлюза.
func (g *Gate) Summary() Summary { return g.summary }

// State возвращает текущее состояние.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Done закрывается, когда шлюз перешёл в конечное состояние и действие завершилось.
func (g *Gate) Done() <-chan struct{} { return g.done }

// Check проверяет, может ли actorID взаимодействовать с шлюзом, не меняя состояния.
func (g *Gate) Check(actorID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.checkLocked(actorID)
}

// Confirm переводит шлюз в CONFIRMED, отображает переход и синхронно выполняет действие подтверждения.
func (g *Gate) Confirm(ctx context.Context, actorID string, r Renderer) error {
	return g.resolve(ctx, actorID, Confirmed, r)
}

// Cancel переводит шлюз в CANCELLED и отображает переход. Действие подтверждения не вызывается.
func (g *Gate) Cancel(ctx context.Context, actorID string, r Renderer) error {
	return g.resolve(ctx, actorID, Cancelled, r)
}

func (g *Gate) resolve(ctx context.Context, actorID string, to State, r Renderer) error {
	g.mu.Lock()
	if err := g.checkLocked(actorID); err != nil {
		g.mu.Unlock()
		return err
	}
	g.state = to
	action := g.onCancel
	if to == Confirmed {
		action = g.onConfirm
	}
	g.mu.Unlock()

	defer close(g.done)
	metrics.ObserveGateTransition(to.String())

	var renderErr error
	if r != nil {
		renderErr = r.Render(ctx, g)
	}
	if action == nil {
		return renderErr
	}
	return errors.Join(renderErr, action(ctx))
}

func (g *Gate) checkLocked(actorID string) error {
	if actorID != g.actorID {
		return ErrForeignActor
	}
	if g.state != Pending {
		return ErrResolved
	}
	return nil
}

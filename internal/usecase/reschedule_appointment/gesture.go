package reschedule_appointment

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Gesture жест перетаскивания одной записи.
// Idle -> Dragging -> Releasing -> Committing -> Idle, откат возвращает в Idle из любого шага.
type Gesture struct {
	uc     *UseCase
	source domain.AugmentedAppointment

	mu     sync.Mutex
	state  State
	offset float64
}

// Source снимок записи на момент начала жеста
func (g *Gesture) Source() domain.AugmentedAppointment {
	return g.source
}

// State текущее состояние
func (g *Gesture) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Offset текущее визуальное смещение в пикселях
func (g *Gesture) Offset() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.offset
}

// Move запоминает вертикальное смещение. Ничего не проверяет и не сохраняет.
func (g *Gesture) Move(dy float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateDragging {
		return ErrInvalidState
	}
	g.offset = dy
	return nil
}

// End отпускает запись: привязка, проверки, коммит или откат.
// Outcome возвращается всегда, кроме недопустимого состояния; ошибка описывает отказ.
func (g *Gesture) End(ctx context.Context, drop Drop) (*Outcome, error) {
	g.mu.Lock()
	if g.state != StateDragging {
		g.mu.Unlock()
		return nil, ErrInvalidState
	}
	g.state = StateReleasing
	dy := g.offset
	ticket := g.uc.queue.take()
	g.mu.Unlock()

	outcome, err := g.uc.commit(ctx, g, ticket, dy, drop)
	g.settle(outcome.Offset)

	return outcome, err
}

// Cancel прерывает жест без коммита
func (g *Gesture) Cancel() {
	g.mu.Lock()
	if g.state != StateDragging {
		g.mu.Unlock()
		return
	}
	g.state = StateIdle
	g.offset = 0
	g.mu.Unlock()

	g.uc.release(g.source.ID)
}

func (g *Gesture) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

// settle фиксирует итоговое смещение, переводит жест в Idle и освобождает запись
func (g *Gesture) settle(offset float64) {
	g.mu.Lock()
	g.state = StateIdle
	g.offset = offset
	g.mu.Unlock()

	g.uc.release(g.source.ID)
}

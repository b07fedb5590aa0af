package order

import (
	"context"
	"sync"
	"time"

	"maktaba/internal/domain"
	applog "maktaba/internal/log"
)

// Choice is the shopper's opt-in for being told the order is ready.
type Choice string

const (
	ChoiceNone  Choice = ""
	ChoicePush  Choice = "push"
	ChoiceEmail Choice = "email"
)

// Notifier delivers the order-ready notice. Both paths are simulated sinks.
type Notifier interface {
	Push(o domain.Order)
	Email(ctx context.Context, o domain.Order)
}

// Lifecycle advances a single order through pending -> ready -> completed on
// timers. It is keyed to the order-status view: tearing the view down stops
// the pending timer and the order never advances again. The cancelled status
// exists in the data model but no transition feeds it.
type Lifecycle struct {
	mu            sync.Mutex
	order         domain.Order
	readyDelay    time.Duration
	completeDelay time.Duration
	notifier      Notifier
	choice        Choice
	notified      bool
	timer         *time.Timer
	torndown      bool
}

func NewLifecycle(o domain.Order, readyDelay, completeDelay time.Duration, n Notifier) *Lifecycle {
	return &Lifecycle{
		order:         o,
		readyDelay:    readyDelay,
		completeDelay: completeDelay,
		notifier:      n,
	}
}

// Start schedules the first transition. Call once, right after checkout.
func (l *Lifecycle) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.torndown || l.order.Status != domain.OrderPending {
		return
	}
	l.timer = time.AfterFunc(l.readyDelay, l.toReady)
}

func (l *Lifecycle) toReady() {
	l.mu.Lock()
	if l.torndown || l.order.Status != domain.OrderPending {
		l.mu.Unlock()
		return
	}
	l.order.Status = domain.OrderReady
	l.timer = time.AfterFunc(l.completeDelay, l.toCompleted)
	o := l.order
	l.mu.Unlock()

	applog.Info(nil, "order.status", map[string]any{"order_id": o.ID, "status": string(o.Status)})
	l.maybeNotify(o)
}

func (l *Lifecycle) toCompleted() {
	l.mu.Lock()
	if l.torndown || l.order.Status != domain.OrderReady {
		l.mu.Unlock()
		return
	}
	l.order.Status = domain.OrderCompleted
	o := l.order
	l.mu.Unlock()

	applog.Info(nil, "order.status", map[string]any{"order_id": o.ID, "status": string(o.Status)})
}

// Teardown cancels any scheduled transition. It runs when the shopper leaves
// the order-status view; an abandoned order never advances.
func (l *Lifecycle) Teardown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.torndown = true
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// SetChoice records the notification opt-in. Opting in after the order is
// already ready dispatches immediately; the notice is sent at most once.
func (l *Lifecycle) SetChoice(c Choice) {
	l.mu.Lock()
	l.choice = c
	o := l.order
	l.mu.Unlock()
	if o.Status == domain.OrderReady {
		l.maybeNotify(o)
	}
}

func (l *Lifecycle) Choice() Choice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.choice
}

func (l *Lifecycle) maybeNotify(o domain.Order) {
	l.mu.Lock()
	if l.notified || l.choice == ChoiceNone || l.notifier == nil {
		l.mu.Unlock()
		return
	}
	l.notified = true
	choice := l.choice
	l.mu.Unlock()

	switch choice {
	case ChoicePush:
		l.notifier.Push(o)
	case ChoiceEmail:
		l.notifier.Email(context.Background(), o)
	}
}

// Order returns a snapshot of the order at its current status.
func (l *Lifecycle) Order() domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order
}

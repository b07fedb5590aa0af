// Package session holds all per-shopper state: cart, comparison set, the
// signed-in identity, the active screen, and the order lifecycle after
// checkout. Everything lives in memory keyed by the sid cookie and is lost
// on restart.
package session

import (
	"sync"

	"maktaba/internal/domain"
	"maktaba/internal/order"
	"maktaba/internal/view"
)

type Session struct {
	ID      string
	Cart    *Cart
	Compare *Compare

	mu        sync.Mutex
	user      *domain.User
	viewState view.State
	pending   *domain.Order
	lifecycle *order.Lifecycle
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		Cart:      &Cart{},
		Compare:   &Compare{},
		viewState: view.Home(),
	}
}

// User returns the authenticated identity, or nil while anonymous.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser settles the auth state; last writer wins.
func (s *Session) SetUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Session) View() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewState
}

func (s *Session) SetView(v view.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewState = v
}

// PendingOrder is the order built at checkout, awaiting the shopper's
// confirmation in the messaging app before it becomes active.
func (s *Session) PendingOrder() *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Session) SetPendingOrder(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = o
}

// Lifecycle returns the active order lifecycle, or nil outside orderStatus.
func (s *Session) Lifecycle() *order.Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle
}

// StartOrder installs a new lifecycle, tearing down any previous one so an
// abandoned order can never advance in the background.
func (s *Session) StartOrder(l *order.Lifecycle) {
	s.mu.Lock()
	prev := s.lifecycle
	s.lifecycle = l
	s.mu.Unlock()
	if prev != nil {
		prev.Teardown()
	}
	l.Start()
}

// EndOrder tears down the active lifecycle when the shopper leaves the
// order-status view.
func (s *Session) EndOrder() {
	s.mu.Lock()
	prev := s.lifecycle
	s.lifecycle = nil
	s.mu.Unlock()
	if prev != nil {
		prev.Teardown()
	}
}

// Store hands out sessions by sid.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for sid, creating it on first sight.
func (st *Store) Get(sid string) *Session {
	st.mu.RLock()
	s := st.sessions[sid]
	st.mu.RUnlock()
	if s != nil {
		return s
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if s = st.sessions[sid]; s == nil {
		s = newSession(sid)
		st.sessions[sid] = s
	}
	return s
}

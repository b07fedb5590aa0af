// Package admin guards the catalog management surface. Credentials come from
// configuration and unlock a short-lived session token; there is no global
// unlocked flag.
package admin

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid username or password")

const tokenTTL = 8 * time.Hour

type Gate struct {
	username string
	passHash string // bcrypt

	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
	now    func() time.Time
}

func NewGate(username, passHash string) *Gate {
	return &Gate{
		username: username,
		passHash: passHash,
		tokens:   make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login checks the exact credential pair and issues a session token. Any
// mismatch returns ErrBadCreds and leaves the gate closed.
func (g *Gate) Login(username, password string) (string, error) {
	if username != g.username {
		return "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(g.passHash), []byte(password)) != nil {
		return "", ErrBadCreds
	}
	tok := uuid.NewString()
	g.mu.Lock()
	g.tokens[tok] = g.now().Add(tokenTTL)
	g.mu.Unlock()
	return tok, nil
}

// Valid reports whether the token belongs to a live admin session.
func (g *Gate) Valid(token string) bool {
	if token == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	exp, ok := g.tokens[token]
	if !ok {
		return false
	}
	if g.now().After(exp) {
		delete(g.tokens, token)
		return false
	}
	return true
}

// Logout revokes the token.
func (g *Gate) Logout(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.tokens, token)
}

// Package auth manages the shopper's identity: an OAuth-style delegate to
// the hosted provider when configured, a canned mock identity otherwise.
package auth

import (
	"context"

	"maktaba/internal/domain"
	applog "maktaba/internal/log"
	"maktaba/internal/session"
)

// Provider is the external identity provider surface we rely on.
type Provider interface {
	AuthorizeURL(redirectTo string) string
	User(ctx context.Context, accessToken string) (domain.User, string, error)
	SignOut(ctx context.Context, accessToken string) error
}

// ProfileStore receives a best-effort mirror of the signed-in profile.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, u domain.User, googleID string) error
}

// MockUser is the identity used when no provider is configured.
var MockUser = domain.User{
	ID:        "mock-user-123",
	Name:      "مستخدم تجريبي",
	Email:     "mock@example.com",
	AvatarURL: "https://i.pravatar.cc/150?u=mock-user",
}

type Service struct {
	Provider Provider     // nil when not configured
	Profiles ProfileStore // optional, may be nil
}

func (s *Service) Configured() bool { return s.Provider != nil }

// BeginURL returns the provider redirect for starting a sign-in. The second
// value is false when no provider is configured and the caller should fall
// back to MockLogin.
func (s *Service) BeginURL(redirectTo string) (string, bool) {
	if s.Provider == nil {
		return "", false
	}
	return s.Provider.AuthorizeURL(redirectTo), true
}

// MockLogin settles the session synchronously on the canned identity. The
// profile is mirrored like any other sign-in so a local users table sees it.
func (s *Service) MockLogin(ctx context.Context, sess *session.Session) {
	u := MockUser
	sess.SetUser(&u)
	s.mirror(ctx, u, "")
}

func (s *Service) mirror(ctx context.Context, u domain.User, googleID string) {
	if s.Profiles == nil {
		return
	}
	if err := s.Profiles.UpsertProfile(ctx, u, googleID); err != nil {
		applog.Error(nil, "auth.profile.upsert.fail", err, map[string]any{"user_id": u.ID})
	}
}

// CompleteSignIn resolves the provider callback token into an identity and
// settles the session. The profile mirror is best effort: a failed upsert is
// logged, never surfaced, because the session state has already settled.
func (s *Service) CompleteSignIn(ctx context.Context, sess *session.Session, accessToken string) error {
	if s.Provider == nil {
		s.MockLogin(ctx, sess)
		return nil
	}
	u, googleID, err := s.Provider.User(ctx, accessToken)
	if err != nil {
		return err
	}
	sess.SetUser(&u)
	s.mirror(ctx, u, googleID)
	return nil
}

// EndSession clears the identity. Provider sign-out is best effort.
func (s *Service) EndSession(ctx context.Context, sess *session.Session, accessToken string) {
	if s.Provider != nil && accessToken != "" {
		if err := s.Provider.SignOut(ctx, accessToken); err != nil {
			applog.Error(nil, "auth.signout.fail", err, nil)
		}
	}
	sess.SetUser(nil)
}

package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"maktaba/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// UpsertProfile mirrors a signed-in identity, matching the hosted store's
// users collection shape.
func (r *UserRepo) UpsertProfile(ctx context.Context, u domain.User, googleID string) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO users(id,email,name,avatar_url,google_id,last_sign_in)
	  VALUES(?,?,?,?,?,?)
	  ON CONFLICT(id) DO UPDATE SET
	    email=excluded.email, name=excluded.name, avatar_url=excluded.avatar_url,
	    google_id=excluded.google_id, last_sign_in=excluded.last_sign_in
	`, u.ID, u.Email, u.Name, u.AvatarURL, googleID, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.Get(&u, `SELECT id,email,name,avatar_url FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

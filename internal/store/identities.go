package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reclaimit/reclaimit/internal/model"
)

// CreateIdentity creates a new authentication identity.
func CreateIdentity(ctx context.Context, db *sql.DB, uid, email, passwordHash string) (*model.Identity, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO identities (uid, email, password_hash) VALUES (?, ?, ?)`,
		uid, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating identity: %w", err)
	}

	return GetIdentity(ctx, db, uid)
}

// GetIdentity returns an identity by uid.
func GetIdentity(ctx context.Context, db *sql.DB, uid string) (*model.Identity, error) {
	id := &model.Identity{}
	err := db.QueryRowContext(ctx,
		`SELECT uid, email, password_hash, email_verified, created_at
		 FROM identities WHERE uid = ?`, uid,
	).Scan(&id.UID, &id.Email, &id.PasswordHash, &id.EmailVerified, &id.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting identity: %w", err)
	}
	return id, nil
}

// GetIdentityByEmail returns an identity by login email.
func GetIdentityByEmail(ctx context.Context, db *sql.DB, email string) (*model.Identity, error) {
	id := &model.Identity{}
	err := db.QueryRowContext(ctx,
		`SELECT uid, email, password_hash, email_verified, created_at
		 FROM identities WHERE email = ?`, email,
	).Scan(&id.UID, &id.Email, &id.PasswordHash, &id.EmailVerified, &id.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting identity by email: %w", err)
	}
	return id, nil
}

// SetIdentityVerified marks an identity's email as confirmed.
func SetIdentityVerified(ctx context.Context, db *sql.DB, uid string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE identities SET email_verified = 1 WHERE uid = ?`, uid,
	)
	if err != nil {
		return fmt.Errorf("marking identity verified: %w", err)
	}
	return nil
}

// UpdateIdentityPassword replaces an identity's password hash.
func UpdateIdentityPassword(ctx context.Context, db *sql.DB, uid, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE identities SET password_hash = ? WHERE uid = ?`,
		passwordHash, uid,
	)
	if err != nil {
		return fmt.Errorf("updating identity password: %w", err)
	}
	return nil
}

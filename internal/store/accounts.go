package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reclaimit/reclaimit/internal/model"
)

// CreateAccount writes a new profile document for an identity.
func CreateAccount(ctx context.Context, db *sql.DB, account *model.Account) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO accounts (id, uid, username, email, email_verified, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		account.ID, account.UID, account.Username, account.Email, account.EmailVerified, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}
	return nil
}

// GetAccountByUID returns the first profile document whose uid field matches.
func GetAccountByUID(ctx context.Context, db *sql.DB, uid string) (*model.Account, error) {
	a := &model.Account{}
	err := db.QueryRowContext(ctx,
		`SELECT id, uid, username, email, email_verified, created_at
		 FROM accounts WHERE uid = ? ORDER BY created_at LIMIT 1`, uid,
	).Scan(&a.ID, &a.UID, &a.Username, &a.Email, &a.EmailVerified, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}
	return a, nil
}

// SetAccountVerified mirrors email confirmation onto the profile document.
func SetAccountVerified(ctx context.Context, db *sql.DB, uid string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE accounts SET email_verified = 1 WHERE uid = ?`, uid,
	)
	if err != nil {
		return fmt.Errorf("marking account verified: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Auth token kinds.
const (
	TokenKindVerify = "verify"
	TokenKindReset  = "reset"
)

// CreateAuthToken stores an email-verification or password-reset token.
func CreateAuthToken(ctx context.Context, db *sql.DB, token, kind, uid string, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO auth_tokens (token, kind, uid, expires_at) VALUES (?, ?, ?, ?)`,
		token, kind, uid, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("creating auth token: %w", err)
	}
	return nil
}

// ConsumeAuthToken deletes a token of the given kind and returns its uid.
// Returns an empty uid if the token is unknown, of another kind, or expired.
func ConsumeAuthToken(ctx context.Context, db *sql.DB, token, kind string) (string, error) {
	var uid string
	var expiresAt time.Time
	err := db.QueryRowContext(ctx,
		`SELECT uid, expires_at FROM auth_tokens WHERE token = ? AND kind = ?`,
		token, kind,
	).Scan(&uid, &expiresAt)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up auth token: %w", err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = ?`, token); err != nil {
		return "", fmt.Errorf("consuming auth token: %w", err)
	}

	if time.Now().After(expiresAt) {
		return "", nil
	}
	return uid, nil
}

// RevokeToken adds a session token's JTI to the revocation list.
func RevokeToken(ctx context.Context, db *sql.DB, jti string, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO revoked_tokens (jti, expires_at) VALUES (?, ?)`,
		jti, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	// Opportunistically clean up expired revocations.
	_, _ = db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, time.Now(),
	)

	return nil
}

// IsTokenRevoked checks if a session token's JTI has been revoked.
func IsTokenRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM revoked_tokens WHERE jti = ?`, jti,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return count > 0, nil
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/reclaimit/reclaimit/internal/db"
)

func TestConsumeAuthToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateIdentity(ctx, database, "uid-1", "a@x.com", "hash")
	if err := CreateAuthToken(ctx, database, "tok-1", TokenKindVerify, "uid-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateAuthToken: %v", err)
	}

	uid, err := ConsumeAuthToken(ctx, database, "tok-1", TokenKindVerify)
	if err != nil {
		t.Fatalf("ConsumeAuthToken: %v", err)
	}
	if uid != "uid-1" {
		t.Errorf("expected uid-1, got %q", uid)
	}

	// Tokens are single use.
	uid, err = ConsumeAuthToken(ctx, database, "tok-1", TokenKindVerify)
	if err != nil {
		t.Fatalf("ConsumeAuthToken: %v", err)
	}
	if uid != "" {
		t.Errorf("expected consumed token to be gone, got %q", uid)
	}
}

func TestConsumeAuthTokenWrongKind(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateIdentity(ctx, database, "uid-1", "a@x.com", "hash")
	CreateAuthToken(ctx, database, "tok-1", TokenKindReset, "uid-1", time.Now().Add(time.Hour))

	uid, err := ConsumeAuthToken(ctx, database, "tok-1", TokenKindVerify)
	if err != nil {
		t.Fatalf("ConsumeAuthToken: %v", err)
	}
	if uid != "" {
		t.Errorf("expected no uid for mismatched kind, got %q", uid)
	}
}

func TestConsumeExpiredAuthToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateIdentity(ctx, database, "uid-1", "a@x.com", "hash")
	CreateAuthToken(ctx, database, "tok-1", TokenKindVerify, "uid-1", time.Now().Add(-time.Minute))

	uid, err := ConsumeAuthToken(ctx, database, "tok-1", TokenKindVerify)
	if err != nil {
		t.Fatalf("ConsumeAuthToken: %v", err)
	}
	if uid != "" {
		t.Errorf("expected expired token to be rejected, got %q", uid)
	}
}

func TestRevokeToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected fresh jti to not be revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected jti to be revoked")
	}

	// Revoking twice is fine.
	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("RevokeToken twice: %v", err)
	}
}

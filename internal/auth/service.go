package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reclaimit/reclaimit/internal/mail"
	"github.com/reclaimit/reclaimit/internal/model"
	"github.com/reclaimit/reclaimit/internal/store"
)

// Token lifetimes for the out-of-band email flows.
const (
	VerifyTokenExpiry = 24 * time.Hour
	ResetTokenExpiry  = time.Hour
)

// Credential errors surfaced to callers.
var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownEmail       = errors.New("no account with this email")
	ErrBadToken           = errors.New("invalid or expired link")
)

// Service is the authentication provider: it owns identities, credential
// checks, and the verification and password-reset email flows.
type Service struct {
	DB      *sql.DB
	Mailer  mail.Mailer
	BaseURL string
}

// Register creates a new, unverified identity.
func (s *Service) Register(ctx context.Context, email, password string) (*model.Identity, error) {
	if email == "" {
		return nil, errors.New("email required")
	}
	if err := model.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := store.GetIdentityByEmail(ctx, s.DB, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return store.CreateIdentity(ctx, s.DB, uuid.NewString(), email, string(hash))
}

// SignIn checks credentials and returns the identity. Verification status is
// not checked here; callers decide what an unverified sign-in means.
func (s *Service) SignIn(ctx context.Context, email, password string) (*model.Identity, error) {
	identity, err := store.GetIdentityByEmail(ctx, s.DB, email)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return identity, nil
}

// SendVerification mails a fresh verification link to an identity.
func (s *Service) SendVerification(ctx context.Context, identity *model.Identity) error {
	token := uuid.NewString()
	if err := store.CreateAuthToken(ctx, s.DB, token, store.TokenKindVerify, identity.UID, time.Now().Add(VerifyTokenExpiry)); err != nil {
		return err
	}

	link := s.BaseURL + "/api/auth/verify?token=" + token
	return s.Mailer.Send(identity.Email, "Verify your email",
		"Welcome to Reclaimit!\n\nConfirm your email address by opening this link:\n\n"+link+"\n\nThe link expires in 24 hours.")
}

// Verify consumes a verification token and marks the identity (and its
// profile document) as verified.
func (s *Service) Verify(ctx context.Context, token string) (*model.Identity, error) {
	uid, err := store.ConsumeAuthToken(ctx, s.DB, token, store.TokenKindVerify)
	if err != nil {
		return nil, err
	}
	if uid == "" {
		return nil, ErrBadToken
	}

	if err := store.SetIdentityVerified(ctx, s.DB, uid); err != nil {
		return nil, err
	}
	if err := store.SetAccountVerified(ctx, s.DB, uid); err != nil {
		return nil, err
	}

	return store.GetIdentity(ctx, s.DB, uid)
}

// SendPasswordReset mails a reset link to the identity behind an email.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	identity, err := store.GetIdentityByEmail(ctx, s.DB, email)
	if err != nil {
		return err
	}
	if identity == nil {
		return ErrUnknownEmail
	}

	token := uuid.NewString()
	if err := store.CreateAuthToken(ctx, s.DB, token, store.TokenKindReset, identity.UID, time.Now().Add(ResetTokenExpiry)); err != nil {
		return err
	}

	link := s.BaseURL + "/reset.html?token=" + token
	return s.Mailer.Send(identity.Email, "Reset your password",
		"A password reset was requested for your Reclaimit account.\n\nSet a new password here:\n\n"+link+"\n\nThe link expires in 1 hour. If you did not request this, ignore this mail.")
}

// ResetPassword consumes a reset token and sets the new password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := model.ValidatePassword(newPassword); err != nil {
		return err
	}

	uid, err := store.ConsumeAuthToken(ctx, s.DB, token, store.TokenKindReset)
	if err != nil {
		return err
	}
	if uid == "" {
		return ErrBadToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return store.UpdateIdentityPassword(ctx, s.DB, uid, string(hash))
}

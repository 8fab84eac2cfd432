// Package board is the lost-and-found board facade: a narrow set of
// operations over the authentication service and the report store, all
// resolving to a uniform success/failure envelope. The presentation layers
// (HTTP API, web pages) consume only this package.
package board

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reclaimit/reclaimit/internal/auth"
	"github.com/reclaimit/reclaimit/internal/model"
	"github.com/reclaimit/reclaimit/internal/store"
)

// Messages surfaced through the envelope.
const (
	msgNotAuthenticated = "User not authenticated"
	msgUserNotFound     = "User not found"
	msgItemNotFound     = "Lost item not found"
	msgNotVerified      = "Email not verified. Please check your inbox and verify your email."
)

// Client is an explicitly constructed board context. Every dependency is
// injected, so tests can swap in their own database, mailer or clock.
type Client struct {
	DB      *sql.DB
	Auth    *auth.Service
	Session *auth.Session

	// Now overrides the clock used for document stamps. Nil means
	// time.Now.
	Now func() time.Time
}

// stamp returns the current time as an ISO-8601 document stamp.
func (c *Client) stamp() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().UTC().Format(time.RFC3339Nano)
}

// RegisterUser creates an identity, sends the verification mail, writes the
// profile document and signs the session in. The account record stores the
// identity's actual verification flag (false at creation).
func (c *Client) RegisterUser(ctx context.Context, email, password, username string) AuthResult {
	identity, err := c.Auth.Register(ctx, email, password)
	if err != nil {
		return AuthResult{Result: fail(err)}
	}

	if err := c.Auth.SendVerification(ctx, identity); err != nil {
		return AuthResult{Result: fail(err)}
	}

	account := &model.Account{
		ID:            uuid.NewString(),
		UID:           identity.UID,
		Username:      username,
		Email:         email,
		EmailVerified: identity.EmailVerified,
		CreatedAt:     c.stamp(),
	}
	if err := store.CreateAccount(ctx, c.DB, account); err != nil {
		return AuthResult{Result: fail(err)}
	}

	c.Session.SetUser(identity)
	return AuthResult{Result: ok(), User: identity}
}

// LoginUser checks credentials. A valid but unverified identity never logs
// in: the result carries NeedsVerification and the identity so the caller
// can offer to resend the mail.
func (c *Client) LoginUser(ctx context.Context, email, password string) AuthResult {
	identity, err := c.Auth.SignIn(ctx, email, password)
	if err != nil {
		return AuthResult{Result: fail(err)}
	}

	if !identity.EmailVerified {
		return AuthResult{
			Result:            failMsg(msgNotVerified),
			NeedsVerification: true,
			User:              identity,
		}
	}

	c.Session.SetUser(identity)
	return AuthResult{Result: ok(), User: identity}
}

// ResendVerificationEmail re-sends the verification mail for an
// authenticated-but-unverified identity.
func (c *Client) ResendVerificationEmail(ctx context.Context, identity *model.Identity) Result {
	if identity == nil {
		return failMsg(msgNotAuthenticated)
	}
	if err := c.Auth.SendVerification(ctx, identity); err != nil {
		return fail(err)
	}
	return ok()
}

// SendPasswordResetEmail triggers the out-of-band reset flow.
func (c *Client) SendPasswordResetEmail(ctx context.Context, email string) Result {
	if err := c.Auth.SendPasswordReset(ctx, email); err != nil {
		return fail(err)
	}
	return ok()
}

// LogoutUser ends the current session.
func (c *Client) LogoutUser() Result {
	c.Session.Clear()
	return ok()
}

// CurrentUser resolves once with the session's identity, or nil when nobody
// is signed in. It is a one-shot adapter over the session's push
// notifications: subscribe, take the first notification, unsubscribe.
func (c *Client) CurrentUser() *model.Identity {
	ch := make(chan *model.Identity, 1)
	var once sync.Once
	unsubscribe := c.Session.OnChange(func(user *model.Identity) {
		once.Do(func() { ch <- user })
	})
	user := <-ch
	unsubscribe()
	return user
}

// GetUserInfo returns the profile document whose uid field matches.
func (c *Client) GetUserInfo(ctx context.Context, uid string) AccountResult {
	account, err := store.GetAccountByUID(ctx, c.DB, uid)
	if err != nil {
		return AccountResult{Result: fail(err)}
	}
	if account == nil {
		return AccountResult{Result: failMsg(msgUserNotFound)}
	}
	return AccountResult{Result: ok(), Account: account}
}

// AddLostItem writes a new report stamped with the session's identity,
// status "lost" and both timestamps, and returns the assigned id. Without
// an active session nothing is written.
func (c *Client) AddLostItem(ctx context.Context, fields map[string]any) CreateResult {
	user := c.Session.Current()
	if user == nil {
		return CreateResult{Result: failMsg(msgNotAuthenticated)}
	}

	now := c.stamp()
	item := &model.LostItem{
		ID:         uuid.NewString(),
		OwnerID:    user.UID,
		OwnerEmail: user.Email,
		Status:     model.ItemStatusLost,
		Fields:     fields,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := store.CreateLostItem(ctx, c.DB, item); err != nil {
		return CreateResult{Result: fail(err)}
	}

	return CreateResult{Result: ok(), ID: item.ID}
}

// GetAllLostItems returns every report, each carrying its assigned id.
func (c *Client) GetAllLostItems(ctx context.Context) ItemsResult {
	items, err := store.ListLostItems(ctx, c.DB)
	if err != nil {
		return ItemsResult{Result: fail(err)}
	}
	if items == nil {
		items = []model.LostItem{}
	}
	return ItemsResult{Result: ok(), Items: items}
}

// GetLostItemByID returns one report by id.
func (c *Client) GetLostItemByID(ctx context.Context, id string) ItemResult {
	item, err := store.GetLostItem(ctx, c.DB, id)
	if err != nil {
		return ItemResult{Result: fail(err)}
	}
	if item == nil {
		return ItemResult{Result: failMsg(msgItemNotFound)}
	}
	return ItemResult{Result: ok(), Item: item}
}

// GetUserLostItems returns every report owned by the given uid.
func (c *Client) GetUserLostItems(ctx context.Context, ownerID string) ItemsResult {
	items, err := store.ListLostItemsByOwner(ctx, c.DB, ownerID)
	if err != nil {
		return ItemsResult{Result: fail(err)}
	}
	if items == nil {
		items = []model.LostItem{}
	}
	return ItemsResult{Result: ok(), Items: items}
}

// UpdateLostItem merges the named fields into the report at id and
// refreshes the update timestamp. Ownership is not checked.
func (c *Client) UpdateLostItem(ctx context.Context, id string, fields map[string]any) Result {
	if _, err := store.UpdateLostItem(ctx, c.DB, id, fields, c.stamp()); err != nil {
		return fail(err)
	}
	return ok()
}

// DeleteLostItem removes the report at id. Ownership is not checked.
func (c *Client) DeleteLostItem(ctx context.Context, id string) Result {
	if err := store.DeleteLostItem(ctx, c.DB, id); err != nil {
		return fail(err)
	}
	return ok()
}

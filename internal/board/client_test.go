package board

import (
	"context"
	"testing"
	"time"

	"github.com/reclaimit/reclaimit/internal/auth"
	"github.com/reclaimit/reclaimit/internal/db"
	"github.com/reclaimit/reclaimit/internal/mail"
	"github.com/reclaimit/reclaimit/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	database := db.NewTestDB(t)
	return &Client{
		DB: database,
		Auth: &auth.Service{
			DB:      database,
			Mailer:  mail.LogMailer{},
			BaseURL: "http://localhost:8080",
		},
		Session: auth.NewSession(),
	}
}

// registerVerified registers an identity, marks it verified and logs in.
func registerVerified(t *testing.T, c *Client, email, password, username string) string {
	t.Helper()
	ctx := context.Background()

	res := c.RegisterUser(ctx, email, password, username)
	if !res.Success {
		t.Fatalf("RegisterUser: %s", res.Error)
	}
	if err := store.SetIdentityVerified(ctx, c.DB, res.User.UID); err != nil {
		t.Fatalf("SetIdentityVerified: %v", err)
	}

	login := c.LoginUser(ctx, email, password)
	if !login.Success {
		t.Fatalf("LoginUser: %s", login.Error)
	}
	return login.User.UID
}

func TestRegisterUser(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	res := c.RegisterUser(ctx, "a@x.com", "secret-password", "alice")
	if !res.Success {
		t.Fatalf("RegisterUser: %s", res.Error)
	}
	if res.User == nil || res.User.UID == "" {
		t.Fatal("expected an identity with a uid")
	}

	info := c.GetUserInfo(ctx, res.User.UID)
	if !info.Success {
		t.Fatalf("GetUserInfo: %s", info.Error)
	}
	if info.Account.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", info.Account.Username)
	}
	if info.Account.Email != "a@x.com" {
		t.Errorf("expected email 'a@x.com', got %q", info.Account.Email)
	}
	if info.Account.EmailVerified {
		t.Error("expected the profile to start unverified")
	}

	// Registration signs the session in.
	if current := c.CurrentUser(); current == nil || current.UID != res.User.UID {
		t.Errorf("expected session to carry the new identity, got %+v", current)
	}
}

func TestLoginUnverifiedNeverSucceeds(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	c.RegisterUser(ctx, "a@x.com", "secret-password", "alice")
	c.LogoutUser()

	res := c.LoginUser(ctx, "a@x.com", "secret-password")
	if res.Success {
		t.Fatal("expected login to fail for unverified identity")
	}
	if !res.NeedsVerification {
		t.Error("expected NeedsVerification to be set")
	}
	if res.User == nil {
		t.Error("expected the unverified identity to be attached")
	}
	if res.Error != "Email not verified. Please check your inbox and verify your email." {
		t.Errorf("unexpected error message: %q", res.Error)
	}
	if c.CurrentUser() != nil {
		t.Error("expected session to stay signed out")
	}
}

func TestLoginAfterVerification(t *testing.T) {
	c := newTestClient(t)
	uid := registerVerified(t, c, "a@x.com", "secret-password", "alice")

	if current := c.CurrentUser(); current == nil || current.UID != uid {
		t.Errorf("expected signed-in session, got %+v", current)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	registerVerified(t, c, "a@x.com", "secret-password", "alice")
	c.LogoutUser()

	res := c.LoginUser(ctx, "a@x.com", "wrong-password")
	if res.Success {
		t.Fatal("expected login to fail")
	}
	if res.NeedsVerification {
		t.Error("bad credentials must not look like a verification problem")
	}
}

func TestLogoutUser(t *testing.T) {
	c := newTestClient(t)
	registerVerified(t, c, "a@x.com", "secret-password", "alice")

	res := c.LogoutUser()
	if !res.Success {
		t.Fatalf("LogoutUser: %s", res.Error)
	}
	if c.CurrentUser() != nil {
		t.Error("expected nil identity after logout")
	}
}

func TestCurrentUserResolvesOnce(t *testing.T) {
	c := newTestClient(t)

	if c.CurrentUser() != nil {
		t.Error("expected nil for signed-out session")
	}

	uid := registerVerified(t, c, "a@x.com", "secret-password", "alice")
	for i := 0; i < 3; i++ {
		if current := c.CurrentUser(); current == nil || current.UID != uid {
			t.Fatalf("call %d: expected uid %q, got %+v", i, uid, current)
		}
	}

	// Later session changes must not reach the one-shot subscribers.
	c.LogoutUser()
	if c.CurrentUser() != nil {
		t.Error("expected nil after logout")
	}
}

func TestGetUserInfoNotFound(t *testing.T) {
	c := newTestClient(t)

	res := c.GetUserInfo(context.Background(), "nope")
	if res.Success {
		t.Fatal("expected failure for unknown uid")
	}
	if res.Error != "User not found" {
		t.Errorf("unexpected error message: %q", res.Error)
	}
}

func TestAddLostItemRequiresSession(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	res := c.AddLostItem(ctx, map[string]any{"title": "Lost Wallet"})
	if res.Success {
		t.Fatal("expected failure without a session")
	}
	if res.Error != "User not authenticated" {
		t.Errorf("unexpected error message: %q", res.Error)
	}

	// Nothing must have been written.
	all := c.GetAllLostItems(ctx)
	if !all.Success {
		t.Fatalf("GetAllLostItems: %s", all.Error)
	}
	if len(all.Items) != 0 {
		t.Errorf("expected no items, got %d", len(all.Items))
	}
}

func TestAddAndFetchLostItem(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	uid := registerVerified(t, c, "a@x.com", "secret-password", "alice")

	created := c.AddLostItem(ctx, map[string]any{
		"title":       "Lost Backpack",
		"description": "Blue backpack lost in college canteen.",
	})
	if !created.Success {
		t.Fatalf("AddLostItem: %s", created.Error)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	fetched := c.GetLostItemByID(ctx, created.ID)
	if !fetched.Success {
		t.Fatalf("GetLostItemByID: %s", fetched.Error)
	}
	item := fetched.Item
	if item.Fields["title"] != "Lost Backpack" {
		t.Errorf("expected submitted field, got %+v", item.Fields)
	}
	if item.OwnerID != uid {
		t.Errorf("expected owner %q, got %q", uid, item.OwnerID)
	}
	if item.OwnerEmail != "a@x.com" {
		t.Errorf("expected owner email stamp, got %q", item.OwnerEmail)
	}
	if item.Status != "lost" {
		t.Errorf("expected status 'lost', got %q", item.Status)
	}
	if item.CreatedAt == "" || item.UpdatedAt == "" {
		t.Error("expected both timestamps to be stamped")
	}
}

func TestGetLostItemByIDNotFound(t *testing.T) {
	c := newTestClient(t)

	res := c.GetLostItemByID(context.Background(), "nope")
	if res.Success {
		t.Fatal("expected failure for unknown id")
	}
	if res.Error != "Lost item not found" {
		t.Errorf("unexpected error message: %q", res.Error)
	}
}

func TestGetUserLostItemsMatchesFilter(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	uid1 := registerVerified(t, c, "a@x.com", "secret-password", "alice")
	c.AddLostItem(ctx, map[string]any{"title": "Wallet"})
	c.AddLostItem(ctx, map[string]any{"title": "Keys"})

	registerVerified(t, c, "b@x.com", "secret-password", "bob")
	c.AddLostItem(ctx, map[string]any{"title": "Backpack"})

	mine := c.GetUserLostItems(ctx, uid1)
	if !mine.Success {
		t.Fatalf("GetUserLostItems: %s", mine.Error)
	}

	all := c.GetAllLostItems(ctx)
	if !all.Success {
		t.Fatalf("GetAllLostItems: %s", all.Error)
	}

	want := map[string]bool{}
	for _, item := range all.Items {
		if item.OwnerID == uid1 {
			want[item.ID] = true
		}
	}
	if len(mine.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(mine.Items))
	}
	for _, item := range mine.Items {
		if !want[item.ID] {
			t.Errorf("unexpected item %q in owner filter", item.ID)
		}
	}
}

func TestUpdateLostItemRefreshesTimestamp(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	registerVerified(t, c, "a@x.com", "secret-password", "alice")

	created := c.AddLostItem(ctx, map[string]any{"title": "Wallet", "location": "Park"})
	before := c.GetLostItemByID(ctx, created.ID).Item

	if res := c.UpdateLostItem(ctx, created.ID, map[string]any{"title": "Found Wallet"}); !res.Success {
		t.Fatalf("UpdateLostItem: %s", res.Error)
	}

	after := c.GetLostItemByID(ctx, created.ID).Item
	if after.Fields["title"] != "Found Wallet" {
		t.Errorf("expected updated title, got %v", after.Fields["title"])
	}
	if after.Fields["location"] != "Park" {
		t.Errorf("expected untouched field to survive, got %v", after.Fields["location"])
	}

	prev, _ := time.Parse(time.RFC3339Nano, before.UpdatedAt)
	next, _ := time.Parse(time.RFC3339Nano, after.UpdatedAt)
	if !next.After(prev) {
		t.Errorf("expected updated_at to be strictly greater: %s -> %s", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestUpdateMissingLostItem(t *testing.T) {
	c := newTestClient(t)

	res := c.UpdateLostItem(context.Background(), "nope", map[string]any{"title": "x"})
	if res.Success {
		t.Fatal("expected failure for missing item")
	}
}

func TestDeleteLostItem(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	registerVerified(t, c, "a@x.com", "secret-password", "alice")

	created := c.AddLostItem(ctx, map[string]any{"title": "Wallet"})
	if res := c.DeleteLostItem(ctx, created.ID); !res.Success {
		t.Fatalf("DeleteLostItem: %s", res.Error)
	}

	fetched := c.GetLostItemByID(ctx, created.ID)
	if fetched.Success {
		t.Fatal("expected not-found after delete")
	}
	if fetched.Error != "Lost item not found" {
		t.Errorf("unexpected error message: %q", fetched.Error)
	}
}

func TestResendVerificationRequiresIdentity(t *testing.T) {
	c := newTestClient(t)

	res := c.ResendVerificationEmail(context.Background(), nil)
	if res.Success {
		t.Fatal("expected failure without an identity")
	}
	if res.Error != "User not authenticated" {
		t.Errorf("unexpected error message: %q", res.Error)
	}
}

func TestSendPasswordResetEmail(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	registerVerified(t, c, "a@x.com", "secret-password", "alice")

	if res := c.SendPasswordResetEmail(ctx, "a@x.com"); !res.Success {
		t.Errorf("SendPasswordResetEmail: %s", res.Error)
	}
	if res := c.SendPasswordResetEmail(ctx, "nobody@x.com"); res.Success {
		t.Error("expected failure for unknown email")
	}
}

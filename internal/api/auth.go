package api

import (
	"log/slog"
	"net/http"

	"github.com/reclaimit/reclaimit/internal/auth"
	"github.com/reclaimit/reclaimit/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		jsonError(w, http.StatusBadRequest, "email, password, and username required")
		return
	}

	client := s.client(r)
	res := client.RegisterUser(r.Context(), req.Email, req.Password, req.Username)
	if !res.Success {
		jsonResponse(w, http.StatusBadRequest, res)
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, res.User.UID, res.User.Email)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	setAuthCookie(w, token)

	slog.Info("user registered", "email", req.Email, "username", req.Username)
	jsonResponse(w, http.StatusCreated, map[string]any{
		"success": true,
		"token":   token,
		"user":    res.User,
	})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	client := s.client(r)
	res := client.LoginUser(r.Context(), req.Email, req.Password)
	if !res.Success {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonResponse(w, http.StatusUnauthorized, res)
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, res.User.UID, res.User.Email)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	setAuthCookie(w, token)

	slog.Info("user logged in", "email", req.Email)
	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    res.User,
	})
}

// Logout handles POST /api/auth/logout. The session token's JTI is revoked
// so the cookie cannot be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, _ := s.sessionClaims(r); claims != nil && claims.ID != "" {
		if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("revoking session token", "error", err)
		}
	}

	clearAuthCookie(w)
	res := s.client(r).LogoutUser()
	jsonResponse(w, http.StatusOK, res)
}

// ResendVerification handles POST /api/auth/resend-verification. The caller
// proves ownership of the unverified identity with its credentials.
func (s *Server) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := s.client(r)
	login := client.LoginUser(r.Context(), req.Email, req.Password)
	if login.Success {
		jsonError(w, http.StatusBadRequest, "email already verified")
		return
	}
	if !login.NeedsVerification {
		jsonResponse(w, http.StatusUnauthorized, login.Result)
		return
	}

	res := client.ResendVerificationEmail(r.Context(), login.User)
	if !res.Success {
		jsonResponse(w, http.StatusInternalServerError, res)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// RequestPasswordReset handles POST /api/auth/reset-password.
func (s *Server) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		jsonError(w, http.StatusBadRequest, "email required")
		return
	}

	res := s.client(r).SendPasswordResetEmail(r.Context(), req.Email)
	if !res.Success {
		jsonResponse(w, http.StatusBadRequest, res)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// ConfirmPasswordReset handles POST /api/auth/reset-password/confirm.
func (s *Server) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "token and password required")
		return
	}

	if err := s.Auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("password reset completed")
	jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

// Verify handles GET /api/auth/verify, the target of mailed verification
// links. On success the browser lands on the login page.
func (s *Server) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		jsonError(w, http.StatusBadRequest, "token required")
		return
	}

	identity, err := s.Auth.Verify(r.Context(), token)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("email verified", "email", identity.Email)
	http.Redirect(w, r, "/login.html?verified=1", http.StatusSeeOther)
}

// Me handles GET /api/me: the current identity and its profile document.
// A signed-out request is not an error; user is simply null.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	client := s.client(r)
	identity := client.CurrentUser()
	if identity == nil {
		jsonResponse(w, http.StatusOK, map[string]any{"success": true, "user": nil})
		return
	}

	payload := map[string]any{"success": true, "user": identity}
	info := client.GetUserInfo(r.Context(), identity.UID)
	if info.Success {
		payload["account"] = info.Account
	} else {
		slog.Error("failed to get user info", "uid", identity.UID, "error", info.Error)
		payload["accountError"] = info.Error
	}
	jsonResponse(w, http.StatusOK, payload)
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

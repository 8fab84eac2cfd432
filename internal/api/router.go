package api

import (
	"database/sql"
	"net/http"

	"github.com/reclaimit/reclaimit/internal/auth"
)

// NewRouter creates the API router with all endpoints registered. Session
// state is carried by the token cookie (or a bearer header); endpoints that
// need a signed-in user enforce it through the board facade.
func NewRouter(db *sql.DB, authSvc *auth.Service, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	s := &Server{DB: db, Auth: authSvc, JWTSecret: jwtSecret}

	// Account lifecycle.
	mux.HandleFunc("POST /api/auth/register", s.Register)
	mux.HandleFunc("POST /api/auth/login", s.Login)
	mux.HandleFunc("POST /api/auth/logout", s.Logout)
	mux.HandleFunc("POST /api/auth/resend-verification", s.ResendVerification)
	mux.HandleFunc("POST /api/auth/reset-password", s.RequestPasswordReset)
	mux.HandleFunc("POST /api/auth/reset-password/confirm", s.ConfirmPasswordReset)
	mux.HandleFunc("GET /api/auth/verify", s.Verify)

	// Current session and profiles.
	mux.HandleFunc("GET /api/me", s.Me)
	mux.HandleFunc("GET /api/users/{uid}", s.GetUser)
	mux.HandleFunc("GET /api/users/{uid}/items", s.UserItems)

	// Lost item reports.
	mux.HandleFunc("GET /api/items", s.List)
	mux.HandleFunc("POST /api/items", s.Create)
	mux.HandleFunc("GET /api/items/{id}", s.Get)
	mux.HandleFunc("PUT /api/items/{id}", s.Update)
	mux.HandleFunc("DELETE /api/items/{id}", s.Delete)
	mux.HandleFunc("PUT /api/items/{id}/photo", s.UploadPhoto)
	mux.HandleFunc("GET /api/items/{id}/photo", s.GetPhoto)

	return mux
}

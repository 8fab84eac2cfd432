package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/reclaimit/reclaimit/internal/auth"
	"github.com/reclaimit/reclaimit/internal/board"
	"github.com/reclaimit/reclaimit/internal/store"
)

// Server holds the dependencies shared by all API handlers.
type Server struct {
	DB        *sql.DB
	Auth      *auth.Service
	JWTSecret string
}

// client builds the board client context for one request. A valid,
// unrevoked session token (cookie or bearer header) signs the client's
// session in; anything else yields a signed-out client.
func (s *Server) client(r *http.Request) *board.Client {
	c := &board.Client{DB: s.DB, Auth: s.Auth, Session: auth.NewSession()}

	claims, _ := s.sessionClaims(r)
	if claims == nil {
		return c
	}

	identity, err := store.GetIdentity(r.Context(), s.DB, claims.UID)
	if err != nil {
		slog.Error("loading session identity", "error", err)
		return c
	}
	if identity != nil {
		c.Session = auth.NewSessionFor(identity)
	}
	return c
}

// sessionClaims extracts and validates the request's session token,
// rejecting revoked JTIs. Returns the claims and the raw token, or nil.
func (s *Server) sessionClaims(r *http.Request) (*auth.Claims, string) {
	token := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	} else if cookie, err := r.Cookie("token"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		return nil, ""
	}

	claims, err := auth.ValidateToken(s.JWTSecret, token)
	if err != nil {
		return nil, ""
	}

	if claims.ID != "" {
		revoked, err := store.IsTokenRevoked(r.Context(), s.DB, claims.ID)
		if err != nil {
			slog.Error("checking token revocation", "error", err)
			return nil, ""
		}
		if revoked {
			return nil, ""
		}
	}

	return claims, token
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request", "method", r.Method, "path", r.URL.RequestURI(), "status", rec.status, "duration", time.Since(start).Round(time.Millisecond))
	})
}

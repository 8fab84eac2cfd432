package api

import (
	"net/http"
)

// GetUser handles GET /api/users/{uid}: the profile document for a uid.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	res := s.client(r).GetUserInfo(r.Context(), r.PathValue("uid"))
	if !res.Success {
		jsonResponse(w, http.StatusNotFound, res)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

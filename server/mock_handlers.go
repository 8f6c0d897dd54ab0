package server

import (
	"net/http"
	"strings"
	"time"
)

// MockValidateSessionHandler simulates the external validation authority
// for local development. Session tokens prefixed "expired" report an
// expired credential; tokens prefixed "invalid" are rejected outright;
// everything else is valid.
func (s *Server) MockValidateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("Apikey")
		sessionToken := r.Header.Get("x-session-token")
		userID := r.Header.Get("x-user-id")

		if apiKey == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "Missing Apikey header"})
			return
		}
		if sessionToken == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Missing x-session-token header"})
			return
		}
		if userID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Missing x-user-id header"})
			return
		}

		if strings.HasPrefix(sessionToken, "invalid") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "Invalid session token"})
			return
		}

		isExpired := strings.HasPrefix(sessionToken, "expired")

		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"data": map[string]any{
				"isExpire":     isExpired,
				"userId":       userID,
				"sessionToken": sessionToken,
				"validatedAt":  time.Now().UTC().Format(time.RFC3339),
			},
			"message": "Session validation completed",
		})
	}
}

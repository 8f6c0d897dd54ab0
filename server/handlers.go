package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-postlogin-service/internal/apperror"
	"github.com/jrsteele09/go-postlogin-service/postlogin"
)

// InitSessionHandler decodes an init-session request, validates its
// required fields, and delegates to the service.
func (s *Server) InitSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req initSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == nil {
			s.writeError(w, apperror.New(apperror.KindClient, "Invalid request body"))
			return
		}

		cif := strings.TrimSpace(req.Data.CIF)
		if cif == "" {
			s.writeError(w, apperror.New(apperror.KindClient, "CIF cannot be empty"))
			return
		}
		tokenKey := strings.TrimSpace(req.Data.TokenKey)
		if tokenKey == "" {
			s.writeError(w, apperror.New(apperror.KindClient, "Token key cannot be empty"))
			return
		}

		result, err := s.service.InitSession(r.Context(), postlogin.InitSessionParams{
			CIF:               cif,
			BasicCustomerInfo: req.Data.BasicCustomerInfo,
			TokenKey:          tokenKey,
			Payload:           req.Data.Payload,
			RequestIDHeader:   r.Header.Get("x-request-id"),
		})
		if err != nil {
			s.writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			Token:        result.Token,
			RefreshToken: result.RefreshToken,
			Message:      result.Message,
		})
	}
}

// RenewTokenHandler decodes a renew-token request and delegates to the
// service.
func (s *Server) RenewTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renewTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == nil {
			s.writeError(w, apperror.New(apperror.KindClient, "Invalid request body"))
			return
		}

		result, err := s.service.RenewToken(r.Context(), req.Data.RefreshToken)
		if err != nil {
			s.writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			Token:        result.Token,
			RefreshToken: result.RefreshToken,
			Message:      result.Message,
		})
	}
}

// HealthHandler reports liveness with a fixed payload.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.service.HealthStatus())
	}
}

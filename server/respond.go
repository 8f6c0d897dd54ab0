package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-postlogin-service/internal/apperror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP statuses. Internal detail
// never reaches the caller; configuration errors surface their
// operator-facing message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch apperror.KindOf(err) {
	case apperror.KindClient:
		status = http.StatusBadRequest
	case apperror.KindAuth:
		status = http.StatusUnauthorized
	case apperror.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}

	writeJSON(w, status, errorResponse{Detail: apperror.MessageOf(err)})
}

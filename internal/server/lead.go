package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/kartabot/kartabot/internal/lead"
	"github.com/kartabot/kartabot/pkg/logger"
)

// leadResponse mirrors the shape the mini app expects.
type leadResponse struct {
	OK       bool `json:"ok"`
	Notified bool `json:"notified"`
}

// handleLead accepts a lead from the mini app's HTTP fallback channel. All
// payload fields are optional; an empty body still produces a lead. A body
// that is not JSON at all is rejected.
func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	var payload lead.Payload

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		s.log.Warn("rejecting malformed lead payload",
			slog.String("correlation_id", logger.CorrelationIDFromContext(r.Context())),
			slog.Any("error", err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]bool{"ok": false})
		return
	}

	l := payload.ToLead(lead.SourceHTTP)
	notified, _ := s.notifier.Dispatch(r.Context(), l)

	writeJSON(w, http.StatusOK, leadResponse{OK: true, Notified: notified})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

type sessionsResponse struct {
	Sessions []*entity.Session `json:"sessions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

// openSessionsHandler - the lobby as plain JSON, for clients that do not hold a socket.
func (that *Server) openSessionsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "openSessionsHandler")

	sessions, err := that.lobby.OpenSessions(r.Context())
	if err != nil {
		log.Error("failed to list open sessions", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	if sessions == nil {
		sessions = []*entity.Session{}
	}

	that.writeJSON(w, http.StatusOK, sessionsResponse{Sessions: sessions})
}

func (that *Server) resultHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "resultHandler")

	if that.results == nil {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: "results archive is disabled"})
		return
	}

	id := r.PathValue("id")

	session, err := that.results.GetBySessionID(r.Context(), id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
		return
	}
	if err != nil {
		log.Error("failed to get result", "sessionID", id, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

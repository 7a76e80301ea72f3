// Package api is the screen-facing HTTP surface of the daemon. UI code is
// expected to call only these endpoints; all state lives behind them.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"sparkd/internal/bus"
	"sparkd/internal/chat"
	"sparkd/internal/directory"
	"sparkd/internal/likes"
	"sparkd/internal/profile"
)

// Handler bundles the core services behind the HTTP routes.
type Handler struct {
	profiles *profile.Service
	dir      *directory.Directory
	chats    *chat.Store
	sim      *likes.Simulator
	bus      *bus.Bus
	logger   *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	profiles *profile.Service,
	dir *directory.Directory,
	chats *chat.Store,
	sim *likes.Simulator,
	b *bus.Bus,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		profiles: profiles,
		dir:      dir,
		chats:    chats,
		sim:      sim,
		bus:      b,
		logger:   logger,
	}
}

// Router builds the mux router with all routes registered.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods("GET")

	r.HandleFunc("/profile", h.getProfile).Methods("GET")
	r.HandleFunc("/profile", h.putProfile).Methods("PUT")
	r.HandleFunc("/profile", h.deleteProfile).Methods("DELETE")

	r.HandleFunc("/directory", h.listDirectory).Methods("GET")
	r.HandleFunc("/likes", h.listLikes).Methods("GET")

	r.HandleFunc("/matches", h.listMatches).Methods("GET")
	r.HandleFunc("/matches", h.createMatch).Methods("POST")
	r.HandleFunc("/matches/{id}/messages", h.listMessages).Methods("GET")
	r.HandleFunc("/matches/{id}/messages", h.postMessage).Methods("POST")

	r.HandleFunc("/events", h.watchEvents).Methods("GET")

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"sparkd/internal/chat"
)

func (h *Handler) listDirectory(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.dir.All())
}

func (h *Handler) listLikes(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.sim.LikedBy())
}

func (h *Handler) listMatches(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.chats.Matches())
}

type createMatchRequest struct {
	UserID string `json:"userId"`
}

type createMatchResponse struct {
	Added bool `json:"added"`
}

// createMatch promotes a directory user into the match set. Liking always
// succeeds; there is no consent check on the other side.
func (h *Handler) createMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}
	user, ok := h.dir.ByID(req.UserID)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown user id")
		return
	}
	added := h.chats.AddMatch(user)
	respondJSON(w, http.StatusOK, createMatchResponse{Added: added})
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]
	respondJSON(w, http.StatusOK, h.chats.Conversation(matchID))
}

type postMessageRequest struct {
	Text string `json:"text"`
}

// postMessage appends a local-sender message; the auto-responder picks it
// up from the bus and schedules the reply.
func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid message payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	msg := chat.Message{
		ID:        uuid.New().String(),
		Text:      req.Text,
		Sender:    chat.SenderLocal,
		Timestamp: time.Now(),
	}
	h.chats.AddMessage(matchID, msg)
	respondJSON(w, http.StatusCreated, msg)
}

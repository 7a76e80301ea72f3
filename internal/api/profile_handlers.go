package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"sparkd/internal/store"
)

func (h *Handler) getProfile(w http.ResponseWriter, _ *http.Request) {
	p, err := h.profiles.Load()
	if err != nil {
		h.logger.Error("load profile failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "profile not set")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) putProfile(w http.ResponseWriter, r *http.Request) {
	var p store.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}
	if err := h.profiles.Save(&p); err != nil {
		h.logger.Error("save profile failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	respondJSON(w, http.StatusOK, &p)
}

func (h *Handler) deleteProfile(w http.ResponseWriter, _ *http.Request) {
	if err := h.profiles.Clear(); err != nil {
		h.logger.Error("clear profile failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to clear profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

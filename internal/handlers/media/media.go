package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bazarlyq-main/internal/media"
	myErr "bazarlyq-main/internal/types/errors"
)

type MediaHandler struct {
	Logger    *zap.SugaredLogger
	MediaRepo media.MediaRepo
}

func NewMediaHandler(l *zap.SugaredLogger, mr media.MediaRepo) *MediaHandler {
	return &MediaHandler{
		Logger:    l,
		MediaRepo: mr,
	}
}

type addLinkForm struct {
	LinkedType string `json:"linkedType"`
	LinkedID   int64  `json:"linkedId"`
	URL        string `json:"url"`
}

// List handles GET /api/media/{linkedType}/{linkedId}
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	linkedID, err := strconv.ParseInt(vars["linkedId"], 10, 64)
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	files, err := h.MediaRepo.ListByLink(vars["linkedType"], linkedID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(files); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// Add handles POST /api/media
func (h *MediaHandler) Add(w http.ResponseWriter, r *http.Request) {
	var form addLinkForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	if form.URL == "" || form.LinkedType == "" || form.LinkedID == 0 {
		myErr.SendErrorTo(w, errors.New("linkedType, linkedId and url are required"), http.StatusBadRequest, h.Logger)
		return
	}

	f, err := h.MediaRepo.AddLink(form.LinkedType, form.LinkedID, form.URL)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(f); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("media file %s linked to %s/%d", f.ID, f.LinkedType, f.LinkedID)
}

// SetMain handles PUT /api/media/{id}/main
func (h *MediaHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.MediaRepo.SetMain(id); err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(myErr.NewErrorServer(nil)); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// Delete handles DELETE /api/media/{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.MediaRepo.Delete(id); err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bazarlyq-main/internal/contextutil"
	"bazarlyq-main/internal/middleware"
	"bazarlyq-main/internal/profile"
	"bazarlyq-main/internal/session"
	myErr "bazarlyq-main/internal/types/errors"
	types "bazarlyq-main/internal/types/profile"
)

type ProfileHandler struct {
	Logger            *zap.SugaredLogger
	ProfileRepository profile.ProfileRepo
	SessionManager    session.SessionRepo
}

func NewProfileHandler(l *zap.SugaredLogger, pr profile.ProfileRepo, sr session.SessionRepo) *ProfileHandler {
	return &ProfileHandler{
		Logger:            l,
		ProfileRepository: pr,
		SessionManager:    sr,
	}
}

// Register handles POST /api/profiles/register
func (h *ProfileHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form types.CreateProfile
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	// Проверим на валидность переданной почты
	if _, err := mail.ParseAddress(form.Email); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.ProfileRepository.CreateProfile(form)
	if err != nil {
		if errors.Is(err, myErr.ErrAlreadyExists) {
			myErr.SendErrorTo(w, err, http.StatusUnprocessableEntity, h.Logger)
			return
		}

		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	// Создаем для него сессию
	sess, token, err := h.SessionManager.CreateSession(r.Context(), p.ID, p.Email)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.sendToken(w, http.StatusCreated, token)
	h.Logger.Infof("created session %s for new profile %s", sess.ID, p.ID)
}

// Login handles POST /api/profiles/login
func (h *ProfileHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form types.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.ProfileRepository.CheckProfile(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrNotFound, http.StatusNotFound, h.Logger)
			return
		}

		if errors.Is(err, myErr.ErrBadPassword) {
			myErr.SendErrorTo(w, err, http.StatusUnauthorized, h.Logger)
			return
		}

		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	sess, token, err := h.SessionManager.CreateSession(r.Context(), p.ID, p.Email)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.sendToken(w, http.StatusOK, token)
	h.Logger.Infof("created session %s for profile %s", sess.ID, p.ID)
}

// Logout handles POST /api/profiles/logout
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	if err := h.SessionManager.DestroySession(r.Context(), sess.ID); err != nil {
		if errors.Is(err, myErr.ErrSessionNotFound) {
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

// Info handles GET /api/profiles/{id}
func (h *ProfileHandler) Info(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := uuid.Parse(id); err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.ProfileRepository.Info(id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// Change handles PUT /api/profiles
// Профиль меняет только владелец сессии
func (h *ProfileHandler) Change(w http.ResponseWriter, r *http.Request) {
	profileID, ok := contextutil.GetProfileIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var form types.ChangeProfile
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.ProfileRepository.ChangeProfile(profileID, form)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("profile %s updated", profileID)
}

func (h *ProfileHandler) sendToken(w http.ResponseWriter, status int, token string) {
	response := struct {
		Token string `json:"token"`
	}{
		Token: token,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.Logger.Errorf("failed to write token response: %v", err)
	}
}

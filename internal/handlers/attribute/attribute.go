package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bazarlyq-main/internal/attribute"
	types "bazarlyq-main/internal/types/attribute"
	myErr "bazarlyq-main/internal/types/errors"
)

type AttributeHandler struct {
	Logger        *zap.SugaredLogger
	AttributeRepo attribute.AttributeRepo
}

func NewAttributeHandler(l *zap.SugaredLogger, ar attribute.AttributeRepo) *AttributeHandler {
	return &AttributeHandler{
		Logger:        l,
		AttributeRepo: ar,
	}
}

// Create handles POST /api/attributes
func (h *AttributeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input types.CreateDefinition
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	def, err := h.AttributeRepo.CreateDefinition(input)
	if err != nil {
		if errors.Is(err, myErr.ErrUnknownKind) {
			myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(def); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("attribute definition created: %d", def.ID)
}

// GetByID handles GET /api/attributes/{id}
func (h *AttributeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	def, err := h.AttributeRepo.GetDefinitionByID(id)
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
	if err := json.NewEncoder(w).Encode(def); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// List handles GET /api/attributes
// Поддерживает ?kind= и ?q= для поиска по названию
func (h *AttributeHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		defs []types.Definition
		err  error
	)

	switch {
	case r.URL.Query().Get("q") != "":
		defs, err = h.AttributeRepo.SearchDefinitions(r.URL.Query().Get("q"))
	case r.URL.Query().Get("kind") != "":
		kind := types.Kind(r.URL.Query().Get("kind"))
		if !kind.Valid() {
			myErr.SendErrorTo(w, myErr.ErrUnknownKind, http.StatusBadRequest, h.Logger)
			return
		}
		defs, err = h.AttributeRepo.ListDefinitionsByKind(kind)
	default:
		defs, err = h.AttributeRepo.ListDefinitions()
	}

	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(defs); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// Update handles PUT /api/attributes/{id}
func (h *AttributeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	var input types.CreateDefinition
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	def, err := h.AttributeRepo.UpdateDefinition(id, input)
	if err != nil {
		switch {
		case errors.Is(err, myErr.ErrNotFound):
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
		case errors.Is(err, myErr.ErrUnknownKind):
			myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		default:
			myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(def); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// Delete handles DELETE /api/attributes/{id}
func (h *AttributeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.AttributeRepo.DeleteDefinition(id); err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListValues handles GET /api/attributes/{id}/values
func (h *AttributeHandler) ListValues(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	values, err := h.AttributeRepo.ListValues(id)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(values); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// AddValue handles POST /api/attributes/{id}/values
func (h *AttributeHandler) AddValue(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	var input types.AllowedValue
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	input.AttributeID = id

	value, err := h.AttributeRepo.CreateValue(input)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// DeleteValue handles DELETE /api/attributes/values/{id}
func (h *AttributeHandler) DeleteValue(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.AttributeRepo.DeleteValue(id); err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Template handles GET /api/products/{productId}/attributes
func (h *AttributeHandler) Template(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	template, err := h.AttributeRepo.TemplateForProduct(productID)
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
	if err := json.NewEncoder(w).Encode(template); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, myErr.ErrBadID
	}
	return id, nil
}

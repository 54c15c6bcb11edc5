package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bazarlyq-main/internal/contextutil"
	"bazarlyq-main/internal/offer"
	myErr "bazarlyq-main/internal/types/errors"
	typesOffer "bazarlyq-main/internal/types/offer"
	wrappers "bazarlyq-main/internal/wrappers/geo_wrappers"
)

// OfferFlow - операции над офферами, которые дергают ручки
type OfferFlow interface {
	Generate(ctx context.Context, productID int64, profileID string) (*offer.Offer, error)
	Submit(ctx context.Context, o offer.Offer) (*offer.Offer, error)
	Get(ctx context.Context, id int64, viewerID string) (*offer.Offer, error)
	List(ctx context.Context, q typesOffer.ListQuery, filter typesOffer.FilterRequest) (*typesOffer.Page[offer.Offer], error)
	QueryBuilder(productID int64) (*typesOffer.FilterRequest, error)
}

type OfferHandler struct {
	Logger  *zap.SugaredLogger
	Service OfferFlow
	Geo     wrappers.GeoWrapperRepo
}

func NewOfferHandler(l *zap.SugaredLogger, s OfferFlow, geo wrappers.GeoWrapperRepo) *OfferHandler {
	return &OfferHandler{
		Logger:  l,
		Service: s,
		Geo:     geo,
	}
}

// offerView - оффер с развернутым адресом из геосервиса
type offerView struct {
	*offer.Offer
	Address *wrappers.AddressInfo `json:"address,omitempty"`
}

// Generate handles POST /api/offers/generate/{productId}
func (h *OfferHandler) Generate(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	profileID, ok := contextutil.GetProfileIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	o, err := h.Service.Generate(r.Context(), productID, profileID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	writeJSON(w, http.StatusCreated, o, h.Logger)
	h.Logger.Infof("offer form generated: %d", o.OfferID)
}

// Submit handles PUT /api/offers
func (h *OfferHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form offer.Offer
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	profileID, ok := contextutil.GetProfileIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}
	form.ProfileID = profileID

	o, err := h.Service.Submit(r.Context(), form)
	if err != nil {
		switch {
		case errors.Is(err, myErr.ErrBadID), errors.Is(err, myErr.ErrUnknownStatus):
			myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		case errors.Is(err, myErr.ErrSubmitInFlight):
			myErr.SendErrorTo(w, err, http.StatusConflict, h.Logger)
		case errors.Is(err, myErr.ErrNotFound):
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
		default:
			myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, o, h.Logger)
	h.Logger.Infof("offer submitted: %d", o.OfferID)
}

// Get handles GET /api/offers/{id}
func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	// Просмотр доступен и без сессии
	viewerID, _ := contextutil.GetProfileIDFromContext(r.Context())

	o, err := h.Service.Get(r.Context(), id, viewerID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	view := offerView{Offer: o}
	// Адрес дотягивается из геосервиса; его недоступность
	// карточку оффера не ломает
	if h.Geo != nil && o.AddressID != 0 {
		info, err := h.Geo.ResolveAddress(o.AddressID)
		if err != nil {
			h.Logger.Warnf("failed to resolve address %d: %v", o.AddressID, err)
		} else {
			view.Address = info
		}
	}

	writeJSON(w, http.StatusOK, view, h.Logger)
}

// Filter handles POST /api/offers/filter
// Скаляры фильтра едут в query, структурные критерии - в body
func (h *OfferHandler) Filter(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}
	q.ProfileID, _ = contextutil.GetProfileIDFromContext(r.Context())

	// Свои офферы без сессии не отдать: пустой profile_id
	// не совпадет ни с одной записью
	if !q.Other && q.ProfileID == "" {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var filter typesOffer.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	page, err := h.Service.List(r.Context(), q, filter)
	if err != nil {
		if errors.Is(err, myErr.ErrBadID) {
			myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	writeJSON(w, http.StatusOK, page, h.Logger)
	h.Logger.Infof("filtered offers: product=%d page=%d size=%d total=%d",
		q.ProductID, q.Page, q.Size, page.TotalElements)
}

// QueryBuilder handles GET /api/offers/query-builder/{productId}
func (h *OfferHandler) QueryBuilder(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	template, err := h.Service.QueryBuilder(productID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	writeJSON(w, http.StatusOK, template, h.Logger)
}

func parseListQuery(r *http.Request) (typesOffer.ListQuery, error) {
	var q typesOffer.ListQuery
	params := r.URL.Query()

	if raw := params.Get("productId"); raw != "" {
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, myErr.ErrBadID
		}
		q.ProductID = productID
	}

	if raw := params.Get("status"); raw != "" {
		status := typesOffer.Status(raw)
		if !status.Valid() {
			return q, myErr.ErrUnknownStatus
		}
		q.Status = status
	}

	q.Other = params.Get("other") == "true"

	q.Page = 0
	if raw := params.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return q, myErr.ErrBadID
		}
		q.Page = page
	}

	q.Size = 10
	if raw := params.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return q, myErr.ErrBadID
		}
		q.Size = size
	}

	q.Sort = typesOffer.DefaultSort()
	if raw := params.Get("sort"); raw != "" {
		sort, err := typesOffer.ParseSort(raw)
		if err != nil {
			return q, err
		}
		q.Sort = sort
	}

	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

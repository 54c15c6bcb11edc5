package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	esDoc "bazarlyq-main/internal/types/elastic"
	myErr "bazarlyq-main/internal/types/errors"
)

// OfferSearcher - полнотекстовый поиск по индексу офферов
type OfferSearcher interface {
	SearchOffers(ctx context.Context, query string) ([]esDoc.OfferDoc, error)
}

type SearchHandler struct {
	Logger   *zap.SugaredLogger
	Searcher OfferSearcher
}

func NewSearchHandler(l *zap.SugaredLogger, s OfferSearcher) *SearchHandler {
	return &SearchHandler{
		Logger:   l,
		Searcher: s,
	}
}

// Search handles GET /api/offers/search?q={query}
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		myErr.SendErrorTo(w, errors.New("missing query parameter"), http.StatusBadRequest, h.Logger)
		return
	}

	docs, err := h.Searcher.SearchOffers(r.Context(), q)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(docs); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("searched offers with query: %s", q)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bazarlyq-main/internal/city"
	myErr "bazarlyq-main/internal/types/errors"
)

type CityHandler struct {
	Logger   *zap.SugaredLogger
	CityRepo city.CityRepo
}

func NewCityHandler(l *zap.SugaredLogger, cr city.CityRepo) *CityHandler {
	return &CityHandler{
		Logger:   l,
		CityRepo: cr,
	}
}

// Countries handles GET /api/countries
func (h *CityHandler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.CityRepo.ListCountries()
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(countries); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// Cities handles GET /api/countries/{country}/cities
func (h *CityHandler) Cities(w http.ResponseWriter, r *http.Request) {
	country := mux.Vars(r)["country"]

	cities, err := h.CityRepo.ListPublicCities(country)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(cities); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// City handles GET /api/cities/{code}
func (h *CityHandler) City(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	c, err := h.CityRepo.GetCity(code)
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
	if err := json.NewEncoder(w).Encode(c); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

package wrappers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	geoURL = "http://localhost:8082" // позже поменяем localhost на имя контейнера
)

type GeoWrapper struct {
	BaseURL string
}

type GeoWrapperRepo interface {
	ResolveAddress(addressID int64) (*AddressInfo, error)
}

// AddressInfo - адрес из внешнего геосервиса
type AddressInfo struct {
	AddressID int64   `json:"addressId"`
	CityCode  string  `json:"cityCode"`
	Street    string  `json:"street"`
	Building  string  `json:"building"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     string  `json:"error,omitempty"`
}

func NewGeoWrapper() *GeoWrapper {
	return &GeoWrapper{
		BaseURL: geoURL,
	}
}

// ResolveAddress обертка на запрос в геосервис за адресом оффера
func (gw *GeoWrapper) ResolveAddress(addressID int64) (*AddressInfo, error) {
	url := fmt.Sprintf("%s/geo/addresses/%d", gw.BaseURL, addressID)

	resp, err := http.Get(url) // nolint:gosec
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info AddressInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(info.Error)
	}

	return &info, nil
}

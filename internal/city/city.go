package city

import (
	types "bazarlyq-main/internal/types/city"
)

// CityRepo - справочник географии для форм адресов и фильтров
//
//go:generate mockgen -source=city.go -destination=../mocks/mock_city_repo.go -package=mocks
type CityRepo interface {
	ListCountries() ([]types.Country, error)
	GetCity(code string) (*types.City, error)
	// ListPublicCities - публичные города страны в компактной форме.
	// Горячий путь каждой формы фильтра, ходит через кеш
	ListPublicCities(countryCode string) ([]types.Local, error)
}

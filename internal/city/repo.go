package city

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	types "bazarlyq-main/internal/types/city"
	myErr "bazarlyq-main/internal/types/errors"
)

const cityCachePrefix = "cities:"

type CityDBRepository struct {
	DB          *sql.DB
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
	CacheTTL    time.Duration
}

func NewCityDBRepository(
	db *sql.DB,
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	cacheTTL time.Duration,
) *CityDBRepository {
	return &CityDBRepository{
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
		CacheTTL:    cacheTTL,
	}
}

func (cr *CityDBRepository) ListCountries() ([]types.Country, error) {
	query := `
	SELECT country_code, name_ru, name_kz, name_en, is_public
	FROM country
	ORDER BY country_code
	`

	rows, err := cr.DB.Query(query)
	if err != nil {
		cr.Logger.Errorf("Error listing countries: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var countries []types.Country
	for rows.Next() {
		var c types.Country
		if err := rows.Scan(&c.CountryCode, &c.NameRu, &c.NameKz, &c.NameEn, &c.IsPublic); err != nil {
			return nil, myErr.ErrDBInternal
		}
		countries = append(countries, c)
	}

	return countries, nil
}

func (cr *CityDBRepository) GetCity(code string) (*types.City, error) {
	query := `
	SELECT city_code, name_ru, name_kz, name_en, is_public, country_code
	FROM city
	WHERE city_code = $1
	`

	var c types.City
	err := cr.DB.QueryRow(query, code).
		Scan(&c.CityCode, &c.NameRu, &c.NameKz, &c.NameEn, &c.IsPublic, &c.CountryCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		cr.Logger.Errorf("Error getting city by code: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &c, nil
}

// ListPublicCities читает через кеш: промах уходит в базу,
// результат откладывается в Redis на CacheTTL
func (cr *CityDBRepository) ListPublicCities(countryCode string) ([]types.Local, error) {
	ctx := context.Background()
	key := cityCachePrefix + countryCode

	if cached, err := cr.RedisClient.Get(ctx, key).Result(); err == nil {
		var cities []types.Local
		if err := json.Unmarshal([]byte(cached), &cities); err == nil {
			return cities, nil
		}
		// битый кеш перечитываем из базы
		cr.Logger.Warnf("Broken city cache for %s, refilling", countryCode)
	} else if !errors.Is(err, redis.Nil) {
		cr.Logger.Warnf("City cache unavailable: %v", err)
	}

	cities, err := cr.listPublicCitiesFromDB(countryCode)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(cities); err == nil {
		if err := cr.RedisClient.Set(ctx, key, payload, cr.CacheTTL).Err(); err != nil {
			cr.Logger.Warnf("Failed to fill city cache: %v", err)
		}
	}

	return cities, nil
}

func (cr *CityDBRepository) listPublicCitiesFromDB(countryCode string) ([]types.Local, error) {
	query := `
	SELECT city_code, name_ru
	FROM city
	WHERE country_code = $1 AND is_public = TRUE
	ORDER BY name_ru
	`

	rows, err := cr.DB.Query(query, countryCode)
	if err != nil {
		cr.Logger.Errorf("Error listing public cities: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	cities := []types.Local{}
	for rows.Next() {
		var c types.Local
		if err := rows.Scan(&c.CityCode, &c.Name); err != nil {
			return nil, myErr.ErrDBInternal
		}
		cities = append(cities, c)
	}

	return cities, nil
}

package city

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	types "bazarlyq-main/internal/types/city"
	customErrors "bazarlyq-main/internal/types/errors"
)

func newTestRepo(t *testing.T) (*CityDBRepository, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logger := zaptest.NewLogger(t).Sugar()
	repo := NewCityDBRepository(db, client, logger, time.Minute)

	return repo, mock, mr
}

func TestCityDBRepository_ListPublicCities_CacheMissThenHit(t *testing.T) {
	repo, mock, mr := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT city_code, name_ru
		FROM city
		WHERE country_code = $1 AND is_public = TRUE
		ORDER BY name_ru
	`)).
		WithArgs("KZ").
		WillReturnRows(sqlmock.NewRows([]string{"city_code", "name_ru"}).
			AddRow("ALA", "Алматы").
			AddRow("AST", "Астана"))

	// первый вызов - промах, идем в базу
	cities, err := repo.ListPublicCities("KZ")
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "ALA", cities[0].CityCode)

	// кеш заполнен
	cached, err := mr.Get("cities:KZ")
	require.NoError(t, err)
	var fromCache []types.Local
	require.NoError(t, json.Unmarshal([]byte(cached), &fromCache))
	assert.Equal(t, cities, fromCache)

	// второй вызов - попадание, запроса в базу нет
	again, err := repo.ListPublicCities("KZ")
	require.NoError(t, err)
	assert.Equal(t, cities, again)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityDBRepository_ListPublicCities_BrokenCacheRefills(t *testing.T) {
	repo, mock, mr := newTestRepo(t)

	require.NoError(t, mr.Set("cities:KZ", "not-json"))

	mock.ExpectQuery(`SELECT city_code, name_ru`).
		WithArgs("KZ").
		WillReturnRows(sqlmock.NewRows([]string{"city_code", "name_ru"}).
			AddRow("ALA", "Алматы"))

	cities, err := repo.ListPublicCities("KZ")
	require.NoError(t, err)
	require.Len(t, cities, 1)

	// кеш перезаписан валидным значением
	cached, getErr := mr.Get("cities:KZ")
	require.NoError(t, getErr)
	var fromCache []types.Local
	assert.NoError(t, json.Unmarshal([]byte(cached), &fromCache))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityDBRepository_ListPublicCities_CacheExpires(t *testing.T) {
	repo, mock, mr := newTestRepo(t)

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"city_code", "name_ru"}).AddRow("ALA", "Алматы")
	}

	mock.ExpectQuery(`SELECT city_code, name_ru`).WithArgs("KZ").WillReturnRows(rows())
	mock.ExpectQuery(`SELECT city_code, name_ru`).WithArgs("KZ").WillReturnRows(rows())

	_, err := repo.ListPublicCities("KZ")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = repo.ListPublicCities("KZ")
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityDBRepository_GetCity(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT city_code, name_ru, name_kz, name_en, is_public, country_code
		FROM city
		WHERE city_code = $1
	`)).
		WithArgs("ALA").
		WillReturnRows(sqlmock.NewRows([]string{
			"city_code", "name_ru", "name_kz", "name_en", "is_public", "country_code",
		}).AddRow("ALA", "Алматы", "Алматы", "Almaty", true, "KZ"))

	c, err := repo.GetCity("ALA")
	require.NoError(t, err)
	assert.Equal(t, "Almaty", c.NameEn)
	assert.True(t, c.IsPublic)

	mock.ExpectQuery(`SELECT city_code`).
		WithArgs("XXX").
		WillReturnRows(sqlmock.NewRows([]string{"city_code"}))

	_, err = repo.GetCity("XXX")
	assert.Equal(t, customErrors.ErrNotFound, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityDBRepository_ListCountries(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(`SELECT country_code, name_ru, name_kz, name_en, is_public`).
		WillReturnRows(sqlmock.NewRows([]string{
			"country_code", "name_ru", "name_kz", "name_en", "is_public",
		}).
			AddRow("KZ", "Казахстан", "Қазақстан", "Kazakhstan", true).
			AddRow("RU", "Россия", "Ресей", "Russia", true))

	countries, err := repo.ListCountries()
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "KZ", countries[0].CountryCode)

	assert.NoError(t, mock.ExpectationsWereMet())
}

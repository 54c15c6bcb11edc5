package etl

import (
	"database/sql"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/context"
)

// OfferRecord - строка оффера вместе с названием товара для поискового индекса
type OfferRecord struct {
	ID           int64
	ProductName  string
	Description  string
	ProductID    int64
	CategoryCode string
	CityCode     string
	Price        float64
	Currency     string
	Status       string
	UpdatedAt    time.Time
}

type PostgresExtractor struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostgresExtractor(db *sql.DB, logger *zap.SugaredLogger) *PostgresExtractor {
	return &PostgresExtractor{
		DB:     db,
		Logger: logger,
	}
}

// ExtractNew - достает активные офферы, еще не попавшие в полнотекстовый поиск
// Возвращает массив OfferRecord и error
func (e *PostgresExtractor) ExtractNew(ctx context.Context) ([]OfferRecord, error) {
	query :=
		`
		SELECT o.id, p.name, o.description, o.product_id, o.category_code,
			   o.city_code, o.price, o.preferred_currency, o.status, o.updated_at
		FROM offer o
		JOIN product p ON p.id = o.product_id
		WHERE o.search_indexed = FALSE AND o.status = 'ACTV'
		`

	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		e.Logger.Error("Failed to executing query", zap.Error(err))

		return nil, err
	}
	defer rows.Close()

	var result []OfferRecord

	for rows.Next() {
		var r OfferRecord
		var description sql.NullString
		err := rows.Scan(
			&r.ID, &r.ProductName, &description, &r.ProductID, &r.CategoryCode,
			&r.CityCode, &r.Price, &r.Currency, &r.Status, &r.UpdatedAt,
		)
		if err != nil {
			e.Logger.Error("Failed to scan rows", zap.Error(err))

			return nil, err
		}
		r.Description = description.String
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		e.Logger.Error("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return result, nil
}

package etl_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"

	"bazarlyq-main/internal/etl"
	"bazarlyq-main/internal/types/elastic"
)

var extractColumns = []string{
	"id", "name", "description", "product_id", "category_code",
	"city_code", "price", "preferred_currency", "status", "updated_at",
}

func TestPostgresExtractor_ExtractNew(t *testing.T) {
	logger := zap.NewNop().Sugar()

	queryRe := regexp.QuoteMeta(`
		SELECT o.id, p.name, o.description, o.product_id, o.category_code,
			   o.city_code, o.price, o.preferred_currency, o.status, o.updated_at
		FROM offer o
		JOIN product p ON p.id = o.product_id
		WHERE o.search_indexed = FALSE AND o.status = 'ACTV'
		`)

	tests := []struct {
		name          string
		mockQuery     func(mock sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success with two rows",
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(extractColumns).
					AddRow(int64(1), "Чайник", "desc1", int64(7), "APPL", "ALA", 7000.0, "KZT", "ACTV", time.Now()).
					AddRow(int64(2), "Самокат", "desc2", int64(8), "SPRT", "AST", 30000.0, "KZT", "ACTV", time.Now())
				mock.ExpectQuery(queryRe).WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name: "query error",
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(queryRe).WillReturnError(errors.New("query failed"))
			},
			expectedError: true,
		},
		{
			name: "null description",
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(extractColumns).
					AddRow(int64(1), "Чайник", nil, int64(7), "APPL", "ALA", 7000.0, "KZT", "ACTV", time.Now())
				mock.ExpectQuery(queryRe).WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to open sqlmock: %v", err)
			}
			defer db.Close()

			tt.mockQuery(mock)

			extractor := etl.NewPostgresExtractor(db, logger)

			results, err := extractor.ExtractNew(context.Background())

			if tt.expectedError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectedError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(results) != tt.expectedCount {
				t.Errorf("expected %d results, got %d", tt.expectedCount, len(results))
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestTransformer_Transform(t *testing.T) {
	logger := zap.NewNop().Sugar()

	tests := []struct {
		name   string
		input  []etl.OfferRecord
		expect []elastic.OfferDoc
	}{
		{
			name:   "empty input",
			input:  []etl.OfferRecord{},
			expect: []elastic.OfferDoc{},
		},
		{
			name: "single offer",
			input: []etl.OfferRecord{
				{
					ID:           42,
					ProductName:  "Чайник",
					Description:  "Почти новый",
					ProductID:    7,
					CategoryCode: "APPL",
					CityCode:     "ALA",
					Price:        7000,
					Currency:     "KZT",
					Status:       "ACTV",
				},
			},
			expect: []elastic.OfferDoc{
				{
					ID:           "42",
					Name:         "Чайник",
					Description:  "Почти новый",
					ProductID:    7,
					CategoryCode: "APPL",
					CityCode:     "ALA",
					Price:        7000,
					Currency:     "KZT",
					Status:       "ACTV",
				},
			},
		},
		{
			name: "multiple offers",
			input: []etl.OfferRecord{
				{ID: 1, ProductName: "A1", Status: "ACTV"},
				{ID: 2, ProductName: "A2", Status: "ACTV"},
			},
			expect: []elastic.OfferDoc{
				{ID: "1", Name: "A1", Status: "ACTV"},
				{ID: "2", Name: "A2", Status: "ACTV"},
			},
		},
	}

	transformer := etl.NewTransformer(logger)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transformer.Transform(tt.input)
			if len(got) != len(tt.expect) {
				t.Fatalf("expected %d results, got %d", len(tt.expect), len(got))
			}

			for i := range got {
				if got[i] != tt.expect[i] {
					t.Errorf("expected %v, got %v", tt.expect[i], got[i])
				}
			}
		})
	}
}

package etl

import (
	"strconv"

	"go.uber.org/zap"

	"bazarlyq-main/internal/types/elastic"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform - переводит офферы из формата хранения в PostgreSQL в OfferDoc для хранения в ES
// Принимает массив OfferRecord, возвращает массив OfferDoc
func (t *Transformer) Transform(input []OfferRecord) []elastic.OfferDoc {
	docs := make([]elastic.OfferDoc, 0, len(input))
	for _, r := range input {
		docs = append(docs, elastic.OfferDoc{
			ID:           strconv.FormatInt(r.ID, 10),
			Name:         r.ProductName,
			Description:  r.Description,
			ProductID:    r.ProductID,
			CategoryCode: r.CategoryCode,
			CityCode:     r.CityCode,
			Price:        r.Price,
			Currency:     r.Currency,
			Status:       r.Status,
		})
	}

	t.Logger.Infof("Transformed %d docs succesfully", len(input))

	return docs
}

package etl

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/lib/pq"
	"go.uber.org/zap"

	elasticService "bazarlyq-main/internal/elastic_search"
	"bazarlyq-main/internal/types/elastic"
	myErr "bazarlyq-main/internal/types/errors"
)

type ElasticLoader struct {
	Service *elasticService.ElasticService
	Logger  *zap.SugaredLogger
	DB      *sql.DB
}

func NewElasticLoader(service *elasticService.ElasticService, logger *zap.SugaredLogger, db *sql.DB) *ElasticLoader {
	return &ElasticLoader{
		Service: service,
		Logger:  logger,
		DB:      db,
	}
}

// Load - загружает подготовленные OfferDoc в индекс ElasticSearch
// и помечает загруженные офферы в PostgreSQL
// Принимает массив OfferDoc, возвращает error
func (l *ElasticLoader) Load(ctx context.Context, docs []elastic.OfferDoc) error {
	if len(docs) == 0 {
		l.Logger.Infow("No documents to load")
		return nil
	}

	l.Logger.Infow("Loading documents to Elasticsearch", "count", len(docs))
	err := l.Service.BulkIndex(ctx, docs)
	if err != nil {
		l.Logger.Errorw("Failed to bulk index documents", zap.Error(err))
		return err
	}

	l.Logger.Infow("Successfully indexed documents", "count", len(docs))

	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		id, err := strconv.ParseInt(doc.ID, 10, 64)
		if err != nil {
			l.Logger.Warnf("Skip marking doc with non-numeric id %q", doc.ID)
			continue
		}
		ids = append(ids, id)
	}

	query := `UPDATE offer SET search_indexed = TRUE WHERE id = ANY($1)`

	_, err = l.DB.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		l.Logger.Errorw("Failed to update documents in PostgreSQL", zap.Error(err))
		return myErr.ErrDBInternal
	}

	return nil
}

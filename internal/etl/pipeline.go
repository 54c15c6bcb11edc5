package etl

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Pipeline struct {
	extractor   *PostgresExtractor
	transformer *Transformer
	loader      *ElasticLoader
	logger      *zap.SugaredLogger
	interval    time.Duration
}

func NewPipeline(
	extractor *PostgresExtractor,
	transformer *Transformer,
	loader *ElasticLoader,
	logger *zap.SugaredLogger,
	interval time.Duration,
) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
		interval:    interval,
	}
}

func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("ETL pipeline started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Sync(ctx); err != nil {
				p.logger.Errorw("ETL iteration failed", zap.Error(err))
			}
		}
	}
}

// Sync - одна итерация extract -> transform -> load
func (p *Pipeline) Sync(ctx context.Context) error {
	records, err := p.extractor.ExtractNew(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		p.logger.Infow("No new offers to process")

		return nil
	}

	docs := p.transformer.Transform(records)

	if err := p.loader.Load(ctx, docs); err != nil {
		return err
	}

	p.logger.Infof("ETL pipeline completed, successfully loaded %d docs", len(records))

	return nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"bazarlyq-main/internal/app"
	elasticSearch "bazarlyq-main/internal/elastic_search"
	"bazarlyq-main/internal/etl"
	"bazarlyq-main/internal/kafka"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

const cfgPath = "config/indexer.yaml"

func main() {
	// Init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := zapLogger.Sugar()
	defer func() { _ = zapLogger.Sync() }()

	// Parse config
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("Error parsing config: %v", err)
	}

	// Init DB
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("Error connecting to DB: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Errorf("DB ping failed: %v", err)
	}

	// Init Elasticsearch
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.CfgES.Addresses,
	})
	if err != nil {
		logger.Fatalf("Error creating elasticsearch client: %v", err)
	}

	elasticService := elasticSearch.NewService(esClient, logger, c.CfgES.Index)
	if err := elasticService.EnsureIndex(context.Background()); err != nil {
		logger.Fatalf("Error ensuring index: %v", err)
	}

	// Init ETL pipeline
	extractor := etl.NewPostgresExtractor(db, logger)
	transformer := etl.NewTransformer(logger)
	loader := etl.NewElasticLoader(elasticService, logger, db)
	pipeline := etl.NewPipeline(extractor, transformer, loader, logger, c.ETLInterval)

	ctx := context.Background()

	// Периодическая синхронизация - подстраховка на случай потерянных событий
	go pipeline.Run(ctx)

	// Init Kafka Consumer
	consumer := kafka.NewConsumer(c.CfgKafka.Brokers, c.CfgKafka.Topic, c.CfgKafka.GroupID, logger)
	defer consumer.Close()

	// События витрины триггерят немедленную синхронизацию индекса
	go func() {
		consumer.Consume(ctx, func(ctx context.Context, event kafka.Event) error {
			switch event.Type {
			case kafka.EventTypeOfferCreated, kafka.EventTypeOfferUpdated:
				return pipeline.Sync(ctx)
			default:
				return nil
			}
		})
	}()

	// Init HTTP server
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Infof("Starting indexer service on %s", c.ServerPort)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

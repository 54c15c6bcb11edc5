package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"bazarlyq-main/internal/app"
	"bazarlyq-main/internal/attribute"
	"bazarlyq-main/internal/city"
	handlersAttribute "bazarlyq-main/internal/handlers/attribute"
	handlersCity "bazarlyq-main/internal/handlers/city"
	handlersMedia "bazarlyq-main/internal/handlers/media"
	handlersOffer "bazarlyq-main/internal/handlers/offer"
	handlersProfile "bazarlyq-main/internal/handlers/profile"
	handlersSearch "bazarlyq-main/internal/handlers/search"
	"bazarlyq-main/internal/kafka"
	"bazarlyq-main/internal/media"
	"bazarlyq-main/internal/middleware"
	"bazarlyq-main/internal/offer"
	"bazarlyq-main/internal/profile"
	"bazarlyq-main/internal/session"
	wrappers "bazarlyq-main/internal/wrappers/geo_wrappers"

	elasticSearch "bazarlyq-main/internal/elastic_search"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

const cfgPath = "config/config.yaml"

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.CfgRedis.Addr,
		Password: "",
		DB:       0, // стандартная БД
	})

	// init kafka producer
	producer := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Warnf("error to close kafka producer: %v", err)
		}
	}()

	// init elasticsearch
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.CfgES.Addresses,
	})
	if err != nil {
		logger.Fatalf("error to create elasticsearch client: %v", err)
	}
	elasticService := elasticSearch.NewService(esClient, logger, c.CfgES.Index)

	// init repository
	attributeRepository := attribute.NewAttributeDBRepository(db, logger)
	offerRepository := offer.NewOfferDBRepository(db, logger, attributeRepository)
	offerService := offer.NewOfferService(offerRepository, producer, logger)
	cityRepository := city.NewCityDBRepository(db, redisClient, logger, c.CityCacheTTL)
	mediaRepository := media.NewMediaDBRepository(db, logger)
	profileRepository := profile.NewProfileDBRepository(db, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// init wrappers
	geoWrapper := wrappers.NewGeoWrapper()

	// init handlers
	offerHandlers := handlersOffer.NewOfferHandler(logger, offerService, geoWrapper)
	attributeHandlers := handlersAttribute.NewAttributeHandler(logger, attributeRepository)
	cityHandlers := handlersCity.NewCityHandler(logger, cityRepository)
	mediaHandlers := handlersMedia.NewMediaHandler(logger, mediaRepository)
	profileHandlers := handlersProfile.NewProfileHandler(logger, profileRepository, sessionRepository)
	searchHandlers := handlersSearch.NewSearchHandler(logger, elasticService)

	// Ручки требующие авторизации
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.Auth(sessionRepository, logger))

	authRouter.HandleFunc("/offers/generate/{productId}", offerHandlers.Generate).Methods("POST")
	authRouter.HandleFunc("/offers", offerHandlers.Submit).Methods("PUT")

	authRouter.HandleFunc("/attributes", attributeHandlers.Create).Methods("POST")
	authRouter.HandleFunc("/attributes/{id}", attributeHandlers.Update).Methods("PUT")
	authRouter.HandleFunc("/attributes/{id}", attributeHandlers.Delete).Methods("DELETE")
	authRouter.HandleFunc("/attributes/{id}/values", attributeHandlers.AddValue).Methods("POST")
	authRouter.HandleFunc("/attributes/values/{id}", attributeHandlers.DeleteValue).Methods("DELETE")

	authRouter.HandleFunc("/media", mediaHandlers.Add).Methods("POST")
	authRouter.HandleFunc("/media/{id}/main", mediaHandlers.SetMain).Methods("PUT")
	authRouter.HandleFunc("/media/{id}", mediaHandlers.Delete).Methods("DELETE")

	authRouter.HandleFunc("/profiles", profileHandlers.Change).Methods("PUT")
	authRouter.HandleFunc("/profiles/logout", profileHandlers.Logout).Methods("POST")

	// Ручки НЕ требующие авторизации. Сессия, если она есть,
	// все равно кладется в контекст: фильтр и просмотр различают
	// своего и анонимного посетителя
	noAuthRouter := r.PathPrefix("/api").Subrouter()
	noAuthRouter.Use(middleware.SoftAuth(sessionRepository))

	noAuthRouter.HandleFunc("/offers/search", searchHandlers.Search).Methods("GET")
	noAuthRouter.HandleFunc("/offers/{id:[0-9]+}", offerHandlers.Get).Methods("GET")
	noAuthRouter.HandleFunc("/offers/filter", offerHandlers.Filter).Methods("POST")
	noAuthRouter.HandleFunc("/offers/query-builder/{productId}", offerHandlers.QueryBuilder).Methods("GET")

	noAuthRouter.HandleFunc("/attributes", attributeHandlers.List).Methods("GET")
	noAuthRouter.HandleFunc("/attributes/{id}", attributeHandlers.GetByID).Methods("GET")
	noAuthRouter.HandleFunc("/attributes/{id}/values", attributeHandlers.ListValues).Methods("GET")
	noAuthRouter.HandleFunc("/products/{productId}/attributes", attributeHandlers.Template).Methods("GET")

	noAuthRouter.HandleFunc("/countries", cityHandlers.Countries).Methods("GET")
	noAuthRouter.HandleFunc("/countries/{country}/cities", cityHandlers.Cities).Methods("GET")
	noAuthRouter.HandleFunc("/cities/{code}", cityHandlers.City).Methods("GET")

	noAuthRouter.HandleFunc("/media/{linkedType}/{linkedId}", mediaHandlers.List).Methods("GET")

	noAuthRouter.HandleFunc("/profiles/register", profileHandlers.Register).Methods("POST")
	noAuthRouter.HandleFunc("/profiles/login", profileHandlers.Login).Methods("POST")
	noAuthRouter.HandleFunc("/profiles/{id}", profileHandlers.Info).Methods("GET")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		panic("can't start server: " + err.Error())
	}
}

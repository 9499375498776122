package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/bootstrap"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/checkout"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/config"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/es"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/events"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/handlers"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/handlers/seller"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/logging"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/middleware/loggingmw"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/notify"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/session"
	httpserver "github.com/NAIFEKHAN/FGS-BOPIN/internal/transport/http"
	"github.com/NAIFEKHAN/FGS-BOPIN/pkg/db"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.JWT_SECRET, "JWT_SECRET")
	jwtSecret := []byte(cfg.JWT_SECRET)

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	if err := bootstrap.Init(gormDB, logger, cfg.SellerUsername, cfg.SellerPassword); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	rdb, err := session.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis init failed: %v", err)
	}
	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	sessions := session.NewStore(rdb, sessionTTL)

	producer := events.NewProducer(cfg.KafkaBrokers)
	if !producer.Enabled() {
		logger.Info("kafka disabled: no brokers configured")
	}

	var esClient *elasticsearch.Client
	if cfg.ES_URL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
	} else {
		logger.Info("search disabled: ES_URL not set")
	}

	mailer := notify.NewMailer(cfg)
	if !mailer.Enabled() {
		logger.Info("order emails disabled: mail settings incomplete")
	}

	svc := &checkout.Service{DB: gormDB, Mailer: mailer, Producer: producer}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:              gormDB,
		JWTSecret:       jwtSecret,
		UploadDir:       cfg.UploadDir,
		ProductHandler:  &handlers.ProductHandler{DB: gormDB},
		BannerHandler:   &handlers.BannerHandler{DB: gormDB},
		SlotHandler:     &handlers.SlotHandler{DB: gormDB},
		CartHandler:     &handlers.CartHandler{DB: gormDB, Sessions: sessions, TTL: sessionTTL},
		CheckoutHandler: &handlers.CheckoutHandler{Svc: svc, Sessions: sessions, TTL: sessionTTL},
		OrderHandler:    &handlers.OrderHandler{DB: gormDB},
		SearchHandler:   &handlers.SearchHandler{ES: esClient},
		SellerAuth:      &seller.AuthHandler{DB: gormDB, JWTSecret: jwtSecret},
		SellerProducts:  &seller.ProductHandler{DB: gormDB, Producer: producer, ES: esClient, UploadDir: cfg.UploadDir},
		SellerBanners:   &seller.BannerHandler{DB: gormDB, UploadDir: cfg.UploadDir},
		SellerOrders:    &seller.OrderHandler{DB: gormDB},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("force exit")
		os.Exit(1)
	}()

	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := rdb.Close(); err != nil {
		log.Printf("redis close error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}

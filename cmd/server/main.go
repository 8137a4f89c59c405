package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	"storefront-service/internal/api"
	"storefront-service/internal/broker"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/service"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
	"storefront-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront service")

	tp, err := util.InitTracer("storefront-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	loc, err := time.LoadLocation(cfg.Store.Timezone)
	if err != nil {
		log.Fatalf("Invalid store timezone %q: %v", cfg.Store.Timezone, err)
	}

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Store.CartTTL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	whatsapp := service.NewWhatsAppBuilder(cfg.Store.WhatsAppNumber, cfg.Store.Name)
	geocoder := service.NewGeocoder(cfg.Store.GeocodeEndpoint)

	catalogService := service.NewCatalogService(db)
	cartService := service.NewCartService(db, redisClient)
	settingsService := service.NewSettingsService(db, redisClient, eventPublisher, loc)
	checkoutService := service.NewCheckoutService(db, redisClient, settingsService, eventPublisher, whatsapp, loc)
	orderService := service.NewOrderService(db, eventPublisher, cfg.Store.KitchenLateAfter)
	deliveryService := service.NewDeliveryService(db, settingsService, geocoder)
	couponService := service.NewCouponService(db, loc)
	financeService := service.NewFinanceService(db, loc)
	inventoryService := service.NewInventoryService(db)

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	watcher := service.NewStatusWatcher(settingsService, redisClient, eventPublisher, cfg.Store.StatusPollEvery)
	go watcher.Run(bgCtx)

	hub := api.NewHub(redisClient)
	go hub.Run(bgCtx)

	consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders, cfg.Kafka.ConsumerGroup)
	eventWorker := worker.NewEventWorker(consumer, redisClient)
	go func() {
		if err := eventWorker.Start(bgCtx); err != nil {
			log.Printf("Event worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(
		catalogService,
		cartService,
		checkoutService,
		orderService,
		deliveryService,
		couponService,
		settingsService,
		financeService,
		inventoryService,
		hub,
		cfg.Auth.JWTSecret,
	)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	bgCancel()
	eventWorker.Stop()

	log.Println("Server exited")
}

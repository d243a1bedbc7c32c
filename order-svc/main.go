package main

import (
	"context"
	"log"

	"campus-canteen/auth"
	"campus-canteen/config"
	httpapi "campus-canteen/order-svc/internal/api/http"
	"campus-canteen/order-svc/internal/service"
	"campus-canteen/order-svc/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repo := storage.NewPostgresRepository(db, cfg.Timeout())
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	writer := config.NewKafkaWriter(cfg, config.TopicOrders)
	defer writer.Close()
	publisher := storage.NewKafkaPublisher(writer)

	profiles := auth.NewPostgresProfiles(db, cfg.Timeout())
	authMW := auth.NewMiddleware(auth.NewVerifier(cfg.JWTSecret), profiles)

	orderSvc := service.NewOrderService(repo, publisher, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL})
	lifecycle := service.NewLifecycle(repo, publisher)

	handler := httpapi.NewHandler(orderSvc, lifecycle, authMW)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8084"), router)
}

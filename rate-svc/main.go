package main

import (
	"context"
	"log"

	"campus-canteen/auth"
	"campus-canteen/config"
	httpapi "campus-canteen/rate-svc/internal/api/http"
	"campus-canteen/rate-svc/internal/service"
	"campus-canteen/rate-svc/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db, cfg.Timeout())
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	writer := config.NewKafkaWriter(cfg, config.TopicRatings)
	defer writer.Close()

	ratingSvc := service.NewRatingService(repo, storage.NewRedisCatalogCache(rdb), storage.NewKafkaPublisher(writer))

	profiles := auth.NewPostgresProfiles(db, cfg.Timeout())
	authMW := auth.NewMiddleware(auth.NewVerifier(cfg.JWTSecret), profiles)

	handler := httpapi.NewHandler(ratingSvc, authMW)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8082"), router)
}

package main

import (
	"context"
	"log"

	"campus-canteen/auth"
	"campus-canteen/config"
	httpapi "campus-canteen/menu-svc/internal/api/http"
	"campus-canteen/menu-svc/internal/service"
	"campus-canteen/menu-svc/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	ctx := context.Background()
	repo := storage.NewPostgresRepository(db, cfg.Timeout())
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}
	profiles := auth.NewPostgresProfiles(db, cfg.Timeout())
	if err := profiles.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure users schema:", err)
	}

	catalog := storage.NewCachedCatalog(repo, rdb, config.CatalogCacheTTL)
	authMW := auth.NewMiddleware(auth.NewVerifier(cfg.JWTSecret), profiles)

	handler := httpapi.NewHandler(
		service.NewMenuService(catalog),
		service.NewSettingsService(repo),
		service.NewProfileService(profiles),
		authMW,
		cfg.UploadDir,
		cfg.Location(),
	)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8081"), router)
}

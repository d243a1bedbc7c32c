package main

import (
	"campus-canteen/auth"
	"campus-canteen/config"
	httpapi "campus-canteen/report-svc/internal/api/http"
	"campus-canteen/report-svc/internal/service"
	"campus-canteen/report-svc/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reportSvc := service.NewReportService(
		storage.NewPostgresRepository(db, cfg.Timeout()),
		storage.NewRedisLeaderboard(rdb),
		cfg.Location(),
	)

	profiles := auth.NewPostgresProfiles(db, cfg.Timeout())
	authMW := auth.NewMiddleware(auth.NewVerifier(cfg.JWTSecret), profiles)

	handler := httpapi.NewHandler(reportSvc, authMW, cfg.Location())
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8083"), router)
}

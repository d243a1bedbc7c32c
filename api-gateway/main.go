package main

import (
	"log"
	"net/http"

	"campus-canteen/api-gateway/internal/gateway"
	"campus-canteen/config"

	"github.com/rs/cors"
)

func main() {
	cfg := config.MustLoad()

	gwConfig := gateway.Config{
		MenuSvcURL:   config.GetEnv("MENU_SVC_URL", "http://localhost:8081"),
		RateSvcURL:   config.GetEnv("RATE_SVC_URL", "http://localhost:8082"),
		ReportSvcURL: config.GetEnv("REPORT_SVC_URL", "http://localhost:8083"),
		OrderSvcURL:  config.GetEnv("ORDER_SVC_URL", "http://localhost:8084"),
	}

	gw := gateway.NewGateway(gwConfig, &http.Client{Timeout: cfg.Timeout()})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	port := config.GetEnv("PORT", "8080")
	log.Printf("API Gateway starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

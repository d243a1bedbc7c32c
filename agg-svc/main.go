package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"campus-canteen/agg-svc/internal/service"
	"campus-canteen/agg-svc/internal/storage"
	"campus-canteen/config"
	"campus-canteen/metrics"

	"golang.org/x/sync/errgroup"
)

const consumerGroup = "agg-svc-consumer"

func main() {
	cfg := config.MustLoad()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storage.NewStore(rdb, cfg.Timeout())
	g, gctx := errgroup.WithContext(ctx)

	for _, topic := range []string{config.TopicRatings, config.TopicOrders} {
		reader := config.NewKafkaReader(cfg, topic, consumerGroup)
		defer reader.Close()

		consumer := service.NewConsumer(reader, store, cfg.Location())
		g.Go(func() error {
			log.Printf("Starting Aggregation Service consumer on %s...", topic)
			consumer.Start(gctx)
			return nil
		})
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{Addr: ":" + config.GetEnv("PORT", "8086"), Handler: mux}
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return server.Close()
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Aggregation Service stopped:", err)
	}
}

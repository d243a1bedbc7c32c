package service

import (
	"context"

	"campus-canteen/agg-svc/internal/domain"
	"campus-canteen/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	MirrorRatingStats(ctx context.Context, menuItemID int, avgRating float64, ratingCount int) error
	RecordPopularity(ctx context.Context, day string, items []domain.EventItem) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Process(ctx context.Context, event domain.Event) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)

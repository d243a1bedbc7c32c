package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"campus-canteen/agg-svc/internal/domain"
	"campus-canteen/metrics"
)

var errSkipped = errors.New("event skipped")

type Consumer struct {
	Reader   MessageReader
	Store    StoreInterface
	Location *time.Location
}

func NewConsumer(reader MessageReader, store StoreInterface, loc *time.Location) *Consumer {
	if loc == nil {
		loc = time.Local
	}
	return &Consumer{
		Reader:   reader,
		Store:    store,
		Location: loc,
	}
}

// Start reads until ctx is cancelled. A message that fails to decode or
// apply is logged and dropped; the mirror is rebuilt by later events.
func (c *Consumer) Start(ctx context.Context) {
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message from %s: %v", message.Topic, err)
			metrics.EventsConsumed.WithLabelValues("unknown", "malformed").Inc()
			continue
		}

		if err := c.Process(ctx, event); err != nil && !errors.Is(err, errSkipped) {
			log.Printf("Error processing %s event: %v", event.Type, err)
		}
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.Event) error {
	var err error
	switch event.Type {
	case domain.EventRatingAverageUpdated:
		err = c.processRating(ctx, event)
	case domain.EventOrderStatusChanged:
		err = c.processOrder(ctx, event)
	default:
		err = errSkipped
	}

	switch {
	case errors.Is(err, errSkipped):
		metrics.EventsConsumed.WithLabelValues(event.Type, "skipped").Inc()
	case err != nil:
		metrics.EventsConsumed.WithLabelValues(event.Type, "error").Inc()
	default:
		metrics.EventsConsumed.WithLabelValues(event.Type, "ok").Inc()
	}
	return err
}

func (c *Consumer) processRating(ctx context.Context, event domain.Event) error {
	if event.MenuItemID <= 0 {
		return fmt.Errorf("rating event without menu item: %w", errSkipped)
	}
	if err := c.Store.MirrorRatingStats(ctx, event.MenuItemID, event.AvgRating, event.RatingCount); err != nil {
		return fmt.Errorf("failed to mirror stats for menu item %d: %w", event.MenuItemID, err)
	}
	log.Printf("Mirrored rating stats: MenuItemID=%d, Avg=%.2f, Count=%d",
		event.MenuItemID, event.AvgRating, event.RatingCount)
	return nil
}

// processOrder counts the items of an order once, when it reaches Completed.
// The day is taken from the event time in the report time zone so it lines up
// with the daily report window.
func (c *Consumer) processOrder(ctx context.Context, event domain.Event) error {
	if event.Status != domain.StatusCompleted || len(event.Items) == 0 {
		return errSkipped
	}
	at := event.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	day := at.In(c.Location).Format("2006-01-02")

	if err := c.Store.RecordPopularity(ctx, day, event.Items); err != nil {
		return fmt.Errorf("failed to record popularity for order %d: %w", event.OrderID, err)
	}
	log.Printf("Recorded popularity: OrderID=%d, Day=%s, Items=%d", event.OrderID, day, len(event.Items))
	return nil
}

package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-canteen/agg-svc/internal/domain"
	"campus-canteen/agg-svc/internal/mocks"
	"campus-canteen/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func TestConsumer_Process(t *testing.T) {
	// 20:00 UTC on the 13th is the 14th in IST.
	lateEvening := time.Date(2024, 3, 13, 20, 0, 0, 0, time.UTC)
	items := []domain.EventItem{
		{MenuItemID: 1, Name: "Masala Dosa", Quantity: 2},
		{MenuItemID: 2, Name: "Filter Coffee", Quantity: 1},
	}

	tests := []struct {
		name           string
		inputEvent     domain.Event
		setupMockStore func(*mocks.StoreInterface)
		expectError    bool
	}{
		{
			name:       "rating_average_updated",
			inputEvent: domain.Event{Type: domain.EventRatingAverageUpdated, MenuItemID: 4, AvgRating: 4.5, RatingCount: 2},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("MirrorRatingStats", mock.Anything, 4, 4.5, 2).Return(nil).Once()
			},
		},
		{
			name:       "rating_store_error",
			inputEvent: domain.Event{Type: domain.EventRatingAverageUpdated, MenuItemID: 4, AvgRating: 4.5, RatingCount: 2},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("MirrorRatingStats", mock.Anything, 4, 4.5, 2).Return(errors.New("redis error")).Once()
			},
			expectError: true,
		},
		{
			name:           "rating_without_item",
			inputEvent:     domain.Event{Type: domain.EventRatingAverageUpdated},
			setupMockStore: func(*mocks.StoreInterface) {},
			expectError:    true,
		},
		{
			name:       "order_completed",
			inputEvent: domain.Event{Type: domain.EventOrderStatusChanged, OrderID: 7, Status: "Completed", Items: items, Timestamp: lateEvening},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordPopularity", mock.Anything, "2024-03-14", items).Return(nil).Once()
			},
		},
		{
			name:           "order_still_preparing",
			inputEvent:     domain.Event{Type: domain.EventOrderStatusChanged, OrderID: 7, Status: "Preparing", Items: items},
			setupMockStore: func(*mocks.StoreInterface) {},
			expectError:    true,
		},
		{
			name:           "order_placed_ignored",
			inputEvent:     domain.Event{Type: "order_placed", OrderID: 7, Status: "Order Placed", Items: items},
			setupMockStore: func(*mocks.StoreInterface) {},
			expectError:    true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore, ist)
			err := consumer.Process(context.Background(), testCase.inputEvent)
			if testCase.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// fakeReader replays a fixed batch of messages and then blocks until the
// context is cancelled.
type fakeReader struct {
	messages []kafka.Message
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.messages) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func TestConsumer_StartSkipsMalformedMessages(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockStore.On("MirrorRatingStats", mock.Anything, 3, 4.0, 1).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil).Once()

	reader := &fakeReader{messages: []kafka.Message{
		{Topic: "ratings", Value: []byte(`{"type":`)},
		{Topic: "ratings", Value: []byte(`{"type":"something_else"}`)},
		{Topic: "ratings", Value: []byte(`{"type":"rating_average_updated","menu_item_id":3,"avg_rating":4,"rating_count":1}`)},
	}}

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, mockStore, ist).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}

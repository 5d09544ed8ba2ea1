package notify

import (
	"context"

	"sofcar/pkg/kafka"
	"sofcar/pkg/model"

	"github.com/google/uuid"
)

const sourceService = "booking-api"

// KafkaNotifier publishes notification events to the notification topic.
// The downstream notification worker turns them into customer emails.
type KafkaNotifier struct {
	producer *kafka.Producer
}

func NewKafkaNotifier(producer *kafka.Producer) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) BookingCreated(ctx context.Context, booking *model.Booking) error {
	return n.publishBookingEvent(ctx, EventBookingCreated, booking)
}

func (n *KafkaNotifier) BookingUpdated(ctx context.Context, booking *model.Booking) error {
	return n.publishBookingEvent(ctx, EventBookingUpdated, booking)
}

func (n *KafkaNotifier) publishBookingEvent(ctx context.Context, eventType string, booking *model.Booking) error {
	msg := kafka.NewMessage().
		WithKey(booking.Reference).
		WithValue(booking).
		WithEventType(eventType).
		WithSource(sourceService).
		Build()

	return n.producer.Publish(ctx, msg)
}

func (n *KafkaNotifier) ContactMessage(ctx context.Context, inquiry *ContactInquiry) error {
	msg := kafka.NewMessage().
		WithKey(uuid.New().String()).
		WithValue(inquiry).
		WithEventType(EventContactInquiry).
		WithSource(sourceService).
		Build()

	return n.producer.Publish(ctx, msg)
}

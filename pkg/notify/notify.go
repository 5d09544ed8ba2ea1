package notify

import (
	"context"

	"sofcar/pkg/model"
)

// Event types published to the notification topic.
const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventContactInquiry = "contact.inquiry"
)

// ContactInquiry is a customer question submitted through the public
// contact form.
type ContactInquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// Notifier publishes customer-facing notification events. Delivery is
// best-effort: the booking flow never fails because a notification did.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingUpdated(ctx context.Context, booking *model.Booking) error
	ContactMessage(ctx context.Context, inquiry *ContactInquiry) error
}

// NoopNotifier discards all events. Used when no broker is configured
// and in tests.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) BookingCreated(context.Context, *model.Booking) error { return nil }
func (n *NoopNotifier) BookingUpdated(context.Context, *model.Booking) error { return nil }
func (n *NoopNotifier) ContactMessage(context.Context, *ContactInquiry) error {
	return nil
}

// Package notify publishes booking lifecycle events. Delivery is best
// effort: a failed publish is logged and never fails the operation
// that triggered it.
package notify

import (
	"context"

	"innkeeper/pkg/kafka"
	"innkeeper/pkg/logger"
	"innkeeper/pkg/model"
)

const source = "bookings"

// Event types carried in the message headers.
const (
	EventBookingCreated   = "booking.created"
	EventStatusChanged    = "booking.status_changed"
	EventBookingCancelled = "booking.cancelled"
	EventRoomChanged      = "booking.room_changed"
)

// Notifier is the event surface the booking service depends on.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	StatusChanged(ctx context.Context, booking *model.Booking, from, to model.Status)
	BookingCancelled(ctx context.Context, booking *model.Booking, reason string)
	RoomChanged(ctx context.Context, origin, destination *model.Booking)
}

// KafkaNotifier publishes booking events to the booking-events topic.
type KafkaNotifier struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaNotifier(producer *kafka.Producer, log *logger.Logger) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, log: log}
}

type statusChangedPayload struct {
	BookingID string `json:"booking_id"`
	PartnerID string `json:"partner_id,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to"`
	Reason    string `json:"reason,omitempty"`
}

type roomChangedPayload struct {
	OriginBookingID      string `json:"origin_booking_id"`
	DestinationBookingID string `json:"destination_booking_id"`
	OriginalRoom         string `json:"original_room,omitempty"`
	NewRoom              string `json:"new_room,omitempty"`
}

func (n *KafkaNotifier) BookingCreated(ctx context.Context, booking *model.Booking) {
	n.publish(ctx, EventBookingCreated, booking.ID, statusChangedPayload{
		BookingID: booking.ID,
		PartnerID: booking.PartnerID,
		To:        booking.Status.String(),
	})
}

func (n *KafkaNotifier) StatusChanged(ctx context.Context, booking *model.Booking, from, to model.Status) {
	n.publish(ctx, EventStatusChanged, booking.ID, statusChangedPayload{
		BookingID: booking.ID,
		PartnerID: booking.PartnerID,
		From:      from.String(),
		To:        to.String(),
	})
}

func (n *KafkaNotifier) BookingCancelled(ctx context.Context, booking *model.Booking, reason string) {
	n.publish(ctx, EventBookingCancelled, booking.ID, statusChangedPayload{
		BookingID: booking.ID,
		PartnerID: booking.PartnerID,
		To:        model.StatusCancelled.String(),
		Reason:    reason,
	})
}

func (n *KafkaNotifier) RoomChanged(ctx context.Context, origin, destination *model.Booking) {
	n.publish(ctx, EventRoomChanged, origin.ID, roomChangedPayload{
		OriginBookingID:      origin.ID,
		DestinationBookingID: destination.ID,
		OriginalRoom:         origin.FirstRoomID(),
		NewRoom:              destination.FirstRoomID(),
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, eventType, key string, payload any) {
	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(source).
		Build()

	if err := n.producer.Publish(ctx, msg); err != nil {
		n.log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", key,
			"error", err,
		)
	}
}

// NopNotifier discards all events. Used when Kafka is not configured.
type NopNotifier struct{}

func (NopNotifier) BookingCreated(context.Context, *model.Booking)                {}
func (NopNotifier) StatusChanged(context.Context, *model.Booking, model.Status, model.Status) {
}
func (NopNotifier) BookingCancelled(context.Context, *model.Booking, string) {}
func (NopNotifier) RoomChanged(context.Context, *model.Booking, *model.Booking) {}

package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"staffdir/config"
	"staffdir/infras/kafka"
	"staffdir/infras/otel"
	"staffdir/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TypeBooked           = "booking.created"
	TypeCancelled        = "booking.cancelled"
	TypeCurrentCancelled = "booking.current_cancelled"
	TypeCleared          = "bookings.cleared"
)

const publishTimeout = 5 * time.Second

// BookingEvent describes one committed change to the booking store.
type BookingEvent struct {
	Type         string    `json:"type"`
	RoomID       string    `json:"room_id,omitempty"`
	BookingID    string    `json:"booking_id,omitempty"`
	EmployeeID   string    `json:"employee_id,omitempty"`
	StartTime    string    `json:"start_time,omitempty"`
	EndTime      string    `json:"end_time,omitempty"`
	RoomsUpdated int       `json:"rooms_updated,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Key partitions events by room so a consumer sees each room's changes in order.
func (e BookingEvent) Key() string {
	if e.RoomID == constant.Empty {
		return e.Type
	}

	return e.RoomID
}

// Publisher fans booking events out. Publish never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent)
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, BookingEvent) {}

// New returns a Kafka backed publisher, or one that drops events when Kafka is
// disabled.
func New(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable || client == nil {
		log.Info().Msg("Kafka disabled, booking events are not published")

		return noopPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topic,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event BookingEvent) {
	go p.send(context.WithoutCancel(ctx), event)
}

func (p *kafkaPublisher) send(ctx context.Context, event BookingEvent) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	scope.SetAttribute("event.type", event.Type)

	err := p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.Key(), Value: event})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type", event.Type).Str("room_id", event.RoomID).Msg("failed to publish booking event")
	}
}

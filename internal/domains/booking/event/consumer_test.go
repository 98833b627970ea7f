package event_test

import (
	"encoding/json"
	"staffdir/internal/domains/booking/event"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	published := event.BookingEvent{
		Type:       event.TypeBooked,
		RoomID:     "R-101",
		BookingID:  "b-1",
		StartTime:  "2025-03-01T09:00:00Z",
		EndTime:    "2025-03-01T10:00:00Z",
		OccurredAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(published)
	require.NoError(t, err)

	decoded, err := event.Decode(kafkaGo.Message{Key: []byte(published.Key()), Value: raw})
	require.NoError(t, err)
	assert.Equal(t, published, decoded)

	_, err = event.Decode(kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestLogMessage_ToleratesGarbage(t *testing.T) {
	assert.NotPanics(t, func() {
		event.LogMessage(kafkaGo.Message{Value: []byte("not json")})
		event.LogMessage(kafkaGo.Message{Value: []byte(`{"type":"bookings.cleared","rooms_updated":3}`)})
	})
}

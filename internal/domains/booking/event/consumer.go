package event

import (
	"staffdir/infras/kafka"
	"staffdir/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Decode reads a BookingEvent published by this service.
func Decode(msg kafkaGo.Message) (BookingEvent, error) {
	_, evt, err := kafka.DecodeKafkaMessage[BookingEvent](msg)

	return evt, err
}

// LogMessage is the handler of the event tail: it writes each booking event
// to the log and skips anything that does not decode.
func LogMessage(msg kafkaGo.Message) {
	evt, err := Decode(msg)
	if err != nil {
		log.Warn().Err(err).Int64("offset", msg.Offset).Msg("skipping undecodable booking event")

		return
	}

	log.Info().
		Str("type", evt.Type).
		Str("room_id", evt.RoomID).
		Str("booking_id", evt.BookingID).
		Str("employee_id", evt.EmployeeID).
		Str("start_time", evt.StartTime).
		Str("end_time", evt.EndTime).
		Int("rooms_updated", evt.RoomsUpdated).
		Time("occurred_at", timezone.ToAppTime(evt.OccurredAt)).
		Msg("booking event")
}

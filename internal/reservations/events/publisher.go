package events

import (
	"context"
	"strconv"

	"podquest/pkg/config"
	"podquest/pkg/kafka"
	kafkaconfig "podquest/pkg/kafka/config"
	"podquest/pkg/model"
)

const EventReservationCreated = "reservation.created"

// Publisher emits domain events for committed reservations. Publishing is
// best effort: the scheduler commits first and only logs a failed publish.
type Publisher interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaPublisher(cfg *config.Config, source string) (Publisher, error) {
	producer, err := kafka.NewProducer(kafkaconfig.Load(cfg.KafkaBrokers), cfg.KafkaTopic)
	if err != nil {
		return nil, err
	}

	return &kafkaPublisher{
		producer: producer,
		source:   source,
	}, nil
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, reservation *model.Reservation) error {
	// Keyed by pod so events for one pod keep their commit order.
	msg := kafka.NewMessage().
		WithKey(strconv.Itoa(reservation.PodID)).
		WithValue(reservation).
		WithEventType(EventReservationCreated).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"meeting-point-service/internal/platform/obs"
	"meeting-point-service/internal/ports"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes MeetingPointComputed events as JSON, keyed by kind.
type KafkaPublisher struct {
	writer MessageWriter
}

type meetingPointComputedMessage struct {
	Kind          string    `json:"kind"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	LocationCount int       `json:"locationCount"`
	Mode          string    `json:"mode,omitempty"`
	ComputedAt    time.Time `json:"computedAt"`
}

// NewKafkaPublisher builds a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka publisher: no brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka publisher: topic is empty")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return NewKafkaPublisherWithWriter(w), nil
}

func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ports.MeetingPointComputed) (err error) {
	defer obs.Time(ctx, "events.kafka.Publish")(&err)

	body, err := json.Marshal(meetingPointComputedMessage{
		Kind:          string(event.Kind),
		Lat:           event.Lat,
		Lng:           event.Lng,
		LocationCount: event.LocationCount,
		Mode:          string(event.Mode),
		ComputedAt:    event.ComputedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("publish %s: marshal event: %w", event.Kind, err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Kind),
		Value: body,
	}); err != nil {
		return fmt.Errorf("publish %s: write message: %w", event.Kind, err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ports.MeetingPointComputed) error { return nil }

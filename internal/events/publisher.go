package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// WatermillEventPublisher publishes events through any watermill publisher
type WatermillEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
	consumer  *ActivityLog
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaEventPublisher creates a Kafka-backed publisher using Watermill
func NewKafkaEventPublisher(config PublisherConfig) (*WatermillEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &WatermillEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// NewGoChannelEventPublisher creates an in-process publisher. The returned
// GoChannel can be used to subscribe to the same topic.
func NewGoChannelEventPublisher(config PublisherConfig) (*WatermillEventPublisher, *gochannel.GoChannel) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, watermill.NewSlogLogger(config.Logger))

	return &WatermillEventPublisher{
		publisher: pubSub,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, pubSub
}

// NewInProcessEventPublisher publishes into a GoChannel consumed by an
// ActivityLog on the same topic. Closing the publisher stops the consumer.
func NewInProcessEventPublisher(config PublisherConfig) (*WatermillEventPublisher, *ActivityLog, error) {
	pub, pubSub := NewGoChannelEventPublisher(config)
	activity := NewActivityLog(config.Logger)
	// The subscription lives until the GoChannel is closed.
	if err := activity.Start(context.Background(), pubSub, config.TopicName); err != nil {
		_ = pubSub.Close()
		return nil, nil, err
	}
	pub.consumer = activity
	return pub, activity, nil
}

// Publish marshals the event and publishes it to the configured topic
func (p *WatermillEventPublisher) Publish(ctx context.Context, event *Event) error {
	msg, err := ToMessage(event)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *WatermillEventPublisher) Close() error {
	err := p.publisher.Close()
	if p.consumer != nil {
		p.consumer.Wait()
	}
	return err
}

// ToMessage converts an event to a watermill message with metadata headers
func ToMessage(event *Event) (*message.Message, error) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))
	return msg, nil
}

// MockEventPublisher records events in memory for tests
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []Event
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]Event, 0),
		Logger: logger,
	}
}

// Publish stores the event in memory
func (m *MockEventPublisher) Publish(ctx context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, *event)
	m.Logger.Debug("Mock: Published event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of all published events
func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.Events))
	copy(out, m.Events)
	return out
}

// EventsOfType filters published events by type
func (m *MockEventPublisher) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range m.GetPublishedEvents() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// ClearEvents clears all published events
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = make([]Event, 0)
}

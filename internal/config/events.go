package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/learning-content-service/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled      bool
	Publisher    string // kafka, gochannel or mock
	KafkaBrokers string
	Topic        string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	cfg := events.PublisherConfig{
		KafkaBrokers: c.GetKafkaBrokers(),
		TopicName:    c.Topic,
		Logger:       logger,
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.Topic)
		return events.NewKafkaEventPublisher(cfg)
	case "gochannel":
		logger.Info("Creating in-process event publisher with activity log", "topic", c.Topic)
		pub, _, err := events.NewInProcessEventPublisher(cfg)
		if err != nil {
			return nil, err
		}
		return pub, nil
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

type progressKey struct {
	eventType  EventType
	resourceID uint
}

// ActivityLog consumes the service's own events: every event is logged,
// counted per type, and the latest progress tick per resource is kept.
type ActivityLog struct {
	logger *slog.Logger

	mu       sync.Mutex
	counts   map[EventType]int
	progress map[progressKey]ProgressEvent

	done chan struct{}
}

func NewActivityLog(logger *slog.Logger) *ActivityLog {
	return &ActivityLog{
		logger:   logger,
		counts:   make(map[EventType]int),
		progress: make(map[progressKey]ProgressEvent),
		done:     make(chan struct{}),
	}
}

// Start subscribes to topic and consumes until the subscription closes.
func (a *ActivityLog) Start(ctx context.Context, sub message.Subscriber, topic string) error {
	messages, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	go func() {
		defer close(a.done)
		for msg := range messages {
			if err := a.Handle(msg); err != nil {
				a.logger.Warn("Dropping malformed event", "message_id", msg.UUID, "error", err)
			}
			msg.Ack()
		}
	}()
	return nil
}

// Wait blocks until the consumer loop has exited.
func (a *ActivityLog) Wait() {
	<-a.done
}

type envelope struct {
	ID   string          `json:"id"`
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Handle records one message.
func (a *ActivityLog) Handle(msg *message.Message) error {
	var ev envelope
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts[ev.Type]++

	switch ev.Type {
	case EventMaterialUploadProgress, EventGenerationProgress:
		var p ProgressEvent
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return fmt.Errorf("failed to decode progress: %w", err)
		}
		a.progress[progressKey{ev.Type, p.ResourceID}] = p
		a.logger.Debug("Progress", "event_type", ev.Type, "resource_id", p.ResourceID, "percent", p.Percent)
	default:
		a.logger.Info("Event received", "event_id", ev.ID, "event_type", ev.Type)
	}
	return nil
}

// Count returns how many events of t were consumed.
func (a *ActivityLog) Count(t EventType) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[t]
}

// Progress returns the latest progress tick of t for a resource.
func (a *ActivityLog) Progress(t EventType, resourceID uint) (ProgressEvent, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.progress[progressKey{t, resourceID}]
	return p, ok
}

package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/SAP-F-2025/learning-content-service/internal/events"
)

// publishEvent sends event and logs failures. Publishing never fails the
// operation that produced the event.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "event_type", event.Type, "event_id", event.ID, "error", err)
	}
}

// NormalizeTags trims, lower-cases and de-duplicates tag names, dropping
// empty ones. The result is sorted.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func tagNames(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

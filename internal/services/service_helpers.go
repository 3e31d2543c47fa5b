package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// notFoundAs maps a repository not-found error to the service sentinel and
// wraps everything else with context.
func notFoundAs(err error, sentinel error, action string) error {
	if err == nil {
		return nil
	}
	if repositories.IsNotFoundError(err) {
		return sentinel
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// publishEvent publishes after the surrounding transaction has committed.
// Failures are logged and never surface to the caller.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, eventType events.EventType, data interface{}) {
	if publisher == nil {
		return
	}
	event := events.NewEvent(eventType, data)
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "event_type", eventType, "event_id", event.ID, "error", err)
	}
}

// uploadOptional uploads file when one was supplied and returns "" otherwise.
func uploadOptional(ctx context.Context, media MediaService, file *FileUpload, folder string) (string, error) {
	if file == nil {
		return "", nil
	}
	return media.Upload(ctx, file, folder, repositories.ResourceAuto)
}

package notify

import (
	"context"
	"log/slog"

	"github.com/imasse-dev/browser-ios/internal/domain"
	"github.com/imasse-dev/browser-ios/internal/logger"
)

// Sink is the host's notification-presentation facility. The presenter hands
// each content buffer to it exactly once.
type Sink interface {
	Deliver(ctx context.Context, content *domain.NotificationContent) error
}

// LogSink writes notifications to the log. Used when no Telegram chat is
// configured.
type LogSink struct {
	Log *logger.Logger
}

func (s *LogSink) Deliver(ctx context.Context, content *domain.NotificationContent) error {
	s.Log.Info("notification",
		slog.String("title", content.Title),
		slog.String("body", content.Body),
		slog.Int("attachments", len(content.Attachments)))
	return nil
}

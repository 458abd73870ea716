package lead

import (
	"context"
	"log/slog"

	"github.com/kartabot/kartabot/internal/admin"
	"github.com/kartabot/kartabot/pkg/metrics"
)

// Sender delivers a text message to a Telegram chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Notifier is the dispatch contract both inbound surfaces depend on.
type Notifier interface {
	Dispatch(ctx context.Context, l Lead) (bool, []DeliveryResult)
}

// DeliveryResult records the outcome of one operator notification attempt.
type DeliveryResult struct {
	ChatID int64
	Err    error
}

// Dispatcher fans a formatted lead out to every registered operator chat.
type Dispatcher struct {
	sender   Sender
	registry *admin.Registry
	log      *slog.Logger
}

// NewDispatcher builds a Dispatcher delivering through the given sender.
func NewDispatcher(sender Sender, registry *admin.Registry, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		sender:   sender,
		registry: registry,
		log:      log,
	}
}

// Dispatch formats the lead and attempts delivery to every registered
// operator independently. One recipient failing never blocks the others.
// It reports whether at least one delivery succeeded, so callers can tell
// the user "notified" apart from "no operators registered yet".
func (d *Dispatcher) Dispatch(ctx context.Context, l Lead) (bool, []DeliveryResult) {
	text := l.Format()
	chatIDs := d.registry.ChatIDs()

	results := make([]DeliveryResult, 0, len(chatIDs))
	notified := false

	for _, chatID := range chatIDs {
		err := d.sender.Send(ctx, chatID, text)
		results = append(results, DeliveryResult{ChatID: chatID, Err: err})

		if err != nil {
			d.log.Error("failed to notify operator",
				slog.Int64("chat_id", chatID),
				slog.String("lead_id", l.ID),
				slog.Any("error", err),
			)
			metrics.RecordNotification("error")
			continue
		}

		notified = true
		metrics.RecordNotification("ok")
	}

	status := "delivered"
	if !notified {
		status = "undelivered"
	}
	metrics.RecordLead(string(l.Source), status)

	d.log.Info("lead dispatched",
		slog.String("lead_id", l.ID),
		slog.String("source", string(l.Source)),
		slog.Int("recipients", len(results)),
		slog.Bool("notified", notified),
	)

	return notified, results
}

package notifier

import (
	"context"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/logger"
)

// LogNotifier only records what would have been sent
type LogNotifier struct {
	recipient string
	log       *logger.Logger
}

// NewLogNotifier creates a notifier that logs new listings for recipient
func NewLogNotifier(recipient string, log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.ForNotifier()
	}
	return &LogNotifier{recipient: recipient, log: log.WithField("backend", "log")}
}

// Notify logs the digest
func (n *LogNotifier) Notify(ctx context.Context, listings []listing.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	n.log.Info().
		Str("recipient", n.recipient).
		Int("count", len(listings)).
		Msg("Would send email notification for new listings")
	for _, l := range listings {
		n.log.Info().
			Str("title", l.Title).
			Int("price", l.Price).
			Str("url", l.URL).
			Msg("New listing")
	}
	return nil
}

// Name returns the backend name
func (n *LogNotifier) Name() string {
	return "log"
}

package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sjsage522/propertymonitor/internal/listing"
)

// Notifier delivers a summary of newly found listings to an external channel.
// Delivery is best effort: an empty slice is a no-op and failures are
// returned as notification errors for the caller to log.
type Notifier interface {
	Notify(ctx context.Context, listings []listing.Listing) error
	Name() string
}

// FormatSubject returns the one-line headline for a notification
func FormatSubject(listings []listing.Listing) string {
	if len(listings) == 1 {
		return "1 new listing"
	}
	return fmt.Sprintf("%d new listings", len(listings))
}

// FormatSummary renders listings as a plain-text digest
func FormatSummary(listings []listing.Listing) string {
	var sb strings.Builder
	sb.WriteString(FormatSubject(listings))
	sb.WriteString("\n")
	for _, l := range listings {
		fmt.Fprintf(&sb, "- %s | €%d | %s\n", l.Title, l.Price, l.URL)
	}
	return sb.String()
}

// MultiNotifier fans a notification out to several backends.
// Every backend is attempted; their errors are joined.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier delivering to all of notifiers
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Notify delivers to every backend
func (m *MultiNotifier) Notify(ctx context.Context, listings []listing.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, listings); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Name returns the names of the wrapped backends
func (m *MultiNotifier) Name() string {
	names := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		names = append(names, n.Name())
	}
	return strings.Join(names, "+")
}

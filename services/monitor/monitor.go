package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"sjsage522/propertymonitor/internal"
	"sjsage522/propertymonitor/internal/crawler"
	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/logger"
	"sjsage522/propertymonitor/services/notifier"
	"sjsage522/propertymonitor/services/store"
)

// ErrCycleInProgress is returned when a cycle is requested while another one runs
var ErrCycleInProgress = errors.New("monitor: cycle already in progress")

// Options configures a Monitor
type Options struct {
	SourceURL string
	Criteria  listing.Criteria
	Interval  time.Duration
}

// CycleReport summarizes one fetch, extract, filter, dedup and notify pass
type CycleReport struct {
	CycleID     string
	StartedAt   time.Time
	Duration    time.Duration
	FetchFailed bool
	Extracted   int
	Failures    int
	Matched     int
	New         []listing.Listing
	Notified    bool
}

// Monitor runs monitoring cycles against a single marketplace source
type Monitor struct {
	fetcher   crawler.Fetcher
	extractor crawler.Extractor
	store     store.Store
	notifier  notifier.Notifier
	opts      Options
	log       *logger.Logger
	running   sync.Mutex
}

// NewMonitor creates a new monitor
func NewMonitor(deps internal.Dependencies, fetcher crawler.Fetcher, extractor crawler.Extractor, opts Options) *Monitor {
	return &Monitor{
		fetcher:   fetcher,
		extractor: extractor,
		store:     deps.Store,
		notifier:  deps.Notifier,
		opts:      opts,
		log:       logger.ForMonitor(),
	}
}

// WithLogger replaces the monitor's logger
func (m *Monitor) WithLogger(log *logger.Logger) *Monitor {
	m.log = log
	return m
}

// Start runs a cycle immediately and then once per interval until ctx is done.
// Cycles never overlap; a slow cycle delays the next tick.
func (m *Monitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	for {
		m.runScheduled(ctx)

		select {
		case <-ctx.Done():
			m.log.Info().Msg("Monitor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (m *Monitor) runScheduled(ctx context.Context) {
	report, err := m.RunCycle(ctx)
	if err != nil {
		m.log.Error().
			Err(err).
			Str("cycle_id", report.CycleID).
			Int("new", len(report.New)).
			Msg("Monitoring cycle aborted")
	}
}

// RunCycle performs one monitoring cycle. Fetch, extraction and notification
// failures are logged and absorbed; only a store failure is returned, after
// the listings already recorded in this cycle have been notified.
func (m *Monitor) RunCycle(ctx context.Context) (report CycleReport, storeErr error) {
	report.CycleID = uuid.NewString()
	report.StartedAt = time.Now()
	if !m.running.TryLock() {
		return report, ErrCycleInProgress
	}
	defer m.running.Unlock()
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	log := m.log.WithField("cycle_id", report.CycleID)
	log.Info().Str("url", m.opts.SourceURL).Msg("Starting property monitoring cycle")

	body, err := m.fetcher.Fetch(ctx, m.opts.SourceURL)
	if err != nil {
		report.FetchFailed = true
		log.Warn().Err(err).Msg("Fetch failed, no listings this cycle")
		return report, nil
	}

	batch := m.extractor.Extract(body)
	candidates := batch.Listings()
	report.Extracted = len(candidates)
	report.Failures = len(batch.Failures())

	matched := listing.Filter(candidates, m.opts.Criteria)
	report.Matched = len(matched)
	log.Info().
		Int("extracted", report.Extracted).
		Int("dropped", report.Failures).
		Int("matched", report.Matched).
		Msg("Found matching listings")

	for _, l := range matched {
		inserted, err := m.store.InsertIfAbsent(ctx, l)
		if err != nil {
			storeErr = err
			break
		}
		if inserted {
			l.IsNew = true
			report.New = append(report.New, l)
		}
	}

	if len(report.New) > 0 {
		log.Info().Int("new", len(report.New)).Msg("Found new listings")
		if err := m.notifier.Notify(ctx, report.New); err != nil {
			log.Error().Err(err).Str("notifier", m.notifier.Name()).Msg("Failed to deliver notification")
		} else {
			report.Notified = true
		}
	} else if storeErr == nil {
		log.Info().Msg("No new listings found")
	}

	return report, storeErr
}

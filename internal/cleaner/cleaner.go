// Package cleaner turns the raw NOAA earthquake CSV into the cleaned CSV
// artifact consumed by the dashboard. A run is single-pass and all-or-nothing:
// read everything, validate and normalize each row, sort, then atomically
// replace the output file.
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/observability"
)

// Source yields raw records from the input dataset.
type Source interface {
	Records() ([]domain.RawRecord, error)
}

// Sink persists cleaned records as the output artifact.
type Sink interface {
	Write(quakes []domain.Quake) error
}

// Publisher streams cleaned records to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, quakes []domain.Quake) error
}

// Report summarizes a clean run.
type Report struct {
	RowsRead  int
	RowsKept  int
	Dropped   map[string]int
	Published int
	Duration  time.Duration
}

// Cleaner orchestrates the read-validate-write pipeline.
type Cleaner struct {
	source    Source
	sink      Sink
	geocoder  domain.Geocoder // optional
	publisher Publisher       // optional
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// New creates a Cleaner. geocoder and publisher may be nil to disable the
// corresponding enrichment.
func New(source Source, sink Sink, geocoder domain.Geocoder, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Cleaner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cleaner{
		source:    source,
		sink:      sink,
		geocoder:  geocoder,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// Run executes one clean pass. On error no output is written and any previous
// artifact is left untouched. Publish failures are reported in the log and
// metrics but do not fail the run: the artifact is already durable by then.
func (c *Cleaner) Run(ctx context.Context) (Report, error) {
	start := c.clock.Now()
	report := Report{Dropped: map[string]int{}}

	records, err := c.source.Records()
	if err != nil {
		return report, err
	}
	report.RowsRead = len(records)
	c.metrics.RowsRead.Add(float64(len(records)))

	quakes := make([]domain.Quake, 0, len(records))
	for _, raw := range records {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("clean interrupted: %w", err)
		}

		q, err := domain.CleanRecord(raw)
		if err != nil {
			var dropErr *domain.DropError
			if !errors.As(err, &dropErr) {
				return report, err
			}
			report.Dropped[dropErr.Reason]++
			c.metrics.RowsDropped.WithLabelValues(dropErr.Reason).Inc()
			c.logger.Debug("row dropped", "line", dropErr.Line, "reason", dropErr.Reason)
			continue
		}

		q = domain.EnrichLocationName(ctx, q, c.geocoder, c.logger)
		quakes = append(quakes, q)
	}

	// Stable output order keeps reruns byte-identical.
	sort.Slice(quakes, func(i, j int) bool {
		if !quakes[i].Date.Equal(quakes[j].Date) {
			return quakes[i].Date.Before(quakes[j].Date)
		}
		return quakes[i].EventID < quakes[j].EventID
	})

	if err := c.sink.Write(quakes); err != nil {
		return report, fmt.Errorf("write cleaned dataset: %w", err)
	}
	report.RowsKept = len(quakes)
	c.metrics.RowsKept.Add(float64(len(quakes)))

	if c.publisher != nil {
		if err := c.publisher.Publish(ctx, quakes); err != nil {
			c.logger.Error("publish cleaned records failed", "error", err, "rows", len(quakes))
		} else {
			report.Published = len(quakes)
			c.metrics.RowsPublished.Add(float64(len(quakes)))
		}
	}

	report.Duration = c.clock.Now().Sub(start)
	c.metrics.CleanDuration.Observe(report.Duration.Seconds())

	c.logger.Info("clean run complete",
		"rows_read", report.RowsRead,
		"rows_kept", report.RowsKept,
		"rows_dropped", report.RowsRead-report.RowsKept,
		"published", report.Published,
		"duration", report.Duration,
	)

	return report, nil
}

// Package dataset loads the cleaned CSV artifact for the dashboard.
package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/cleaner"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/observability"
)

// ErrCleanedFileMissing indicates the cleaned artifact has not been produced
// yet. Callers translate it into a "run the cleaner first" response.
var ErrCleanedFileMissing = errors.New("cleaned dataset not found, run the cleaner first")

// Loader reads the cleaned dataset from disk. It re-reads the file on every
// Load so a fresh clean run is picked up without restarting the server; the
// atomic rename on the writer side guarantees a consistent file.
type Loader struct {
	path    string
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewLoader creates a Loader for the cleaned artifact at path.
func NewLoader(path string, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Loader {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loader{path: path, logger: logger, metrics: metrics, clock: clock}
}

// Load reads and parses the cleaned dataset.
func (l *Loader) Load() ([]domain.Quake, error) {
	start := l.clock.Now()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.metrics.DatasetLoads.WithLabelValues("missing").Inc()
			return nil, fmt.Errorf("%w: %s", ErrCleanedFileMissing, l.path)
		}
		l.metrics.DatasetLoads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read cleaned dataset: %w", err)
	}

	quakes, err := cleaner.ParseCleaned(data)
	if err != nil {
		l.metrics.DatasetLoads.WithLabelValues("error").Inc()
		return nil, err
	}

	l.metrics.DatasetLoads.WithLabelValues("success").Inc()
	l.metrics.DatasetLoadDuration.Observe(l.clock.Now().Sub(start).Seconds())
	l.metrics.DatasetRows.Set(float64(len(quakes)))
	l.logger.Debug("dataset loaded", "rows", len(quakes))
	return quakes, nil
}

// Check reports whether the cleaned artifact exists, for readiness probes.
func (l *Loader) Check() error {
	if _, err := os.Stat(l.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrCleanedFileMissing, l.path)
		}
		return fmt.Errorf("stat cleaned dataset: %w", err)
	}
	return nil
}

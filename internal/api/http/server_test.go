package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/cleaner"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/config"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/dashboard"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/dataset"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/observability"
)

func testQuakes() []domain.Quake {
	return []domain.Quake{
		{
			EventID: "eq-chile", Date: time.Date(1960, 5, 22, 0, 0, 0, 0, time.UTC), Year: 1960,
			LocationName: "CHILE: VALDIVIA", Latitude: -38.14, Longitude: -73.41,
			Magnitude: 9.5, DepthKm: 25, Deaths: 1655, Injuries: 3000,
			TotalCasualties: 4655, TsunamiFlag: 1,
		},
		{
			EventID: "eq-northridge", Date: time.Date(1994, 1, 17, 0, 0, 0, 0, time.UTC), Year: 1994,
			LocationName: "USA: NORTHRIDGE", Latitude: 34.213, Longitude: -118.537,
			Magnitude: 6.7, DepthKm: 18, Deaths: 60, Injuries: 7000,
			TotalCasualties: 7060, TsunamiFlag: 0,
		},
		{
			EventID: "eq-quiet", Date: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), Year: 2020,
			LocationName: "JAPAN: OFF COAST", Latitude: 35, Longitude: 140,
			Magnitude: 6.4, DepthKm: 10, Deaths: 0, Injuries: 0,
			TotalCasualties: 0, TsunamiFlag: 0,
		},
	}
}

// newTestServer writes the given records as a cleaned artifact and builds a
// server reading from it. With a nil slice no artifact is written at all.
func newTestServer(t *testing.T, quakes []domain.Quake) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clean.csv")
	if quakes != nil {
		require.NoError(t, cleaner.NewAtomicCSVSink(path).Write(quakes))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	loader := dataset.NewLoader(path, logger, metrics, nil)
	return New(&config.Config{HTTPAddr: ":0"}, loader, metrics, logger)
}

func get(t *testing.T, s *Server, target string) *http.Response {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	resp := get(t, newTestServer(t, testQuakes()), "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadyz(t *testing.T) {
	t.Run("ready once artifact exists", func(t *testing.T) {
		resp := get(t, newTestServer(t, testQuakes()), "/readyz")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unavailable without artifact", func(t *testing.T) {
		resp := get(t, newTestServer(t, nil), "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestIndex(t *testing.T) {
	resp := get(t, newTestServer(t, testQuakes()), "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "MCI Simulation Dashboard")
}

func TestMetricsEndpoint(t *testing.T) {
	resp := get(t, newTestServer(t, testQuakes()), "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSummary(t *testing.T) {
	s := newTestServer(t, testQuakes())

	t.Run("unfiltered", func(t *testing.T) {
		resp := get(t, s, "/api/v1/summary")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summary dashboard.Summary
		decode(t, resp, &summary)
		assert.Equal(t, 3, summary.Events)
		assert.Equal(t, 11715, summary.TotalCasualties)
		require.NotNil(t, summary.Peak)
		assert.Equal(t, "eq-northridge", summary.Peak.EventID)
	})

	t.Run("filtered", func(t *testing.T) {
		resp := get(t, s, "/api/v1/summary?magnitude=6.5&casualties_only=true")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summary dashboard.Summary
		decode(t, resp, &summary)
		assert.Equal(t, 1, summary.Events)
		require.NotNil(t, summary.Peak)
		assert.Equal(t, "eq-northridge", summary.Peak.EventID)
	})

	t.Run("metric selects peak", func(t *testing.T) {
		resp := get(t, s, "/api/v1/summary?metric=deaths")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summary dashboard.Summary
		decode(t, resp, &summary)
		require.NotNil(t, summary.Peak)
		assert.Equal(t, "eq-chile", summary.Peak.EventID)
	})
}

func TestSummary_MissingArtifact(t *testing.T) {
	resp := get(t, newTestServer(t, nil), "/api/v1/summary")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Contains(t, body["message"], "run the cleaner first")
}

func TestSummary_EmptyArtifact(t *testing.T) {
	resp := get(t, newTestServer(t, []domain.Quake{}), "/api/v1/summary")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary dashboard.Summary
	decode(t, resp, &summary)
	assert.Zero(t, summary.Events)
	assert.Nil(t, summary.Peak)
}

func TestValidation(t *testing.T) {
	s := newTestServer(t, testQuakes())

	tests := []struct {
		name   string
		target string
	}{
		{"bad metric", "/api/v1/summary?metric=bogus"},
		{"bad category", "/api/v1/map?category=volcano"},
		{"bad severity", "/api/v1/quakes?severity=catastrophic"},
		{"bad magnitude", "/api/v1/trend?magnitude=abc"},
		{"magnitude out of range", "/api/v1/trend?magnitude=99"},
		{"bad year", "/api/v1/summary?year_from=abc"},
		{"inverted year span", "/api/v1/summary?year_from=2000&year_to=1990"},
		{"bad casualties_only", "/api/v1/export?casualties_only=maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, s, tt.target)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestTrend(t *testing.T) {
	resp := get(t, newTestServer(t, testQuakes()), "/api/v1/trend?metric=deaths")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Metric string                `json:"metric"`
		Trend  []dashboard.YearValue `json:"trend"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "deaths", body.Metric)
	assert.Equal(t, []dashboard.YearValue{
		{Year: 1960, Value: 1655},
		{Year: 1994, Value: 60},
		{Year: 2020, Value: 0},
	}, body.Trend)
}

func TestMix(t *testing.T) {
	resp := get(t, newTestServer(t, testQuakes()), "/api/v1/mix")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Mix      dashboard.Mix             `json:"mix"`
		Severity []dashboard.SeverityCount `json:"severity"`
	}
	decode(t, resp, &body)
	assert.Equal(t, dashboard.Mix{Deaths: 1715, Injuries: 10000}, body.Mix)

	total := 0
	for _, sc := range body.Severity {
		total += sc.Count
	}
	assert.Equal(t, 3, total)
}

func TestMap(t *testing.T) {
	resp := get(t, newTestServer(t, testQuakes()), "/api/v1/map?category=quake_tsunami")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Points []dashboard.MapPoint `json:"points"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Points, 1)
	assert.Equal(t, "eq-chile", body.Points[0].EventID)
	assert.Equal(t, domain.SeveritySevere, body.Points[0].Severity)
}

func TestQuakesTable(t *testing.T) {
	resp := get(t, newTestServer(t, testQuakes()), "/api/v1/quakes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total int             `json:"total"`
		Rows  []dashboard.Row `json:"rows"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Rows, 3)
	// Date descending.
	assert.Equal(t, "eq-quiet", body.Rows[0].EventID)
	assert.Equal(t, "eq-chile", body.Rows[2].EventID)
}

func TestExport(t *testing.T) {
	resp := get(t, newTestServer(t, testQuakes()), "/api/v1/export?casualties_only=true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "earthquakes_filtered.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	// Header plus the two events with casualties.
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "severity")
	assert.Contains(t, string(body), "eq-chile")
	assert.NotContains(t, string(body), "eq-quiet")
}

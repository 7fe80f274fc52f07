package dashboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/dashboard"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

func quake(id string, year int, magnitude float64, deaths, injuries, tsunami int) domain.Quake {
	return domain.Quake{
		EventID:         id,
		Date:            time.Date(year, 6, 15, 0, 0, 0, 0, time.UTC),
		Year:            year,
		Magnitude:       magnitude,
		Deaths:          deaths,
		Injuries:        injuries,
		TotalCasualties: deaths + injuries,
		TsunamiFlag:     tsunami,
	}
}

func fixture() []domain.Quake {
	return []domain.Quake{
		quake("a", 1960, 9.5, 1655, 3000, 1),  // severe, tsunami
		quake("b", 1994, 6.7, 60, 7000, 0),    // severe
		quake("c", 2011, 9.1, 18434, 6157, 1), // severe, tsunami
		quake("d", 2020, 5.1, 0, 3, 0),        // minor
		quake("e", 2021, 6.5, 0, 0, 0),        // minor, no casualties
		quake("f", 1999, 6.4, 120, 30, 0),     // moderate
	}
}

func ids(quakes []domain.Quake) []string {
	out := make([]string, len(quakes))
	for i, q := range quakes {
		out[i] = q.EventID
	}
	return out
}

func TestFilter(t *testing.T) {
	mag := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		params dashboard.Params
		want   []string
	}{
		{
			name:   "no filters keeps everything",
			params: dashboard.Params{},
			want:   []string{"a", "b", "c", "d", "e", "f"},
		},
		{
			name:   "magnitude window is inclusive",
			params: dashboard.Params{Magnitude: mag(6.5)},
			want:   []string{"b", "e", "f"},
		},
		{
			name:   "magnitude window excludes outside band",
			params: dashboard.Params{Magnitude: mag(9.3)},
			want:   []string{"a", "c"},
		},
		{
			name:   "year span",
			params: dashboard.Params{YearFrom: 1990, YearTo: 2011},
			want:   []string{"b", "c", "f"},
		},
		{
			name:   "year from only",
			params: dashboard.Params{YearFrom: 2011},
			want:   []string{"c", "d", "e"},
		},
		{
			name:   "severity subset",
			params: dashboard.Params{Severities: []string{domain.SeveritySevere}},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "severity pair",
			params: dashboard.Params{Severities: []string{domain.SeverityModerate, domain.SeverityMinor}},
			want:   []string{"d", "e", "f"},
		},
		{
			name:   "casualties only",
			params: dashboard.Params{CasualtiesOnly: true},
			want:   []string{"a", "b", "c", "d", "f"},
		},
		{
			name:   "quake only category",
			params: dashboard.Params{Category: dashboard.CategoryQuakeOnly},
			want:   []string{"b", "d", "e", "f"},
		},
		{
			name:   "quake and tsunami category",
			params: dashboard.Params{Category: dashboard.CategoryQuakeTsunami},
			want:   []string{"a", "c"},
		},
		{
			name:   "all category is a no-op",
			params: dashboard.Params{Category: dashboard.CategoryAll},
			want:   []string{"a", "b", "c", "d", "e", "f"},
		},
		{
			name: "filters compose",
			params: dashboard.Params{
				YearFrom:       1990,
				CasualtiesOnly: true,
				Category:       dashboard.CategoryQuakeOnly,
			},
			want: []string{"b", "d", "f"},
		},
		{
			name: "empty result",
			params: dashboard.Params{
				Magnitude: mag(6.5),
				Category:  dashboard.CategoryQuakeTsunami,
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dashboard.Filter(fixture(), tt.params)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	got := dashboard.Filter(fixture(), dashboard.Params{CasualtiesOnly: true})
	require.Equal(t, []string{"a", "b", "c", "d", "f"}, ids(got))
}

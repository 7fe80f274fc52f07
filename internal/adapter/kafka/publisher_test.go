package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	cleanedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	q := domain.Quake{
		EventID:         "eq-abc123",
		Date:            time.Date(2011, 3, 11, 0, 0, 0, 0, time.UTC),
		Year:            2011,
		LocationName:    "JAPAN: HONSHU",
		Latitude:        38.297,
		Longitude:       142.373,
		Magnitude:       9.1,
		DepthKm:         29,
		Deaths:          18434,
		Injuries:        6157,
		TotalCasualties: 24591,
		TsunamiFlag:     1,
	}

	msg, err := serializeToMessage(q, cleanedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("eq-abc123"), msg.Key)
	assert.Contains(t, string(msg.Value), `"event_id":"eq-abc123"`)
	assert.Contains(t, string(msg.Value), `"total_casualties":24591`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "severity", msg.Headers[0].Key)
	assert.Equal(t, []byte(domain.SeveritySevere), msg.Headers[0].Value)
	assert.Equal(t, "cleaned_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-08-28T12:00:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_MinorSeverity(t *testing.T) {
	q := domain.Quake{EventID: "eq-minor", TotalCasualties: 3}

	msg, err := serializeToMessage(q, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []byte(domain.SeverityMinor), msg.Headers[0].Value)
}

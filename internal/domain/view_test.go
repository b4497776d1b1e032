package domain

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func jsonKeys(t *testing.T, v any) map[string]jsoniter.RawMessage {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	keys := map[string]jsoniter.RawMessage{}
	require.NoError(t, json.Unmarshal(raw, &keys))
	return keys
}

func TestViewsUseCamelCaseKeys(t *testing.T) {
	days := 2

	t.Run("timeline", func(t *testing.T) {
		keys := jsonKeys(t, Timeline{
			LeadID:        "lead-1",
			StatusHistory: []StatusHistoryEntry{{Status: LeadStatusProspect, EnteredAt: time.Unix(0, 0).UTC(), DurationDays: &days}},
		})
		assert.Contains(t, keys, "leadId")
		assert.Contains(t, keys, "statusHistory")
		assert.Contains(t, keys, "activities")

		entry := jsonKeys(t, StatusHistoryEntry{Status: LeadStatusProspect, DurationDays: &days})
		assert.Contains(t, entry, "timestamp")
		assert.Contains(t, entry, "duration")
	})

	t.Run("status atual não tem duração", func(t *testing.T) {
		entry := jsonKeys(t, StatusHistoryEntry{Status: LeadStatusReplied})
		assert.NotContains(t, entry, "duration")
	})

	t.Run("pontuação", func(t *testing.T) {
		keys := jsonKeys(t, ScoreResult{LeadID: "lead-1"})
		assert.Contains(t, keys, "leadId")
		assert.Contains(t, keys, "breakdown")

		breakdown := jsonKeys(t, ScoreBreakdown{})
		assert.Contains(t, breakdown, "businessType")
		assert.Contains(t, breakdown, "dataQuality")
	})
}

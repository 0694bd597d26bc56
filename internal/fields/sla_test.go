package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSLAObject(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		found  bool
	}{
		{
			name: "ongoingCycle under unknown custom field",
			record: map[string]any{
				"fields": map[string]any{
					"customfield_10021": map[string]any{
						"ongoingCycle": map[string]any{"breached": false},
					},
				},
			},
			found: true,
		},
		{
			name: "bare remainingTime millis shape",
			record: map[string]any{
				"fields": map[string]any{
					"customfield_9001": map[string]any{
						"remainingTime": map[string]any{"millis": 120000.0},
					},
				},
			},
			found: true,
		},
		{
			name: "one level into field arrays",
			record: map[string]any{
				"fields": []any{
					map[string]any{"name": "Time to resolution", "value": map[string]any{
						"ongoingCycle": map[string]any{"remainingTime": map[string]any{"millis": 5000.0}},
					}},
				},
			},
			found: true,
		},
		{
			name: "ongoingCycle without breached or remainingTime is not SLA shaped",
			record: map[string]any{
				"fields": map[string]any{
					"customfield_1": map[string]any{"ongoingCycle": map[string]any{"goalDuration": "4h"}},
				},
			},
			found: false,
		},
		{
			name:   "no fields at all",
			record: map[string]any{"summary": "plain"},
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FindSLAObject(tt.record)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestFindSLAObject_DeterministicScanOrder(t *testing.T) {
	// Two SLA-shaped candidates: the lexically-first field key must win on
	// every call, regardless of map iteration order.
	record := map[string]any{
		"fields": map[string]any{
			"customfield_b": map[string]any{
				"ongoingCycle": map[string]any{"breached": true},
			},
			"customfield_a": map[string]any{
				"ongoingCycle": map[string]any{"breached": false},
			},
		},
	}

	for i := 0; i < 20; i++ {
		obj, ok := FindSLAObject(record)
		require.True(t, ok)
		cycle := obj["ongoingCycle"].(map[string]any)
		assert.Equal(t, false, cycle["breached"])
	}
}

func TestRemainingMillis(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   int64
		ok     bool
	}{
		{
			name:   "direct field preferred over located object",
			record: map[string]any{
				"remainingTime": 60000.0,
				"fields": map[string]any{
					"customfield_1": map[string]any{
						"remainingTime": map[string]any{"millis": 999.0},
					},
				},
			},
			want: 60000,
			ok:   true,
		},
		{
			name: "direct field with human name and millis wrapper",
			record: map[string]any{
				"fields": map[string]any{
					"Remaining Time": map[string]any{"millis": "2500"},
				},
			},
			want: 2500,
			ok:   true,
		},
		{
			name: "negative millis from scanned custom field",
			record: map[string]any{
				"fields": map[string]any{
					"customfield_10021": map[string]any{
						"remainingTime": map[string]any{"millis": -500000.0},
					},
				},
			},
			want: -500000,
			ok:   true,
		},
		{
			name: "ongoingCycle remainingTime",
			record: map[string]any{
				"fields": map[string]any{
					"customfield_2": map[string]any{
						"ongoingCycle": map[string]any{
							"remainingTime": map[string]any{"millis": 1000.0},
						},
					},
				},
			},
			want: 1000,
			ok:   true,
		},
		{
			name: "numeric string coerces",
			record: map[string]any{
				"remainingTime": "1800000",
			},
			want: 1800000,
			ok:   true,
		},
		{
			name: "invalid number reports absent",
			record: map[string]any{
				"remainingTime": "soon",
			},
			ok: false,
		},
		{
			name:   "no SLA data",
			record: map[string]any{"fields": map[string]any{"summary": "x"}},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, ok := RemainingMillis(tt.record)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, ms)
			}
		})
	}
}

func TestBreached(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   bool
	}{
		{
			name: "explicit breached true wins over positive remaining",
			record: map[string]any{
				"fields": map[string]any{
					"customfield_1": map[string]any{
						"ongoingCycle": map[string]any{
							"breached":      true,
							"remainingTime": map[string]any{"millis": 50000.0},
						},
					},
				},
			},
			want: true,
		},
		{
			name: "explicit breached false wins over negative remaining",
			record: map[string]any{
				"fields": map[string]any{
					"customfield_1": map[string]any{
						"ongoingCycle": map[string]any{
							"breached":      false,
							"remainingTime": map[string]any{"millis": -1.0},
						},
					},
				},
			},
			want: false,
		},
		{
			name: "negative remaining implies breached",
			record: map[string]any{
				"fields": map[string]any{
					"customfield_1": map[string]any{
						"remainingTime": map[string]any{"millis": -500000.0},
					},
				},
			},
			want: true,
		},
		{
			name: "positive remaining is not breached",
			record: map[string]any{
				"remainingTime": 1000.0,
			},
			want: false,
		},
		{
			name:   "no SLA data is not breached",
			record: map[string]any{},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Breached(tt.record))
		})
	}
}

package gridmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestIndex_Increasing(t *testing.T) {
	t.Parallel()

	axis := Axis{0, 10, 20, 30}

	tests := []struct {
		name  string
		value float64
		want  int
	}{
		{"exact match", 20, 2},
		{"closer to lower neighbour", 12, 1},
		{"closer to upper neighbour", 18, 2},
		{"below range clamps to first", -5, 0},
		{"above range clamps to last", 100, 3},
		{"first sample", 0, 0},
		{"last sample", 30, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NearestIndex(axis, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Equidistant queries must resolve to the lower index. This is a pinned
// behaviour: overlay placement depends on it being deterministic.
func TestNearestIndex_TieBreakLowerIndex(t *testing.T) {
	t.Parallel()

	got, err := NearestIndex(Axis{0, 10, 20, 30}, 15)
	require.NoError(t, err)
	assert.Equal(t, 1, got, "midpoint between 10 and 20 should pick index 1")

	got, err = NearestIndex(Axis{0, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestNearestIndex_Decreasing(t *testing.T) {
	t.Parallel()

	axis := Axis{30, 20, 10, 0}

	got, err := NearestIndex(axis, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, got, "12 is nearest to sample 10 at index 2")

	got, err = NearestIndex(axis, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = NearestIndex(axis, -100)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestNearestIndex_SingleSample(t *testing.T) {
	t.Parallel()

	got, err := NearestIndex(Axis{7.5}, -1000)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestNearestIndex_EmptyAxis(t *testing.T) {
	t.Parallel()

	_, err := NearestIndex(Axis{}, 1)
	var axisErr *InvalidAxisError
	require.ErrorAs(t, err, &axisErr)
}

func TestNearestIndex_MatchesLinearScan(t *testing.T) {
	t.Parallel()

	// Non-uniform spacing: the binary narrowing must agree with a
	// brute-force scan on every query.
	axis := Axis{-12.5, -3, 0, 0.5, 4, 9, 27, 80}
	for q := -20.0; q <= 90; q += 0.37 {
		got, err := NearestIndex(axis, q)
		require.NoError(t, err)

		best, bestDist := 0, math.Abs(axis[0]-q)
		for i, v := range axis {
			if d := math.Abs(v - q); d < bestDist {
				best, bestDist = i, d
			}
		}
		assert.Equalf(t, best, got, "query %v", q)
	}
}

func TestAxisValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		axis    Axis
		wantErr bool
	}{
		{"increasing", Axis{0, 1, 2}, false},
		{"decreasing", Axis{2, 1, 0}, false},
		{"single sample", Axis{5}, false},
		{"empty", Axis{}, true},
		{"duplicate", Axis{0, 1, 1, 2}, true},
		{"not monotonic", Axis{0, 2, 1}, true},
		{"nan sample", Axis{0, math.NaN(), 2}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.axis.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Components(t *testing.T) {
	tests := []struct {
		name        string
		rating      float64
		reviewCount int
		distanceKm  float64
		want        float64
	}{
		{"perfect nearby", 5, 100, 0, 100},
		{"worst case", 0, 0, 10, 0},
		{"rating only", 4, 0, 10, 40},
		{"reviews saturate", 0, 500, 10, 30},
		{"half reviews", 0, 50, 10, 15},
		{"distance decay", 0, 0, 3, 14},
		{"beyond decay range", 5, 100, 25, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.rating, tt.reviewCount, tt.distanceKm), 1e-9)
		})
	}
}

func TestScore_WorkedScenario(t *testing.T) {
	// Place 11.1 km away with rating 4.5 and 200 reviews:
	// 45 rating points + 30 saturated review points + 0 distance points.
	got := Score(4.5, 200, 11.1)
	assert.InDelta(t, 75, got, 1e-9)
}

func TestScore_Bounds(t *testing.T) {
	for _, rating := range []float64{0, 1, 2.5, 4.9, 5} {
		for _, reviews := range []int{0, 1, 99, 100, 10000} {
			for _, dist := range []float64{0, 0.5, 9.99, 10, 500} {
				s := Score(rating, reviews, dist)
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 100.0)
			}
		}
	}
}

func TestScore_MonotonicInRating(t *testing.T) {
	prev := -1.0
	for _, rating := range []float64{0, 1, 2, 3, 4, 5} {
		s := Score(rating, 50, 5)
		assert.Greater(t, s, prev)
		prev = s
	}
}

func TestScore_MonotonicInDistance(t *testing.T) {
	prev := 101.0
	for _, dist := range []float64{0, 2, 5, 9, 10, 20} {
		s := Score(4, 50, dist)
		assert.LessOrEqual(t, s, prev)
		prev = s
	}
}

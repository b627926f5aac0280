package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityFromDistance(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"identical vectors", 0, 1},
		{"orthogonal vectors", 1, 0},
		{"opposite vectors clamp to zero", 2, 0},
		{"partial overlap", 0.25, 0.75},
		{"negative distance clamps to one", -0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, similarityFromDistance(tt.distance), 1e-9)
		})
	}
}

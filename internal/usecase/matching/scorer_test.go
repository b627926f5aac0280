package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	t.Run("empty inputs score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Jaccard(nil, []string{"chess"}))
		assert.Equal(t, 0.0, Jaccard([]string{"chess"}, nil))
		assert.Equal(t, 0.0, Jaccard(nil, nil))
	})

	t.Run("identical singletons score one", func(t *testing.T) {
		assert.Equal(t, 1.0, Jaccard([]string{"x"}, []string{"x"}))
	})

	t.Run("partial overlap", func(t *testing.T) {
		// {chess, art} vs {chess, music}: one shared of three total.
		got := Jaccard([]string{"chess", "art"}, []string{"chess", "music"})
		assert.InDelta(t, 1.0/3.0, got, 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := []string{"chess", "art", "music"}
		b := []string{"music", "hiking"}
		assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
	})

	t.Run("case folds and trims before set construction", func(t *testing.T) {
		assert.Equal(t, 1.0, Jaccard([]string{" Chess "}, []string{"chess"}))
	})

	t.Run("disjoint sets score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Jaccard([]string{"chess"}, []string{"art"}))
	})
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 0.333, Round3(1.0/3.0))
	assert.Equal(t, 0.667, Round3(2.0/3.0))
	assert.Equal(t, 1.0, Round3(1))
	assert.Equal(t, 0.0, Round3(0))
}

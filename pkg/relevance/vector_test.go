package relevance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorize_Weights(t *testing.T) {
	df := map[string]int{"heaven": 2, "stairway": 1, "to": 3}
	vec := Vectorize(TermCounts{"heaven": 1, "stairway": 2, "to": 1}, df, 3)

	assert.InDelta(t, math.Log(3.0/2.0), vec["heaven"], 1e-12)
	// tf 为原始次数，不做长度归一化
	assert.InDelta(t, 2*math.Log(3.0), vec["stairway"], 1e-12)
}

func TestVectorize_TermInEveryDocumentHasZeroWeight(t *testing.T) {
	c := NewCorpus(docs("love me do", "all you need is love"), "love")

	for i := 0; i < c.N(); i++ {
		assert.Zero(t, c.Vector(i)["love"], "document %d", i)
	}
}

func TestVectorize_Deterministic(t *testing.T) {
	c := NewCorpus(docs("yellow submarine", "yellow submarine", "let it be"), "yellow")

	assert.Equal(t, c.Vector(0), c.Vector(1))
	assert.Equal(t, c.Vector(0), c.Vector(0))
}

func TestVectorize_SkipsUnknownTerms(t *testing.T) {
	vec := Vectorize(TermCounts{"ghost": 4}, map[string]int{}, 2)
	assert.Empty(t, vec)
}

func TestVectorize_EmptyCounts(t *testing.T) {
	vec := Vectorize(TermCounts{}, map[string]int{"a": 1}, 2)
	assert.Empty(t, vec)
	assert.Zero(t, vec.Norm())
}

func TestVector_DotAndNorm(t *testing.T) {
	a := Vector{"x": 3, "y": 4}
	b := Vector{"y": 2, "z": 7}

	assert.InDelta(t, 5.0, a.Norm(), 1e-12)
	assert.InDelta(t, 8.0, a.Dot(b), 1e-12)
	assert.InDelta(t, 8.0, b.Dot(a), 1e-12)
}

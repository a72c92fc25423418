package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	a := SparseVector{Indices: []int{0}, Values: []float64{1}}
	b := SparseVector{Indices: []int{0}, Values: []float64{3}}
	c := SparseVector{Indices: []int{1}, Values: []float64{1}}
	d := SparseVector{Indices: []int{0, 1}, Values: []float64{1, 1}}

	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-12)
	assert.Equal(t, 0.0, CosineSimilarity(a, c))
	assert.InDelta(t, 1/math.Sqrt2, CosineSimilarity(a, d), 1e-12)
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	zero := SparseVector{}
	a := SparseVector{Indices: []int{0}, Values: []float64{1}}

	sim := CosineSimilarity(zero, a)
	assert.False(t, math.IsNaN(sim))
	assert.Equal(t, 0.0, sim)
	assert.Equal(t, 0.0, CosineSimilarity(zero, zero))
}

func TestCosineSimilarity_ClipsNegative(t *testing.T) {
	a := SparseVector{Indices: []int{0}, Values: []float64{1}}
	b := SparseVector{Indices: []int{0}, Values: []float64{-1}}
	assert.Equal(t, 0.0, CosineSimilarity(a, b))
}

func TestSparseVector_Dot(t *testing.T) {
	a := SparseVector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := SparseVector{Indices: []int{2, 3, 5}, Values: []float64{4, 7, 1}}
	assert.Equal(t, 2.0*4+3.0*1, a.Dot(b))
}

func TestBruteForce_PicksBest(t *testing.T) {
	m := NewBruteForce([]SparseVector{
		{Indices: []int{1}, Values: []float64{1}},
		{Indices: []int{0}, Values: []float64{1}},
		{Indices: []int{0, 1}, Values: []float64{1, 1}},
	})

	idx, score := m.Match(SparseVector{Indices: []int{0}, Values: []float64{1}})
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 1.0, score, 1e-12)
	assert.Equal(t, 3, m.Len())
}

func TestBruteForce_TieGoesToLowestIndex(t *testing.T) {
	row := SparseVector{Indices: []int{0}, Values: []float64{1}}
	m := NewBruteForce([]SparseVector{
		{Indices: []int{1}, Values: []float64{1}},
		row,
		row,
	})

	for i := 0; i < 10; i++ {
		idx, _ := m.Match(row)
		assert.Equal(t, 1, idx)
	}
}

func TestBruteForce_ZeroQueryScoresFirstRowWithZero(t *testing.T) {
	m := NewBruteForce([]SparseVector{
		{Indices: []int{0}, Values: []float64{1}},
		{Indices: []int{1}, Values: []float64{1}},
	})
	idx, score := m.Match(SparseVector{})
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0.0, score)
}

func TestBruteForce_Empty(t *testing.T) {
	idx, score := NewBruteForce(nil).Match(SparseVector{Indices: []int{0}, Values: []float64{1}})
	assert.Equal(t, -1, idx)
	assert.Equal(t, 0.0, score)
}

func TestConfident_IsStrict(t *testing.T) {
	assert.False(t, Confident(0.2, 0.2))
	assert.True(t, Confident(math.Nextafter(0.2, 1), 0.2))
	assert.False(t, Confident(0.1, 0.2))
}

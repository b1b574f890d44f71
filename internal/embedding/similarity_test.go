package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine_IdenticalVectors(t *testing.T) {
	v := []float32{0.6, 0.8}

	assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}

	assert.InDelta(t, 0.0, Cosine(a, b), 1e-6)
}

func TestCosine_MismatchedOrEmpty(t *testing.T) {
	assert.Equal(t, float32(0), Cosine([]float32{1}, []float32{1, 0}))
	assert.Equal(t, float32(0), Cosine(nil, nil))
}

func TestCosine_ZeroVector(t *testing.T) {
	assert.Equal(t, float32(0), Cosine([]float32{0, 0}, []float32{1, 0}))
}

func TestNormalize_UnitLength(t *testing.T) {
	v := Normalize([]float32{3, 4})

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)
}

func TestNormalize_ZeroVectorUnchanged(t *testing.T) {
	v := Normalize([]float32{0, 0, 0})

	assert.Equal(t, []float32{0, 0, 0}, v)
}

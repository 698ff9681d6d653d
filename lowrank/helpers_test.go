package lowrank_test

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/otgeom/geometry"
)

// randFactor fills a rows×cols factor with deterministic normal draws.
func randFactor(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(rows, cols, data)
}

// randVec fills a length-n vector with deterministic normal draws.
func randVec(rng *rand.Rand, n int) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewVecDense(n, data)
}

// refCost builds the dense reference A·Bᵗ + bias with plain loops,
// independent of the code under test.
func refCost(a, b *mat.Dense, bias float64) *mat.Dense {
	n, r := a.Dims()
	m, _ := b.Dims()
	out := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			s := bias
			for k := 0; k < r; k++ {
				s += a.At(i, k) * b.At(j, k)
			}
			out.Set(i, j, s)
		}
	}
	return out
}

// refApply computes fn(c)·v (Axis1) or fn(c)ᵗ·v (Axis0) with plain loops.
func refApply(c *mat.Dense, v *mat.VecDense, axis geometry.Axis, fn func(float64) float64) []float64 {
	n, m := c.Dims()
	entry := func(i, j int) float64 {
		e := c.At(i, j)
		if fn != nil {
			e = fn(e)
		}
		return e
	}
	if axis == geometry.Axis1 {
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				out[i] += entry(i, j) * v.AtVec(j)
			}
		}
		return out
	}
	out := make([]float64, m)
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			out[j] += entry(i, j) * v.AtVec(i)
		}
	}
	return out
}

// vecData exposes the backing slice of a freshly allocated result vector.
func vecData(v *mat.VecDense) []float64 {
	return v.RawVector().Data
}

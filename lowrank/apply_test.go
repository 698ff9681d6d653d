package lowrank_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/otgeom/geometry"
	"github.com/katalvlaran/otgeom/lowrank"
)

// applyCases spans rectangular and square shapes up to 50, including the
// rank-1 edge geometry.
var applyCases = []struct{ n, m, r int }{
	{3, 8, 1},
	{7, 5, 2},
	{12, 12, 4},
	{50, 31, 3},
}

// TestApplyCostToVec_MatchesDense verifies the factored fast path equals
// the dense product for both axes across random shapes up to 50.
func TestApplyCostToVec_MatchesDense(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	for _, tc := range applyCases {
		t.Run(fmt.Sprintf("n=%d,m=%d,r=%d", tc.n, tc.m, tc.r), func(t *testing.T) {
			a := randFactor(rng, tc.n, tc.r)
			b := randFactor(rng, tc.m, tc.r)
			const bias = 0.25
			g, err := lowrank.New(a, b, lowrank.WithBias(bias))
			require.NoError(t, err)
			ref := refCost(a, b, bias)

			v1 := randVec(rng, tc.m)
			out, err := g.ApplyCostToVec(v1, geometry.Axis1, nil)
			require.NoError(t, err)
			assert.InDeltaSlice(t, refApply(ref, v1, geometry.Axis1, nil), vecData(out), 1e-9)

			v0 := randVec(rng, tc.n)
			out, err = g.ApplyCostToVec(v0, geometry.Axis0, nil)
			require.NoError(t, err)
			assert.InDeltaSlice(t, refApply(ref, v0, geometry.Axis0, nil), vecData(out), 1e-9)
		})
	}
}

// TestApplyCostToVec_LinearFn verifies the fast path stays exact when a
// linear entrywise transform is supplied, including the fn(bias)·Σv
// broadcast term.
func TestApplyCostToVec_LinearFn(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	a := randFactor(rng, 9, 3)
	b := randFactor(rng, 6, 3)
	const bias = 0.7
	g, err := lowrank.New(a, b, lowrank.WithBias(bias))
	require.NoError(t, err)
	ref := refCost(a, b, bias)

	scaleBy := func(x float64) float64 { return 2.5 * x }
	for _, axis := range []geometry.Axis{geometry.Axis0, geometry.Axis1} {
		length := 9
		if axis == geometry.Axis1 {
			length = 6
		}
		v := randVec(rng, length)
		out, err := g.ApplyCostToVec(v, axis, scaleBy)
		require.NoError(t, err)
		assert.InDeltaSlice(t, refApply(ref, v, axis, scaleBy), vecData(out), 1e-9)
	}
}

// TestApplyCostToVec_NonLinearFallback verifies that a non-linear
// transform is routed through the dense path and stays correct.
func TestApplyCostToVec_NonLinearFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	a := randFactor(rng, 6, 2)
	b := randFactor(rng, 5, 2)
	const bias = 0.3
	g, err := lowrank.New(a, b, lowrank.WithBias(bias))
	require.NoError(t, err)
	ref := refCost(a, b, bias)

	for name, fn := range map[string]geometry.EntryFn{
		"exp":    math.Exp,
		"square": func(x float64) float64 { return x * x },
	} {
		v := randVec(rng, 5)
		out, err := g.ApplyCostToVec(v, geometry.Axis1, fn)
		require.NoError(t, err, name)
		assert.InDeltaSlice(t, refApply(ref, v, geometry.Axis1, fn), vecData(out), 1e-9, name)
	}
}

// TestApplySquareCost_DirectBranch pins the dense strategy: with n·m well
// below (n+m)·r² the generic kernel must be used and match (C⊙C)·v.
func TestApplySquareCost_DirectBranch(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	// n·m = 9 < (3+3)·16 = 96 → direct strategy.
	a := randFactor(rng, 3, 4)
	b := randFactor(rng, 3, 4)
	g, err := lowrank.New(a, b)
	require.NoError(t, err)
	ref := refCost(a, b, 0)

	square := func(x float64) float64 { return x * x }
	for _, axis := range []geometry.Axis{geometry.Axis0, geometry.Axis1} {
		v := randVec(rng, 3)
		out, err := g.ApplySquareCost(v, axis)
		require.NoError(t, err)
		assert.InDeltaSlice(t, refApply(ref, v, axis, square), vecData(out), 1e-9)
	}
}

// TestApplySquareCost_FactoredBranch pins the augmented rank-r² strategy:
// with n·m well above (n+m)·r² the factored expansion must be used and
// match (C⊙C)·v for unbiased geometries.
func TestApplySquareCost_FactoredBranch(t *testing.T) {
	rng := rand.New(rand.NewSource(24))
	// n·m = 1600 ≥ (40+40)·4 = 320 → factored strategy.
	a := randFactor(rng, 40, 2)
	b := randFactor(rng, 40, 2)
	g, err := lowrank.New(a, b)
	require.NoError(t, err)
	ref := refCost(a, b, 0)

	square := func(x float64) float64 { return x * x }
	for _, axis := range []geometry.Axis{geometry.Axis0, geometry.Axis1} {
		v := randVec(rng, 40)
		out, err := g.ApplySquareCost(v, axis)
		require.NoError(t, err)
		assert.InDeltaSlice(t, refApply(ref, v, axis, square), vecData(out), 1e-8)
	}
}

// TestApplySquareCost_ScaledFactors verifies the augmented construction is
// built from effective (scaled) factors: a fixed scale s must square into
// the result.
func TestApplySquareCost_ScaledFactors(t *testing.T) {
	rng := rand.New(rand.NewSource(25))
	a := randFactor(rng, 30, 1)
	b := randFactor(rng, 30, 1)
	const factor = 3.0
	g, err := lowrank.New(a, b, lowrank.WithScaleFactor(factor))
	require.NoError(t, err)

	// n·m = 900 ≥ (30+30)·1 = 60 → factored strategy.
	scaled := refCost(a, b, 0)
	scaled.Scale(factor, scaled)

	v := randVec(rng, 30)
	out, err := g.ApplySquareCost(v, geometry.Axis1)
	require.NoError(t, err)
	want := refApply(scaled, v, geometry.Axis1, func(x float64) float64 { return x * x })
	assert.InDeltaSlice(t, want, vecData(out), 1e-8)
}

// TestApplyFactor verifies the single-factor products and their
// transposes.
func TestApplyFactor(t *testing.T) {
	rng := rand.New(rand.NewSource(26))
	a := randFactor(rng, 5, 2)
	b := randFactor(rng, 4, 2)
	g, err := lowrank.New(a, b)
	require.NoError(t, err)

	// Axis0: A·v, v of length r.
	v := randVec(rng, 2)
	out, err := g.ApplyFactor1(v, geometry.Axis0)
	require.NoError(t, err)
	want := make([]float64, 5)
	for i := 0; i < 5; i++ {
		want[i] = a.At(i, 0)*v.AtVec(0) + a.At(i, 1)*v.AtVec(1)
	}
	assert.InDeltaSlice(t, want, vecData(out), 1e-12)

	// Axis1: Bᵗ·v, v of length m.
	v = randVec(rng, 4)
	out, err = g.ApplyFactor2(v, geometry.Axis1)
	require.NoError(t, err)
	want = make([]float64, 2)
	for k := 0; k < 2; k++ {
		for j := 0; j < 4; j++ {
			want[k] += b.At(j, k) * v.AtVec(j)
		}
	}
	assert.InDeltaSlice(t, want, vecData(out), 1e-12)

	// Length mismatches surface as ErrShapeMismatch.
	_, err = g.ApplyFactor1(randVec(rng, 3), geometry.Axis0)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)
}

// TestApply_ArgumentErrors covers nil vectors, wrong lengths, and bad axes
// on the cost-level kernels.
func TestApply_ArgumentErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(27))
	g, err := lowrank.New(randFactor(rng, 4, 2), randFactor(rng, 3, 2))
	require.NoError(t, err)

	_, err = g.ApplyCostToVec(nil, geometry.Axis0, nil)
	assert.ErrorIs(t, err, geometry.ErrNilMatrix)

	_, err = g.ApplyCostToVec(randVec(rng, 3), geometry.Axis0, nil)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch, "Axis0 wants length n=4")

	_, err = g.ApplyCostToVec(randVec(rng, 4), geometry.Axis1, nil)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch, "Axis1 wants length m=3")

	_, err = g.ApplySquareCost(randVec(rng, 4), geometry.Axis(-1))
	assert.ErrorIs(t, err, geometry.ErrBadAxis)
}

// TestApply_ScaleErrorsPropagate verifies the kernels surface lazy scale
// failures instead of computing with a default.
func TestApply_ScaleErrorsPropagate(t *testing.T) {
	rng := rand.New(rand.NewSource(28))
	g, err := lowrank.New(randFactor(rng, 4, 2), randFactor(rng, 3, 2),
		lowrank.WithScalePolicy(lowrank.ScaleMaxCost))
	require.NoError(t, err)

	_, err = g.ApplyCostToVec(randVec(rng, 3), geometry.Axis1, nil)
	assert.ErrorIs(t, err, geometry.ErrNotImplemented)

	_, err = g.ApplySquareCost(randVec(rng, 4), geometry.Axis0)
	assert.ErrorIs(t, err, geometry.ErrNotImplemented)
}

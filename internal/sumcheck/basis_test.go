// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package sumcheck

import (
	"math/rand"
	"testing"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/reedsolomon"
	"github.com/stretchr/testify/require"
)

func randGF128(rng *rand.Rand) binaryfield.GF128 {
	return binaryfield.GF128{
		Lo: binaryfield.GF64{}.FromBits(rng.Uint64()),
		Hi: binaryfield.GF64{}.FromBits(rng.Uint64()),
	}
}

func randVec128(rng *rand.Rand, n int) []binaryfield.GF128 {
	v := make([]binaryfield.GF128, n)
	for i := range v {
		v[i] = randGF128(rng)
	}
	return v
}

func dot(u, v []binaryfield.GF128) binaryfield.GF128 {
	var acc binaryfield.GF128
	for i := range u {
		acc = acc.Add(u[i].Mul(v[i]))
	}
	return acc
}

// naiveSkAtV recomputes s_level(x) by unrolling the recurrence, independent
// of the layer-squeeze implementation.
func naiveSkAtV(level int, x binaryfield.GF32, sAtV []binaryfield.GF32) binaryfield.GF32 {
	s := x
	for i := 0; i < level; i++ {
		s = s.Square().Add(sAtV[i].Mul(s))
	}
	return s
}

func TestEvalSkAtVks(t *testing.T) {
	got := EvalSkAtVks(8)
	require.Len(t, got, 9)

	var z binaryfield.GF32
	want := make([]binaryfield.GF32, 0, 9)
	for i := 0; i <= 8; i++ {
		want = append(want, naiveSkAtV(i, z.FromBits(1<<i), want))
	}
	require.Equal(t, want, got)

	// s_0(v_0) = 1 and s_1(v_1) = v_1^2 + v_1 = 6.
	require.Equal(t, binaryfield.GF32(1), got[0])
	require.Equal(t, binaryfield.GF32(6), got[1])

	require.Panics(t, func() { EvalSkAtVks(32) })
	require.Panics(t, func() { EvalSkAtVks(-1) })
}

func TestLagrangeBasisOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r0, r1 := randGF128(rng), randGF128(rng)
	one := binaryfield.GF128{}.One()

	basis := LagrangeBasis([]binaryfield.GF128{r0, r1})
	require.Equal(t, []binaryfield.GF128{
		one.Add(r0).Mul(one.Add(r1)),
		one.Add(r0).Mul(r1),
		r0.Mul(one.Add(r1)),
		r0.Mul(r1),
	}, basis)

	require.Equal(t, []binaryfield.GF128{one}, LagrangeBasis(nil))
}

// Dotting a table against the Lagrange tensor must agree with evaluating by
// repeated halving, where the last challenge collapses adjacent pairs first.
func TestLagrangeBasisMatchesHalvingEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const k = 5

	table := randVec128(rng, 1<<k)
	challenges := randVec128(rng, k)

	cur := append([]binaryfield.GF128(nil), table...)
	one := binaryfield.GF128{}.One()
	for i := k - 1; i >= 0; i-- {
		r := challenges[i]
		next := make([]binaryfield.GF128, len(cur)/2)
		for j := range next {
			next[j] = cur[2*j].Mul(one.Add(r)).Add(cur[2*j+1].Mul(r))
		}
		cur = next
	}

	require.Equal(t, cur[0], dot(table, LagrangeBasis(challenges)))
}

// The additive FFT evaluates novel-basis coefficient vectors; ScaledBasis
// reconstructs single basis evaluations. Their composition must agree.
func TestScaledBasisMatchesFFT(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	one := binaryfield.GF128{}.One()

	for logDim := 1; logDim <= 5; logDim++ {
		n := 1 << logDim
		sksVks := EvalSkAtVks(logDim)

		coeffs := make([]binaryfield.GF32, n)
		lifted := make([]binaryfield.GF128, n)
		for i := range coeffs {
			coeffs[i] = binaryfield.GF32(rng.Uint32())
			lifted[i] = binaryfield.GF128FromGF32(coeffs[i])
		}

		var beta binaryfield.GF32
		evals := append([]binaryfield.GF32(nil), coeffs...)
		reedsolomon.FFT(evals, reedsolomon.ComputeTwiddles(logDim, beta))

		var z binaryfield.GF32
		for j := 0; j < n; j++ {
			basis := ScaledBasis(logDim, sksVks, z.FromBits(uint64(j)), one)
			require.Equal(t, binaryfield.GF128FromGF32(evals[j]), dot(lifted, basis),
				"logDim=%d j=%d", logDim, j)
		}
	}
}

func TestScaledBasisScale(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	sksVks := EvalSkAtVks(4)
	var z binaryfield.GF32
	one := binaryfield.GF128{}.One()

	scale := randGF128(rng)
	point := z.FromBits(11)
	plain := ScaledBasis(4, sksVks, point, one)
	scaled := ScaledBasis(4, sksVks, point, scale)
	for x := range plain {
		require.Equal(t, plain[x].Mul(scale), scaled[x])
	}
	require.Equal(t, scale, scaled[0])
}

func naiveInduce(logDim int, sksVks []binaryfield.GF32, queries []int, rows [][]binaryfield.GF128, challenges []binaryfield.GF128, alpha binaryfield.GF128) ([]binaryfield.GF128, binaryfield.GF128) {
	L := LagrangeBasis(challenges)
	g := make([]binaryfield.GF128, 1<<logDim)
	var e binaryfield.GF128
	var z binaryfield.GF32
	scale := binaryfield.GF128{}.One()
	for idx, q := range queries {
		e = e.Add(scale.Mul(dot(rows[idx], L)))
		basis := ScaledBasis(logDim, sksVks, z.FromBits(uint64(q)), scale)
		for x := range g {
			g[x] = g[x].Add(basis[x])
		}
		scale = scale.Mul(alpha)
	}
	return g, e
}

func TestInduceMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	const logDim = 3
	sksVks := EvalSkAtVks(logDim)
	queries := []int{1, 4, 7, 30}
	challenges := randVec128(rng, 2)
	rows := make([][]binaryfield.GF128, len(queries))
	for i := range rows {
		rows[i] = randVec128(rng, 4)
	}
	alpha := randGF128(rng)

	wantG, wantE := naiveInduce(logDim, sksVks, queries, rows, challenges, alpha)
	for _, nbTasks := range []int{1, 4, 0} {
		g, e := Induce(logDim, sksVks, queries, rows, challenges, alpha, nbTasks)
		require.Equal(t, wantG, g, "nbTasks=%d", nbTasks)
		require.Equal(t, wantE, e, "nbTasks=%d", nbTasks)
	}
}

// Exercises the split-tensor path, which only activates above the low-bits
// cutoff.
func TestInduceSplitTensor(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	const logDim = induceLoBits + 2
	sksVks := EvalSkAtVks(logDim)
	queries := []int{3, 9, 1000, 1<<logDim + 5}
	challenges := randVec128(rng, 1)
	rows := make([][]binaryfield.GF128, len(queries))
	for i := range rows {
		rows[i] = randVec128(rng, 2)
	}
	alpha := randGF128(rng)

	wantG, wantE := naiveInduce(logDim, sksVks, queries, rows, challenges, alpha)
	g, e := Induce(logDim, sksVks, queries, rows, challenges, alpha, 4)
	require.Equal(t, wantG, g)
	require.Equal(t, wantE, e)
}

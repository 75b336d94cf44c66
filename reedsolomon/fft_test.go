// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package reedsolomon

import (
	"math/rand"
	"testing"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func randVec32(rng *rand.Rand, n int) []binaryfield.GF32 {
	v := make([]binaryfield.GF32, n)
	for i := range v {
		v[i] = binaryfield.GF32(rng.Uint32())
	}
	return v
}

func randVec128(rng *rand.Rand, n int) []binaryfield.GF128 {
	v := make([]binaryfield.GF128, n)
	for i := range v {
		v[i] = binaryfield.GF128{
			Lo: binaryfield.GF64{}.FromBits(rng.Uint64()),
			Hi: binaryfield.GF64{}.FromBits(rng.Uint64()),
		}
	}
	return v
}

// evalSubspace evaluates the subspace polynomial s_level at x, given
// sAtV[i] = s_i(v_i) for all i < level.
func evalSubspace(level int, x binaryfield.GF32, sAtV []binaryfield.GF32) binaryfield.GF32 {
	s := x
	for i := 0; i < level; i++ {
		s = s.Square().Add(sAtV[i].Mul(s))
	}
	return s
}

// subspaceNorms returns s_i(v_i) for i < logN, built independently of the
// twiddle computation.
func subspaceNorms(logN int) []binaryfield.GF32 {
	var z binaryfield.GF32
	sAtV := make([]binaryfield.GF32, 0, logN)
	for i := 0; i < logN; i++ {
		sAtV = append(sAtV, evalSubspace(i, z.FromBits(1<<i), sAtV))
	}
	return sAtV
}

// naiveNovelEval evaluates the polynomial with the given novel-basis
// coefficients at p by expanding every basis polynomial as a product of
// normalized subspace polynomials.
func naiveNovelEval(coeffs, sAtV []binaryfield.GF32, p binaryfield.GF32) binaryfield.GF32 {
	var acc binaryfield.GF32
	for x, c := range coeffs {
		term := c
		for i := 0; x>>i != 0; i++ {
			if x>>i&1 == 1 {
				term = term.Mul(evalSubspace(i, p, sAtV).Mul(sAtV[i].Inverse()))
			}
		}
		acc = acc.Add(term)
	}
	return acc
}

func TestComputeTwiddlesLayout(t *testing.T) {
	var z binaryfield.GF32

	require.Nil(t, ComputeTwiddles[binaryfield.GF32](0, z))

	for logN := 1; logN <= 8; logN++ {
		tw := ComputeTwiddles[binaryfield.GF32](logN, z)
		require.Len(t, tw, 1<<logN-1)

		// Deepest layer holds the raw even points beta + 2i.
		n := 1 << logN
		for i := 0; i < n/2; i++ {
			require.Equal(t, z.FromBits(uint64(2*i)), tw[n/2-1+i])
		}
	}

	// Size-4 domain over beta = 0: the root butterfly constant is
	// s_1(0)/s_1(v_1) = 0 and the leaf layer is {0, 2}.
	tw := ComputeTwiddles[binaryfield.GF32](2, z)
	require.Equal(t, []binaryfield.GF32{0, 0, 2}, tw)
}

func TestFFTMatchesNaiveBasisEval(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for logN := 1; logN <= 6; logN++ {
		n := 1 << logN
		sAtV := subspaceNorms(logN)

		for _, beta := range []binaryfield.GF32{0, binaryfield.GF32(rng.Uint32())} {
			tw := ComputeTwiddles(logN, beta)
			msg := randVec32(rng, n)

			got := append([]binaryfield.GF32(nil), msg...)
			FFT(got, tw)

			var z binaryfield.GF32
			for j := 0; j < n; j++ {
				p := beta.Add(z.FromBits(uint64(j)))
				require.Equal(t, naiveNovelEval(msg, sAtV, p), got[j],
					"logN=%d beta=%v j=%d", logN, beta, j)
			}
		}
	}
}

func TestFFTIFFTRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	for _, logN := range []int{1, 3, 6, 8} {
		logN := logN
		n := 1 << logN
		properties.Property("ifft inverts fft", prop.ForAll(
			func(seed int64, betaBits uint32) bool {
				rng := rand.New(rand.NewSource(seed))
				tw := ComputeTwiddles(logN, binaryfield.GF32(betaBits))
				want := randVec32(rng, n)
				got := append([]binaryfield.GF32(nil), want...)
				FFT(got, tw)
				IFFT(got, tw)
				for i := range want {
					if got[i] != want[i] {
						return false
					}
				}
				return true
			},
			gen.Int64(), gen.UInt32(),
		))
	}

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFFTIFFTRoundTripTower(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	var z binaryfield.GF128
	tw := ComputeTwiddles(5, z)
	want := randVec128(rng, 32)
	got := append([]binaryfield.GF128(nil), want...)
	FFT(got, tw)
	IFFT(got, tw)
	require.Equal(t, want, got)
}

func TestFFTParallelMatchesFFT(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	// Large enough to split several times before the sequential cutoff.
	const logN = 14
	var z binaryfield.GF32
	tw := ComputeTwiddles(logN, z)

	v := randVec32(rng, 1<<logN)
	seq := append([]binaryfield.GF32(nil), v...)
	par := append([]binaryfield.GF32(nil), v...)

	FFT(seq, tw)
	FFTParallel(par, tw)
	require.Equal(t, seq, par)
}

func TestFFTLinearity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	const logN = 5
	var z binaryfield.GF32
	tw := ComputeTwiddles(logN, z)

	properties.Property("fft is GF32-linear", prop.ForAll(
		func(seed int64, cBits uint32) bool {
			rng := rand.New(rand.NewSource(seed))
			c := binaryfield.GF32(cBits)
			u := randVec32(rng, 1<<logN)
			v := randVec32(rng, 1<<logN)

			lhs := make([]binaryfield.GF32, 1<<logN)
			for i := range lhs {
				lhs[i] = u[i].Add(c.Mul(v[i]))
			}
			FFT(lhs, tw)

			fu := append([]binaryfield.GF32(nil), u...)
			fv := append([]binaryfield.GF32(nil), v...)
			FFT(fu, tw)
			FFT(fv, tw)

			for i := range lhs {
				if lhs[i] != fu[i].Add(c.Mul(fv[i])) {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.UInt32(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// The prover encodes base-field columns while the verifier reconstructs
// basis evaluations in the extension field, so the twiddle tables of the two
// fields must agree under the tower lift.
func TestTwiddlesLiftToTower(t *testing.T) {
	for logN := 1; logN <= 8; logN++ {
		var z32 binaryfield.GF32
		var z128 binaryfield.GF128
		tw32 := ComputeTwiddles(logN, z32)
		tw128 := ComputeTwiddles(logN, z128)
		for i := range tw32 {
			require.Equal(t, binaryfield.GF128FromGF32(tw32[i]), tw128[i])
		}
	}
}

func TestFFTArgChecks(t *testing.T) {
	var z binaryfield.GF32
	tw := ComputeTwiddles(3, z)

	require.Panics(t, func() { FFT(make([]binaryfield.GF32, 6), tw) })
	require.Panics(t, func() { FFT(make([]binaryfield.GF32, 16), tw) })
	require.Panics(t, func() { FFT(make([]binaryfield.GF32, 4), tw) })
	require.Panics(t, func() { IFFT(make([]binaryfield.GF32, 16), tw) })
	require.NotPanics(t, func() { FFT(make([]binaryfield.GF32, 8), tw) })
}

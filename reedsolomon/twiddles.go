// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package reedsolomon implements Reed-Solomon encoding over binary extension
// fields using the additive FFT of Lin, Chung and Han.
//
// A message of length 2^k is interpreted as coefficients over the novel
// polynomial basis induced by the subspace polynomials
//
//	s_0(X) = X,  s_{i+1}(X) = s_i(X)^2 + s_i(v_i)·s_i(X),  v_i = 2^i,
//
// zero-padded to the block length 2^n and evaluated over the domain
// {beta + j : 0 <= j < 2^n} with an in-place additive FFT. The encoding is
// non-systematic: message symbols do not appear verbatim in the codeword.
package reedsolomon

import (
	"github.com/consensys/ligerito/binaryfield"
)

// ComputeTwiddles returns the 2^logN - 1 butterfly constants of the size-2^logN
// additive FFT over the coset beta + GF(2)^logN.
//
// The result is laid out as a flattened binary heap: the root butterfly sits at
// index 0, and the two children of the butterfly at heap position i (1-based)
// sit at positions 2i and 2i+1. Layers below the root hold the normalized
// subspace polynomial evaluations s_i(coset)/s_i(v_i); the deepest layer holds
// the raw points beta + 2j.
func ComputeTwiddles[E binaryfield.Element[E]](logN int, beta E) []E {
	if logN == 0 {
		return nil
	}

	n := 1 << logN
	twiddles := make([]E, n-1)

	// Deepest layer: s_0 evaluated at the even coset representatives. s_0 is
	// the identity and s_0(v_0) = 1, so no normalization is needed.
	var zero E
	layer := make([]E, n/2)
	for i := range layer {
		layer[i] = beta.Add(zero.FromBits(uint64(i) << 1))
	}
	copy(twiddles[n/2-1:], layer)

	// Each subsequent layer halves: layer[i] tracks the unnormalized
	// s_d(beta + 2^{d+1}·i) while the stored twiddles are scaled by
	// 1/s_d(v_d) so that FFT butterflies use the normalized basis.
	sPrevAtRoot := zero.One()
	for writeAt := n / 4; writeAt >= 1; writeAt /= 2 {
		sAtRoot := nextS(layer[0].Add(layer[1]), sPrevAtRoot)
		for i := 0; i < writeAt; i++ {
			layer[i] = nextS(layer[2*i], sPrevAtRoot)
		}
		sInv := sAtRoot.Inverse()
		for i := 0; i < writeAt; i++ {
			twiddles[writeAt-1+i] = sInv.Mul(layer[i])
		}
		sPrevAtRoot = sAtRoot
	}

	return twiddles
}

// nextS advances the subspace polynomial recurrence by one level:
// s_{d+1}(x) = s_d(x)^2 + s_d(v_d)·s_d(x).
func nextS[E binaryfield.Element[E]](s, sAtRoot E) E {
	return s.Square().Add(sAtRoot.Mul(s))
}

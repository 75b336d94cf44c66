// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package sumcheck implements the multilinear folding machinery shared by
// the prover and the verifier: novel-basis tensor expansions, Lagrange
// tensors over boolean challenges, and the degree-2 product sumcheck rounds.
//
// Index convention: in every table of length 2^k, the variable bound by the
// first challenge is the top (most significant) index bit, matching the
// column-major matrix layout where column bits are the high bits of the
// flattened polynomial index.
package sumcheck

import (
	"fmt"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/internal/parallel"
)

// induceLoBits bounds the low-half tensor built per query in Induce; the
// remaining index bits go into a separate high-half tensor so scratch
// memory stays small for large dimensions.
const induceLoBits = 12

// EvalSkAtVks returns the subspace polynomial self-evaluations s_i(v_i) for
// 0 <= i <= k, where v_i = 2^i and
//
//	s_0(X) = X,  s_{i+1}(X) = s_i(X)^2 + s_i(v_i)·s_i(X).
//
// Each level is obtained by squeezing the previous level's evaluations at
// the remaining v_j in place.
func EvalSkAtVks(k int) []binaryfield.GF32 {
	if k < 0 || k >= 32 {
		panic(fmt.Sprintf("sumcheck: subspace level %d out of range", k))
	}
	var z binaryfield.GF32
	layer := make([]binaryfield.GF32, k+1)
	for i := range layer {
		layer[i] = z.FromBits(1 << i)
	}
	out := make([]binaryfield.GF32, k+1)
	out[0] = layer[0]
	for i := 1; i <= k; i++ {
		sPrev := layer[0]
		layer = layer[1:]
		for j := range layer {
			layer[j] = layer[j].Square().Add(sPrev.Mul(layer[j]))
		}
		out[i] = layer[0]
	}
	return out
}

// LagrangeBasis expands boolean-hypercube challenges into the tensor of
// Lagrange weights: entry x is the product over challenge i of (1-r_i) or
// r_i according to bit i of x, with the first challenge owning the top bit.
func LagrangeBasis(challenges []binaryfield.GF128) []binaryfield.GF128 {
	var z binaryfield.GF128
	one := z.One()
	basis := []binaryfield.GF128{one}
	for _, r := range challenges {
		next := make([]binaryfield.GF128, 2*len(basis))
		for k, b := range basis {
			next[2*k] = b.Mul(one.Add(r))
			next[2*k+1] = b.Mul(r)
		}
		basis = next
	}
	return basis
}

// ScaledBasis returns scale·X_x(point) for all x < 2^logDim, where X_x is
// the normalized novel-basis polynomial, the product of s_i/s_i(v_i) over
// the set bits i of x. sksVks must hold at least logDim entries of
// EvalSkAtVks output.
func ScaledBasis(logDim int, sksVks []binaryfield.GF32, point binaryfield.GF32, scale binaryfield.GF128) []binaryfield.GF128 {
	basis := make([]binaryfield.GF128, 1<<logDim)
	basis[0] = scale
	size := 1
	s := point
	for i := 0; size < len(basis); i++ {
		factor := binaryfield.GF128FromGF32(s.Mul(sksVks[i].Inverse()))
		for x := 0; x < size; x++ {
			basis[size+x] = basis[x].Mul(factor)
		}
		s = s.Square().Add(sksVks[i].Mul(s))
		size <<= 1
	}
	return basis
}

// scaledBasisTensors splits the scaled novel-basis tensor at point into two
// factors, loT over the low index bits (carrying scale) and hiT over the
// remaining high bits, so that scale·X_x(point) = loT[x&lo]·hiT[x>>loBits].
func scaledBasisTensors(loT, hiT []binaryfield.GF128, sksVks, invSksVks []binaryfield.GF32, point binaryfield.GF32, scale binaryfield.GF128) {
	s := point
	i := 0

	fill := func(t []binaryfield.GF128, seed binaryfield.GF128) {
		t[0] = seed
		size := 1
		for size < len(t) {
			factor := binaryfield.GF128FromGF32(s.Mul(invSksVks[i]))
			for x := 0; x < size; x++ {
				t[size+x] = t[x].Mul(factor)
			}
			s = s.Square().Add(sksVks[i].Mul(s))
			i++
			size <<= 1
		}
	}

	var z binaryfield.GF128
	fill(loT, scale)
	fill(hiT, z.One())
}

// Induce turns a batch of opened codeword rows into a fresh sumcheck claim:
// it returns the alpha-combined scaled basis table
//
//	g[x] = sum_idx alpha^idx · X_x(w_{queries[idx]})
//
// together with the matching combined row evaluations
//
//	e = sum_idx alpha^idx · <rows[idx], LagrangeBasis(challenges)>,
//
// so that a row vector consistent with a committed polynomial satisfies
// sum_x f[x]·g[x] = e. Accumulation over x is split across min(nbTasks,
// GOMAXPROCS) goroutines; the result does not depend on nbTasks.
func Induce(logDim int, sksVks []binaryfield.GF32, queries []int, rows [][]binaryfield.GF128, challenges []binaryfield.GF128, alpha binaryfield.GF128, nbTasks int) ([]binaryfield.GF128, binaryfield.GF128) {
	L := LagrangeBasis(challenges)
	g := make([]binaryfield.GF128, 1<<logDim)
	var e binaryfield.GF128

	logLo := logDim
	if logLo > induceLoBits {
		logLo = induceLoBits
	}
	loT := make([]binaryfield.GF128, 1<<logLo)
	hiT := make([]binaryfield.GF128, 1<<(logDim-logLo))
	invSksVks := make([]binaryfield.GF32, logDim)
	for i := range invSksVks {
		invSksVks[i] = sksVks[i].Inverse()
	}

	var z binaryfield.GF32
	var one binaryfield.GF128
	scale := one.One()
	mask := 1<<logLo - 1

	for idx, q := range queries {
		row := rows[idx]
		var y binaryfield.GF128
		for j := range row {
			y = y.Add(row[j].Mul(L[j]))
		}
		e = e.Add(scale.Mul(y))

		scaledBasisTensors(loT, hiT, sksVks, invSksVks, z.FromBits(uint64(q)), scale)
		if len(hiT) == 1 {
			parallel.Execute(0, len(g), nbTasks, func(start, end int) {
				for x := start; x < end; x++ {
					g[x] = g[x].Add(loT[x])
				}
			})
		} else {
			parallel.Execute(0, len(g), nbTasks, func(start, end int) {
				for x := start; x < end; x++ {
					g[x] = g[x].Add(loT[x&mask].Mul(hiT[x>>logLo]))
				}
			})
		}
		scale = scale.Mul(alpha)
	}
	return g, e
}

// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package sumcheck

import (
	"sync"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/internal/parallel"
)

// parallelThreshold is the smallest half-table size worth spreading across
// goroutines.
const parallelThreshold = 4096

// FoldTop binds the top variable of a multilinear table to r:
//
//	out[x] = v[x] + r·(v[x] + v[x+half]).
//
// The result has half the length of v. len(v) must be even.
func FoldTop(v []binaryfield.GF128, r binaryfield.GF128, nbTasks int) []binaryfield.GF128 {
	half := len(v) / 2
	out := make([]binaryfield.GF128, half)
	fold := func(start, end int) {
		for x := start; x < end; x++ {
			out[x] = v[x].Add(r.Mul(v[x].Add(v[x+half])))
		}
	}
	if half >= parallelThreshold {
		parallel.Execute(0, half, nbTasks, fold)
	} else {
		fold(0, half)
	}
	return out
}

// ProductRound computes the degree-2 round polynomial of the product
// sumcheck for the top variable of f and g:
//
//	h(t) = sum_{x<half} f_t(x)·g_t(x),  h(t) = a + b·t + c·t^2,
//
// where f_t, g_t are f, g with the top variable bound to t. The coefficient
// b is derived from h(0), h(1) and c, so a prover claim sum = h(0) + h(1)
// becomes the verifier check b + c == sum. The reduction is deterministic
// regardless of nbTasks.
func ProductRound(f, g []binaryfield.GF128, nbTasks int) (a, b, c binaryfield.GF128) {
	half := len(f) / 2
	var h1 binaryfield.GF128

	partial := func(start, end int) (pa, ph1, pc binaryfield.GF128) {
		for x := start; x < end; x++ {
			f0, f1 := f[x], f[x+half]
			g0, g1 := g[x], g[x+half]
			pa = pa.Add(f0.Mul(g0))
			ph1 = ph1.Add(f1.Mul(g1))
			pc = pc.Add(f0.Add(f1).Mul(g0.Add(g1)))
		}
		return
	}

	if half >= parallelThreshold {
		var mu sync.Mutex
		parallel.Execute(0, half, nbTasks, func(start, end int) {
			pa, ph1, pc := partial(start, end)
			mu.Lock()
			a = a.Add(pa)
			h1 = h1.Add(ph1)
			c = c.Add(pc)
			mu.Unlock()
		})
	} else {
		a, h1, c = partial(0, half)
	}

	b = a.Add(h1).Add(c)
	return a, b, c
}

// EvalRound evaluates the round polynomial a + b·r + c·r^2.
func EvalRound(a, b, c, r binaryfield.GF128) binaryfield.GF128 {
	return a.Add(b.Mul(r)).Add(c.Mul(r.Square()))
}

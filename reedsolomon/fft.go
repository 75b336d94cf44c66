// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package reedsolomon

import (
	"sync"

	"github.com/consensys/ligerito/binaryfield"
)

// fftParallelThreshold is the sub-range size below which the fork-join FFT
// stops spawning goroutines and falls back to the sequential recursion.
const fftParallelThreshold = 4096

// FFT evaluates, in place, the polynomial whose novel-basis coefficients are
// v over the coset encoded in twiddles. len(v) must be a power of two and
// twiddles must come from ComputeTwiddles with logN = log2(len(v)).
func FFT[E binaryfield.Element[E]](v, twiddles []E) {
	checkFFTArgs(v, twiddles)
	fftRecurse(v, twiddles, 1)
}

// FFTParallel is FFT with a fork-join recursion: the two halves of each
// butterfly layer are transformed concurrently down to a fixed size
// threshold. The result is identical to FFT.
func FFTParallel[E binaryfield.Element[E]](v, twiddles []E) {
	checkFFTArgs(v, twiddles)
	fftParallelRecurse(v, twiddles, 1)
}

// IFFT inverts FFT in place: it recovers the novel-basis coefficients of the
// polynomial whose evaluations over the coset are v.
func IFFT[E binaryfield.Element[E]](v, twiddles []E) {
	checkFFTArgs(v, twiddles)
	ifftRecurse(v, twiddles, 1)
}

func checkFFTArgs[E binaryfield.Element[E]](v, twiddles []E) {
	if len(v)&(len(v)-1) != 0 {
		panic("reedsolomon: fft length must be a power of two")
	}
	if len(twiddles) != len(v)-1 {
		panic("reedsolomon: twiddle table does not match fft length")
	}
}

// fftRecurse walks the twiddle heap top-down. At heap position idx the
// butterfly constant is twiddles[idx-1] and the children live at 2idx and
// 2idx+1.
func fftRecurse[E binaryfield.Element[E]](v, twiddles []E, idx int) {
	if len(v) <= 1 {
		return
	}
	butterflyFwd(v, twiddles[idx-1])
	mid := len(v) / 2
	fftRecurse(v[:mid], twiddles, 2*idx)
	fftRecurse(v[mid:], twiddles, 2*idx+1)
}

func fftParallelRecurse[E binaryfield.Element[E]](v, twiddles []E, idx int) {
	if len(v) <= fftParallelThreshold {
		fftRecurse(v, twiddles, idx)
		return
	}
	butterflyFwd(v, twiddles[idx-1])
	mid := len(v) / 2
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fftParallelRecurse(v[:mid], twiddles, 2*idx)
	}()
	fftParallelRecurse(v[mid:], twiddles, 2*idx+1)
	wg.Wait()
}

func ifftRecurse[E binaryfield.Element[E]](v, twiddles []E, idx int) {
	if len(v) <= 1 {
		return
	}
	mid := len(v) / 2
	ifftRecurse(v[:mid], twiddles, 2*idx)
	ifftRecurse(v[mid:], twiddles, 2*idx+1)
	butterflyInv(v, twiddles[idx-1])
}

// butterflyFwd applies u_i += lambda·w_i followed by w_i += u_i to the two
// halves u, w of v. Over characteristic 2 this is its own inverse when the
// two updates are applied in the opposite order.
func butterflyFwd[E binaryfield.Element[E]](v []E, lambda E) {
	mid := len(v) / 2
	u, w := v[:mid], v[mid:]
	for i := range u {
		u[i] = u[i].Add(lambda.Mul(w[i]))
		w[i] = w[i].Add(u[i])
	}
}

func butterflyInv[E binaryfield.Element[E]](v []E, lambda E) {
	mid := len(v) / 2
	u, w := v[:mid], v[mid:]
	for i := range u {
		w[i] = w[i].Add(u[i])
		u[i] = u[i].Add(lambda.Mul(w[i]))
	}
}

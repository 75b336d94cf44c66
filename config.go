// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ligerito

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/reedsolomon"
)

// logInvRate fixes the Reed-Solomon rate at 1/4: every committed matrix is
// encoded into codewords four times the column height.
const logInvRate = 2

// numQueries is the number of distinct codeword rows opened per
// commitment. With rate 1/4 it puts the soundness error around 2^-100.
const numQueries = 148

// MatrixDims describes how a polynomial is reshaped into a matrix: Rows
// message rows by Cols columns, filled column-major. Both are powers of
// two. The committed codeword matrix has Rows<<logInvRate rows.
type MatrixDims struct {
	Rows, Cols int
}

// recursionShapes maps log2 polynomial length to the matrix chain used at
// that size: the initial base-field matrix, then one extension-field matrix
// per recursive step. Each step reshapes the previous step's row count, and
// the column count of a step is the number of sumcheck rounds run on it.
var recursionShapes = map[int]struct {
	initial MatrixDims
	steps   []MatrixDims
}{
	12: {MatrixDims{1 << 8, 1 << 4}, []MatrixDims{{1 << 6, 1 << 2}}},
	16: {MatrixDims{1 << 12, 1 << 4}, []MatrixDims{{1 << 8, 1 << 4}}},
	20: {MatrixDims{1 << 14, 1 << 6}, []MatrixDims{{1 << 10, 1 << 4}}},
	24: {MatrixDims{1 << 18, 1 << 6}, []MatrixDims{{1 << 14, 1 << 4}, {1 << 10, 1 << 4}}},
	26: {MatrixDims{1 << 20, 1 << 6}, []MatrixDims{{1 << 17, 1 << 3}, {1 << 14, 1 << 3}, {1 << 11, 1 << 3}}},
	28: {MatrixDims{1 << 22, 1 << 6}, []MatrixDims{{1 << 19, 1 << 3}, {1 << 16, 1 << 3}, {1 << 13, 1 << 3}, {1 << 10, 1 << 3}}},
	30: {MatrixDims{1 << 23, 1 << 7}, []MatrixDims{{1 << 19, 1 << 4}, {1 << 15, 1 << 4}, {1 << 11, 1 << 4}}},
}

// SupportedLogSizes returns the log2 polynomial lengths with a hardcoded
// configuration, in increasing order.
func SupportedLogSizes() []int {
	sizes := make([]int, 0, len(recursionShapes))
	for s := range recursionShapes {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	return sizes
}

// ProverConfig fixes the recursion shape and the Reed-Solomon codes for
// proving polynomials of one fixed size. Build it once with
// NewProverConfig and reuse it across Prove calls; it is immutable after
// construction and safe for concurrent use.
type ProverConfig struct {
	InitialDims MatrixDims   // base-field matrix of the committed polynomial
	Dims        []MatrixDims // extension-field matrix per recursive step

	InitialK int   // sumcheck rounds bound by the initial column fold
	Ks       []int // sumcheck rounds per recursive step

	InitialCode *reedsolomon.Code[binaryfield.GF32]
	Codes       []*reedsolomon.Code[binaryfield.GF128]
}

// VerifierConfig is the verifier-side counterpart of a ProverConfig. It
// carries only dimensions, so building one is cheap.
type VerifierConfig struct {
	InitialDim int   // log2 message rows of the initial matrix
	LogDims    []int // log2 message rows per recursive step
	InitialK   int
	Ks         []int
}

// NewProverConfig returns the hardcoded configuration for polynomials of
// length 2^logSize. Construction precomputes the FFT twiddle tables of
// every recursion level.
func NewProverConfig(logSize int) (*ProverConfig, error) {
	shape, ok := recursionShapes[logSize]
	if !ok {
		return nil, fmt.Errorf("%w: no configuration for log size %d (supported: %v)",
			ErrConfigMismatch, logSize, SupportedLogSizes())
	}

	cfg := &ProverConfig{
		InitialDims: shape.initial,
		Dims:        append([]MatrixDims(nil), shape.steps...),
		InitialK:    log2(shape.initial.Cols),
		Ks:          make([]int, len(shape.steps)),
		InitialCode: reedsolomon.NewCode[binaryfield.GF32](shape.initial.Rows, shape.initial.Rows<<logInvRate),
		Codes:       make([]*reedsolomon.Code[binaryfield.GF128], len(shape.steps)),
	}
	for i, d := range shape.steps {
		cfg.Ks[i] = log2(d.Cols)
		cfg.Codes[i] = reedsolomon.NewCode[binaryfield.GF128](d.Rows, d.Rows<<logInvRate)
	}
	return cfg, nil
}

// NewVerifierConfig returns the verifier configuration for polynomials of
// length 2^logSize.
func NewVerifierConfig(logSize int) (*VerifierConfig, error) {
	shape, ok := recursionShapes[logSize]
	if !ok {
		return nil, fmt.Errorf("%w: no configuration for log size %d (supported: %v)",
			ErrConfigMismatch, logSize, SupportedLogSizes())
	}

	cfg := &VerifierConfig{
		InitialDim: log2(shape.initial.Rows),
		LogDims:    make([]int, len(shape.steps)),
		InitialK:   log2(shape.initial.Cols),
		Ks:         make([]int, len(shape.steps)),
	}
	for i, d := range shape.steps {
		cfg.LogDims[i] = log2(d.Rows)
		cfg.Ks[i] = log2(d.Cols)
	}
	return cfg, nil
}

// ProverConfigForLength returns the smallest hardcoded configuration that
// fits a polynomial of length n, along with the padded length 2^logSize.
// Callers zero-pad their polynomial to the returned length before Prove.
func ProverConfigForLength(n int) (*ProverConfig, int, error) {
	logSize, err := logSizeForLength(n)
	if err != nil {
		return nil, 0, err
	}
	cfg, err := NewProverConfig(logSize)
	return cfg, 1 << logSize, err
}

// VerifierConfigForLength is the verifier counterpart of
// ProverConfigForLength.
func VerifierConfigForLength(n int) (*VerifierConfig, int, error) {
	logSize, err := logSizeForLength(n)
	if err != nil {
		return nil, 0, err
	}
	cfg, err := NewVerifierConfig(logSize)
	return cfg, 1 << logSize, err
}

func logSizeForLength(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: polynomial length %d", ErrConfigMismatch, n)
	}
	for _, logSize := range SupportedLogSizes() {
		if n <= 1<<logSize {
			return logSize, nil
		}
	}
	return 0, fmt.Errorf("%w: polynomial length %d exceeds the largest supported size", ErrConfigMismatch, n)
}

// VerifierConfig derives the matching verifier configuration.
func (c *ProverConfig) VerifierConfig() *VerifierConfig {
	vc := &VerifierConfig{
		InitialDim: log2(c.InitialDims.Rows),
		LogDims:    make([]int, len(c.Dims)),
		InitialK:   c.InitialK,
		Ks:         append([]int(nil), c.Ks...),
	}
	for i, d := range c.Dims {
		vc.LogDims[i] = log2(d.Rows)
	}
	return vc
}

// RecursiveSteps returns the number of recursive commitments.
func (c *ProverConfig) RecursiveSteps() int { return len(c.Dims) }

// Size returns the polynomial length the configuration proves.
func (c *ProverConfig) Size() int { return c.InitialDims.Rows * c.InitialDims.Cols }

// RecursiveSteps returns the number of recursive commitments.
func (c *VerifierConfig) RecursiveSteps() int { return len(c.LogDims) }

func (c *ProverConfig) validate() error {
	steps := c.RecursiveSteps()
	if steps == 0 || len(c.Ks) != steps || len(c.Codes) != steps {
		return fmt.Errorf("%w: inconsistent recursion shape", ErrConfigMismatch)
	}
	if c.InitialCode == nil || !isPow2(c.InitialDims.Rows) || c.InitialDims.Cols != 1<<c.InitialK {
		return fmt.Errorf("%w: invalid initial dimensions", ErrConfigMismatch)
	}
	if c.InitialCode.MessageLen() != c.InitialDims.Rows ||
		c.InitialCode.BlockLen() != c.InitialDims.Rows<<logInvRate {
		return fmt.Errorf("%w: initial code does not match initial dimensions", ErrConfigMismatch)
	}

	rows := c.InitialDims.Rows
	for i, d := range c.Dims {
		if !isPow2(d.Rows) || d.Cols != 1<<c.Ks[i] || d.Rows*d.Cols != rows {
			return fmt.Errorf("%w: step %d does not reshape the previous row count", ErrConfigMismatch, i)
		}
		if c.Codes[i] == nil || c.Codes[i].MessageLen() != d.Rows ||
			c.Codes[i].BlockLen() != d.Rows<<logInvRate {
			return fmt.Errorf("%w: step %d code does not match its dimensions", ErrConfigMismatch, i)
		}
		rows = d.Rows
	}
	return nil
}

func (c *VerifierConfig) validate() error {
	steps := c.RecursiveSteps()
	if steps == 0 || len(c.Ks) != steps {
		return fmt.Errorf("%w: inconsistent recursion shape", ErrConfigMismatch)
	}
	if c.InitialDim <= 0 || c.InitialDim >= 32 || c.InitialK <= 0 {
		return fmt.Errorf("%w: invalid initial dimensions", ErrConfigMismatch)
	}
	dim := c.InitialDim
	for i, logDim := range c.LogDims {
		if c.Ks[i] <= 0 || logDim <= 0 || logDim+c.Ks[i] != dim {
			return fmt.Errorf("%w: step %d does not reshape the previous dimension", ErrConfigMismatch, i)
		}
		dim = logDim
	}
	return nil
}

func log2(n int) int { return bits.TrailingZeros(uint(n)) }

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

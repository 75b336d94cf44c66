// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package binaryfield implements arithmetic over the binary extension fields
// GF(2^16), GF(2^32), GF(2^64) and GF(2^128).
//
// Addition is XOR. Multiplication is a carryless polynomial product reduced by
// a fixed irreducible polynomial. The two small widths are monolithic;
// GF(2^64) and GF(2^128) are quadratic tower extensions of GF(2^32), so
// lifting base-field data into an extension field is a coefficient injection
// and commutes with all arithmetic.
package binaryfield

// Element is the capability set shared by all field widths. Methods use
// value receivers and return new values; elements are word-sized and never
// aliased.
type Element[E any] interface {
	comparable
	Zero() E
	One() E
	Add(E) E
	Mul(E) E
	Square() E
	Inverse() E
	Pow(uint64) E
	IsZero() bool
	FromBits(uint64) E
	ByteLen() int
	AppendBytes([]byte) []byte
	FromBytes([]byte) E
}

// GF64FromGF32 lifts a into the first tower rung. The lift is a coefficient
// injection, hence a ring homomorphism: lifted arithmetic commutes with
// base-field arithmetic, and FromBits values below 2^32 lift to each other.
func GF64FromGF32(a GF32) GF64 { return GF64{Lo: a} }

// GF128FromGF64 lifts a into the top tower rung.
func GF128FromGF64(a GF64) GF128 { return GF128{Lo: a} }

// GF128FromGF32 lifts a base-field element through both rungs.
func GF128FromGF32(a GF32) GF128 { return GF128{Lo: GF64{Lo: a}} }

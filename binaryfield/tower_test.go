// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package binaryfield

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestTowerModuli(t *testing.T) {
	// z² + z = x^17 pins the GF64 reduction.
	z := GF64{Hi: 1}
	require.Equal(t, GF64{Lo: gf32Gen}, z.Square().Add(z))

	// w² + w = x^17·z pins the GF128 reduction.
	w := GF128{Hi: GF64{Lo: 1}}
	require.Equal(t, GF128{Lo: GF64{Hi: gf32Gen}}, w.Square().Add(w))

	// The precomputed x^34 used by mulNonRes.
	require.Equal(t, gf32GenSq, gf32Gen.Square())
}

// Each extension must be a field, not a product ring: an element outside the
// base subfield cannot have multiplicative order dividing the subfield's.
func TestTowerSubfieldOrders(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("GF64: a^(2^32−1) == 1 only inside GF32", prop.ForAll(
		func(a GF64) bool {
			if a.Hi == 0 {
				return true
			}
			return a.Pow(1<<32-1) != a.One()
		},
		genGF64(),
	))
	properties.Property("GF64: a^(2^64−1) == 1 for a != 0", prop.ForAll(
		func(a GF64) bool {
			if a.IsZero() {
				return true
			}
			return a.Pow(^uint64(0)) == a.One()
		},
		genGF64(),
	))
	properties.Property("GF128: a^(2^64−1) == 1 only inside GF64", prop.ForAll(
		func(a GF128) bool {
			if a.Hi.IsZero() {
				return true
			}
			return a.Pow(^uint64(0)) != a.One()
		},
		genGF128(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLiftIsRingHomomorphism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("GF64FromGF32 preserves add and mul", prop.ForAll(
		func(a, b GF32) bool {
			return GF64FromGF32(a.Mul(b)) == GF64FromGF32(a).Mul(GF64FromGF32(b)) &&
				GF64FromGF32(a.Add(b)) == GF64FromGF32(a).Add(GF64FromGF32(b))
		},
		genGF32(), genGF32(),
	))
	properties.Property("GF128FromGF32 preserves add and mul", prop.ForAll(
		func(a, b GF32) bool {
			return GF128FromGF32(a.Mul(b)) == GF128FromGF32(a).Mul(GF128FromGF32(b)) &&
				GF128FromGF32(a.Add(b)) == GF128FromGF32(a).Add(GF128FromGF32(b))
		},
		genGF32(), genGF32(),
	))
	properties.Property("lifted inverses agree", prop.ForAll(
		func(a GF32) bool {
			if a.IsZero() {
				return true
			}
			return GF128FromGF32(a.Inverse()) == GF128FromGF32(a).Inverse()
		},
		genGF32(),
	))
	properties.Property("FromBits below 2^32 agrees with the lift", prop.ForAll(
		func(v uint32) bool {
			return GF64{}.FromBits(uint64(v)) == GF64FromGF32(GF32(v)) &&
				GF128{}.FromBits(uint64(v)) == GF128FromGF32(GF32(v))
		},
		gen.UInt32(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestGF128CBORRoundTrip(t *testing.T) {
	for _, v := range []GF128{
		{},
		GF128{}.One(),
		{Lo: GF64{Lo: 0xdeadbeef, Hi: 0x12345678}, Hi: GF64{Lo: 1, Hi: 0x8299}},
	} {
		raw, err := v.MarshalCBOR()
		require.NoError(t, err)
		var back GF128
		require.NoError(t, back.UnmarshalCBOR(raw))
		require.Equal(t, v, back)
	}
}

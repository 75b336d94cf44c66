// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package binaryfield

import "fmt"

// GF64 is an element of GF(2^64), realized as the quadratic extension
// GF(2^32)[z] / (z² + z + x^17). Lo is the constant coefficient, Hi the z
// coefficient. x^17 has trace one over GF(2^32), so the modulus is
// irreducible.
type GF64 struct {
	Lo, Hi GF32
}

func (GF64) Zero() GF64 { return GF64{} }
func (GF64) One() GF64  { return GF64{Lo: 1} }

func (z GF64) IsZero() bool { return z == GF64{} }

// Add returns z + x.
func (z GF64) Add(x GF64) GF64 {
	return GF64{Lo: z.Lo ^ x.Lo, Hi: z.Hi ^ x.Hi}
}

// Mul returns z·x: three GF32 multiplications (Karatsuba) plus the
// reduction z² = z + x^17.
func (z GF64) Mul(x GF64) GF64 {
	m0 := z.Lo.Mul(x.Lo)
	m1 := z.Hi.Mul(x.Hi)
	m2 := (z.Lo ^ z.Hi).Mul(x.Lo ^ x.Hi)
	return GF64{
		Lo: m0 ^ gf32Gen.Mul(m1),
		Hi: m2 ^ m0,
	}
}

// Square returns z². Squaring is linear in characteristic 2, so the cross
// term vanishes: (a + bz)² = a² + x^17·b² + b²z.
func (z GF64) Square() GF64 {
	s1 := z.Hi.Square()
	return GF64{Lo: z.Lo.Square() ^ gf32Gen.Mul(s1), Hi: s1}
}

// Inverse descends to one GF32 inversion through the norm:
// (a + bz)⁻¹ = (a + b + bz) / (a² + ab + x^17·b²).
func (z GF64) Inverse() GF64 {
	if z.IsZero() {
		panic("binaryfield: inverse of zero in GF(2^64)")
	}
	n := z.Lo.Square() ^ z.Lo.Mul(z.Hi) ^ gf32Gen.Mul(z.Hi.Square())
	nInv := n.Inverse()
	return GF64{Lo: (z.Lo ^ z.Hi).Mul(nInv), Hi: z.Hi.Mul(nInv)}
}

// Div returns z/x. Panics if x is zero.
func (z GF64) Div(x GF64) GF64 {
	if x.IsZero() {
		panic("binaryfield: division by zero in GF(2^64)")
	}
	return z.Mul(x.Inverse())
}

// Pow returns z^e by square-and-multiply.
func (z GF64) Pow(e uint64) GF64 {
	r, b := GF64{Lo: 1}, z
	for ; e != 0; e >>= 1 {
		if e&1 != 0 {
			r = r.Mul(b)
		}
		b = b.Square()
	}
	return r
}

// FromBits splits v into two 32-bit limbs. Linearity over GF(2) carries over
// limb-wise, and values below 2^32 agree with GF64FromGF32 of the GF32
// pattern.
func (GF64) FromBits(v uint64) GF64 {
	return GF64{Lo: GF32(v), Hi: GF32(v >> 32)}
}

// Bits returns the raw bit pattern of z.
func (z GF64) Bits() uint64 {
	return uint64(z.Lo) | uint64(z.Hi)<<32
}

// ByteLen returns the serialized size, 8 bytes.
func (GF64) ByteLen() int { return 8 }

// AppendBytes appends the little-endian encoding of z to buf, low limb
// first.
func (z GF64) AppendBytes(buf []byte) []byte {
	buf = z.Lo.AppendBytes(buf)
	return z.Hi.AppendBytes(buf)
}

// FromBytes decodes a little-endian element from the first 8 bytes of data.
func (GF64) FromBytes(data []byte) GF64 {
	return GF64{
		Lo: GF32(0).FromBytes(data),
		Hi: GF32(0).FromBytes(data[4:]),
	}
}

func (z GF64) String() string {
	return fmt.Sprintf("0x%016x", z.Bits())
}

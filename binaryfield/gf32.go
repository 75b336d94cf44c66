// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package binaryfield

import (
	"encoding/binary"
	"fmt"
)

// GF32 is an element of GF(2^32) reduced by
// x^32 + x^15 + x^9 + x^7 + x^4 + x^3 + 1.
type GF32 uint32

// x^17 is a trace-one element of GF(2^32), which makes z² + z + x^17
// irreducible; GF64 adjoins its root. gf32GenSq is x^34 reduced.
const (
	gf32Gen   GF32 = 1 << 17
	gf32GenSq GF32 = 0x20a64
)

func (GF32) Zero() GF32 { return 0 }
func (GF32) One() GF32  { return 1 }

func (z GF32) IsZero() bool { return z == 0 }

// Add returns z + x. Addition in characteristic 2 is XOR.
func (z GF32) Add(x GF32) GF32 { return z ^ x }

// Mul returns z·x: the 64-bit carryless product of the bit patterns, folded
// back below bit 32.
func (z GF32) Mul(x GF32) GF32 {
	var p uint64
	a := uint64(z)
	for b := uint64(x); b != 0; b >>= 1 {
		if b&1 != 0 {
			p ^= a
		}
		a <<= 1
	}
	return gf32Reduce(p)
}

// gf32Fold multiplies hi by the reduction polynomial's low part
// x^15 + x^9 + x^7 + x^4 + x^3 + 1.
func gf32Fold(hi uint64) uint64 {
	return hi<<15 ^ hi<<9 ^ hi<<7 ^ hi<<4 ^ hi<<3 ^ hi
}

// gf32Reduce reduces a 64-bit carryless product using x^32 ≡ gf32Fold(1).
// The first fold leaves at most 48 bits, so two folds always suffice.
func gf32Reduce(p uint64) GF32 {
	p = p&0xffffffff ^ gf32Fold(p>>32)
	p = p&0xffffffff ^ gf32Fold(p>>32)
	return GF32(p)
}

// Square returns z². The carryless square of a bit pattern interleaves its
// bits with zeros, so squaring skips the product loop.
func (z GF32) Square() GF32 {
	return gf32Reduce(spread32(uint32(z)))
}

// spread32 moves bit i of x to bit 2i.
func spread32(x uint32) uint64 {
	v := uint64(x)
	v = (v | v<<16) & 0x0000ffff0000ffff
	v = (v | v<<8) & 0x00ff00ff00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f0f0f0f0f
	v = (v | v<<2) & 0x3333333333333333
	v = (v | v<<1) & 0x5555555555555555
	return v
}

// Inverse returns z⁻¹ by Fermat: z^(2^32−2) as a fixed square-and-multiply
// chain. Inverting zero is a programmer error and panics.
func (z GF32) Inverse() GF32 {
	if z == 0 {
		panic("binaryfield: inverse of zero in GF(2^32)")
	}
	t, r := z, GF32(1)
	for i := 1; i < 32; i++ {
		t = t.Square()
		r = r.Mul(t)
	}
	return r
}

// Div returns z/x. Panics if x is zero.
func (z GF32) Div(x GF32) GF32 {
	if x == 0 {
		panic("binaryfield: division by zero in GF(2^32)")
	}
	return z.Mul(x.Inverse())
}

// Pow returns z^e by square-and-multiply.
func (z GF32) Pow(e uint64) GF32 {
	r, b := GF32(1), z
	for ; e != 0; e >>= 1 {
		if e&1 != 0 {
			r = r.Mul(b)
		}
		b = b.Square()
	}
	return r
}

// FromBits returns the element whose coefficient vector is the low 32 bits
// of v. FromBits is GF(2)-linear; the additive-FFT domain indexing relies on
// exactly that.
func (GF32) FromBits(v uint64) GF32 { return GF32(v) }

// Bits returns the raw bit pattern of z.
func (z GF32) Bits() uint64 { return uint64(z) }

// ByteLen returns the serialized size, 4 bytes.
func (GF32) ByteLen() int { return 4 }

// AppendBytes appends the little-endian encoding of z to buf.
func (z GF32) AppendBytes(buf []byte) []byte {
	return binary.LittleEndian.AppendUint32(buf, uint32(z))
}

// FromBytes decodes a little-endian element from the first 4 bytes of data.
func (GF32) FromBytes(data []byte) GF32 {
	return GF32(binary.LittleEndian.Uint32(data))
}

func (z GF32) String() string {
	return fmt.Sprintf("0x%08x", uint32(z))
}

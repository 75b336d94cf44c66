// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package binaryfield

import (
	"encoding/binary"
	"fmt"
)

// GF16 is an element of GF(2^16) reduced by x^16 + x^5 + x^3 + x^2 + 1.
type GF16 uint16

func (GF16) Zero() GF16 { return 0 }
func (GF16) One() GF16  { return 1 }

func (z GF16) IsZero() bool { return z == 0 }

// Add returns z + x. Addition in characteristic 2 is XOR.
func (z GF16) Add(x GF16) GF16 { return z ^ x }

// Mul returns z·x: the 32-bit carryless product of the bit patterns, folded
// back below bit 16.
func (z GF16) Mul(x GF16) GF16 {
	var p uint32
	a := uint32(z)
	for b := uint32(x); b != 0; b >>= 1 {
		if b&1 != 0 {
			p ^= a
		}
		a <<= 1
	}
	return gf16Reduce(p)
}

// gf16Fold multiplies hi by the reduction polynomial's low part
// x^5 + x^3 + x^2 + 1.
func gf16Fold(hi uint32) uint32 {
	return hi<<5 ^ hi<<3 ^ hi<<2 ^ hi
}

// gf16Reduce reduces a 32-bit carryless product using x^16 ≡ gf16Fold(1).
func gf16Reduce(p uint32) GF16 {
	p = p&0xffff ^ gf16Fold(p>>16)
	p = p&0xffff ^ gf16Fold(p>>16)
	return GF16(p)
}

// Square returns z² via the zero-interleaved bit pattern.
func (z GF16) Square() GF16 {
	v := uint32(z)
	v = (v | v<<8) & 0x00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return gf16Reduce(v)
}

// Inverse returns z⁻¹ by Fermat: z^(2^16−2). Inverting zero is a programmer
// error and panics.
func (z GF16) Inverse() GF16 {
	if z == 0 {
		panic("binaryfield: inverse of zero in GF(2^16)")
	}
	t, r := z, GF16(1)
	for i := 1; i < 16; i++ {
		t = t.Square()
		r = r.Mul(t)
	}
	return r
}

// Div returns z/x. Panics if x is zero.
func (z GF16) Div(x GF16) GF16 {
	if x == 0 {
		panic("binaryfield: division by zero in GF(2^16)")
	}
	return z.Mul(x.Inverse())
}

// Pow returns z^e by square-and-multiply.
func (z GF16) Pow(e uint64) GF16 {
	r, b := GF16(1), z
	for ; e != 0; e >>= 1 {
		if e&1 != 0 {
			r = r.Mul(b)
		}
		b = b.Square()
	}
	return r
}

// FromBits returns the element whose coefficient vector is the low 16 bits
// of v.
func (GF16) FromBits(v uint64) GF16 { return GF16(v) }

// Bits returns the raw bit pattern of z.
func (z GF16) Bits() uint64 { return uint64(z) }

// ByteLen returns the serialized size, 2 bytes.
func (GF16) ByteLen() int { return 2 }

// AppendBytes appends the little-endian encoding of z to buf.
func (z GF16) AppendBytes(buf []byte) []byte {
	return binary.LittleEndian.AppendUint16(buf, uint16(z))
}

// FromBytes decodes a little-endian element from the first 2 bytes of data.
func (GF16) FromBytes(data []byte) GF16 {
	return GF16(binary.LittleEndian.Uint16(data))
}

func (z GF16) String() string {
	return fmt.Sprintf("0x%04x", uint16(z))
}

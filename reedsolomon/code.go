// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package reedsolomon

import (
	"fmt"

	"github.com/consensys/ligerito/binaryfield"
)

// Code is a Reed-Solomon code of message length 2^k and block length 2^n over
// the field E, with precomputed FFT twiddles for the evaluation domain
// {0, 1, ..., 2^n - 1}. A Code is immutable after construction and safe for
// concurrent use.
type Code[E binaryfield.Element[E]] struct {
	logMessageLen int
	logBlockLen   int
	twiddles      []E
}

// NewCode builds a Code with the given message and block lengths. Both must
// be powers of two and messageLen must be strictly smaller than blockLen.
func NewCode[E binaryfield.Element[E]](messageLen, blockLen int) *Code[E] {
	if messageLen <= 0 || messageLen&(messageLen-1) != 0 {
		panic(fmt.Sprintf("reedsolomon: message length %d is not a power of two", messageLen))
	}
	if blockLen <= 0 || blockLen&(blockLen-1) != 0 {
		panic(fmt.Sprintf("reedsolomon: block length %d is not a power of two", blockLen))
	}
	if messageLen >= blockLen {
		panic(fmt.Sprintf("reedsolomon: message length %d must be smaller than block length %d", messageLen, blockLen))
	}

	var beta E
	c := &Code[E]{}
	for 1<<c.logMessageLen < messageLen {
		c.logMessageLen++
	}
	for 1<<c.logBlockLen < blockLen {
		c.logBlockLen++
	}
	c.twiddles = ComputeTwiddles[E](c.logBlockLen, beta)
	return c
}

// MessageLen returns the number of message symbols 2^k.
func (c *Code[E]) MessageLen() int { return 1 << c.logMessageLen }

// BlockLen returns the codeword length 2^n.
func (c *Code[E]) BlockLen() int { return 1 << c.logBlockLen }

// LogMessageLen returns k.
func (c *Code[E]) LogMessageLen() int { return c.logMessageLen }

// LogBlockLen returns n.
func (c *Code[E]) LogBlockLen() int { return c.logBlockLen }

// Encode returns the codeword of msg. len(msg) must not exceed MessageLen;
// shorter messages are implicitly zero-padded.
func (c *Code[E]) Encode(msg []E) []E {
	if len(msg) > c.MessageLen() {
		panic(fmt.Sprintf("reedsolomon: message length %d exceeds %d", len(msg), c.MessageLen()))
	}
	v := make([]E, c.BlockLen())
	copy(v, msg)
	c.EncodeInPlace(v)
	return v
}

// EncodeInPlace encodes a full block buffer in place. len(v) must equal
// BlockLen; v[:MessageLen] holds the message symbols and the remainder must
// be zero on entry.
func (c *Code[E]) EncodeInPlace(v []E) {
	if len(v) != c.BlockLen() {
		panic(fmt.Sprintf("reedsolomon: buffer length %d does not match block length %d", len(v), c.BlockLen()))
	}
	FFT(v, c.twiddles)
}

// EncodeInPlaceParallel is EncodeInPlace with a fork-join FFT. It is worth
// using only when few encodes run at a time; callers encoding many blocks
// should spread the blocks across goroutines and use EncodeInPlace.
func (c *Code[E]) EncodeInPlaceParallel(v []E) {
	if len(v) != c.BlockLen() {
		panic(fmt.Sprintf("reedsolomon: buffer length %d does not match block length %d", len(v), c.BlockLen()))
	}
	FFTParallel(v, c.twiddles)
}

// Twiddles returns the FFT twiddle table of the evaluation domain. The
// returned slice is shared and must not be modified.
func (c *Code[E]) Twiddles() []E { return c.twiddles }

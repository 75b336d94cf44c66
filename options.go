// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ligerito

import (
	"crypto/sha256"
	"errors"
	"hash"
	"runtime"

	"github.com/consensys/ligerito/merkle"
)

// Option configures a Prove or Verify call. Transcript-affecting options
// (seed and hash function) must be identical on both sides for a proof to
// verify.
type Option func(*options) error

type options struct {
	seed    int32
	newHash func() hash.Hash
	nbTasks int
}

func defaultOptions() options {
	return options{
		seed:    defaultTranscriptSeed,
		newHash: sha256.New,
		nbTasks: runtime.GOMAXPROCS(0),
	}
}

func newOptions(opts ...Option) (options, error) {
	opt := defaultOptions()
	for _, o := range opts {
		if err := o(&opt); err != nil {
			return options{}, err
		}
	}
	return opt, nil
}

// defaultTranscriptSeed is the transcript domain seed used when no
// WithTranscriptSeed option is given.
const defaultTranscriptSeed int32 = 1234

// WithTranscriptSeed overrides the Fiat-Shamir transcript seed.
func WithTranscriptSeed(seed int32) Option {
	return func(opt *options) error {
		opt.seed = seed
		return nil
	}
}

// WithHashFunction overrides the hash used for Merkle commitments and the
// transcript. The hash must produce 32-byte digests, e.g. sha256.New or
// sha3.New256.
func WithHashFunction(newHash func() hash.Hash) Option {
	return func(opt *options) error {
		if newHash == nil {
			return errors.New("ligerito: nil hash constructor")
		}
		if newHash().Size() != merkle.DigestSize {
			return errors.New("ligerito: hash function must produce 32-byte digests")
		}
		opt.newHash = newHash
		return nil
	}
}

// WithNbTasks sets the number of goroutines used by the parallel phases of
// proving and verification. Results do not depend on it. Defaults to
// GOMAXPROCS.
func WithNbTasks(nbTasks int) Option {
	return func(opt *options) error {
		if nbTasks < 1 || nbTasks > 512 {
			return errors.New("ligerito: nbTasks must be in [1, 512]")
		}
		opt.nbTasks = nbTasks
		return nil
	}
}

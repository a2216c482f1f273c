// Package rng implements ports.RNGPort on top of math/rand/v2 PCG streams.
package rng

import (
	"context"
	"fmt"
	"math/rand/v2"

	"koistat/ports"
)

// Seeded derives independent, reproducible PCG streams from a name and seed.
type Seeded struct{}

var _ ports.RNGPort = (*Seeded)(nil)

// NewSeeded returns the deterministic RNG adapter.
func NewSeeded() *Seeded {
	return &Seeded{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *Seeded) SeededStream(ctx context.Context, name string, seed uint64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewPCG(seed, uint64(hashString(name)))), nil
}

// Stream mixes every non-empty component into the stream selector so that
// two workers of the same stage never share a sequence.
func (r *Seeded) Stream(ctx context.Context, runID, stageName, key string, baseSeed uint64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selector := uint64(5381)
	for _, part := range []string{runID, stageName, key} {
		if part != "" {
			selector = selector*31 + uint64(hashString(part))
		}
	}
	return rand.New(rand.NewPCG(baseSeed, selector)), nil
}

// ValidateSeed regenerates the first len(expected) Float64 draws of the named
// stream and reports the first divergence.
func (r *Seeded) ValidateSeed(ctx context.Context, name string, seed uint64, expected []float64) error {
	stream, err := r.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		if got := stream.Float64(); got != want {
			return fmt.Errorf("seed %d for %q diverged at draw %d: got %v, want %v", seed, name, i, got, want)
		}
	}
	return nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}

// Package sequencer implements the stateful, single-writer service that
// accepts on-ramp and payment proofs, appends the resulting note
// commitments to its authoritative Merkle tree, and forwards each request's
// proof bundle to the verifier (§4.9, §5.1, §5.2).
package sequencer

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sanctum-labs/sanctum/internal/zkp"
	"github.com/sanctum-labs/sanctum/pkg/types"
)

// State is the sequencer's full in-process state: the authoritative Merkle
// tree, the spent-nullifier set, and the compiled Groth16 statements. A
// single mutex is held by each request handler from proof verification
// through its local state mutation, matching the coarse-lock concurrency
// model required by §4.9: requests are
// served strictly FIFO in lock-acquisition order, and the lock is always
// released before any downstream HTTP call to the verifier.
type State struct {
	mu sync.Mutex

	Tree       *zkp.FullTree
	Nullifiers NullifierStore
	Circuits   *zkp.CircuitDriver
	Commitment zkp.CommitmentScheme

	NumCoins uint64

	Log *logrus.Logger
}

// NullifierStore records which nullifiers have already been spent. The
// sequencer's own copy exists so it can reject a double-spend locally before
// ever building a proof bundle to forward.
type NullifierStore interface {
	IsSpent(ctx context.Context, nullifier types.Hash) (bool, error)
	MarkSpent(ctx context.Context, nullifier types.Hash, position uint64) error
}

// Lock acquires the coarse request lock. Callers must call the returned
// unlock func exactly once, and must do so before making any downstream
// HTTP call (§4.9's ordering requirement).
func (s *State) Lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

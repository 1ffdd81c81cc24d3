// Package verifier implements the stateless-but-for-roots service that
// double-checks every proof bundle the sequencer forwards and ratchets its
// own root history forward on success (§4.10, §5.1, §5.2). Unlike the
// sequencer it never holds note data: just enough Merkle state to know
// which roots a Payment proof may legally be built against.
package verifier

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sanctum-labs/sanctum/internal/zkp"
)

// State is the verifier's process-wide state: compiled verifying keys and a
// frontier tree used purely for its root-history ring. The same coarse
// lock-for-the-whole-request discipline as the sequencer applies (§4.9).
type State struct {
	mu sync.Mutex

	Circuits *zkp.CircuitDriver
	Frontier *zkp.FrontierTree

	Log *logrus.Logger
}

// NewState constructs verifier state over an already-compiled CircuitDriver
// and a frontier tree of the deployment's fixed depth.
func NewState(circuits *zkp.CircuitDriver, treeDepth int, log *logrus.Logger) *State {
	return &State{
		Circuits: circuits,
		Frontier: zkp.NewFrontierTree(treeDepth),
		Log:      log,
	}
}

// Lock acquires the coarse request lock.
func (s *State) Lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// Package contract implements the on-chain payment contract's state
// machine in Go: the frontier Merkle tree, root history, and spent-nullifier
// set that would in production live behind a real L1/L2 runtime (§6). It is
// the thing a real contract binding would wrap; neither the sequencer nor the
// verifier calls it.
package contract

import (
	"sync"

	"github.com/sanctum-labs/sanctum/internal/zkp"
	"github.com/sanctum-labs/sanctum/pkg/types"
)

// ErrorCode is the contract's normative error taxonomy (§6).
type ErrorCode uint32

const (
	_ ErrorCode = iota
	ErrContractUninitialized
	ErrIllegalContractCall
	ErrDuplicateNullifier
	ErrUnknownRoot
)

// Error wraps an ErrorCode so callers can match on it with errors.As while
// still getting a readable message.
type Error struct {
	Code ErrorCode
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrContractUninitialized:
		return "contract: uninitialized"
	case ErrIllegalContractCall:
		return "contract: illegal call"
	case ErrDuplicateNullifier:
		return "contract: duplicate nullifier"
	case ErrUnknownRoot:
		return "contract: unknown root"
	default:
		return "contract: unknown error"
	}
}

// Levels is the contract's fixed Merkle tree depth. Deployment-wide and
// distinct from the off-chain services' depth (§3, §9): an on-chain
// deployment favors a deeper tree since it is not reconstructed from
// scratch on every restart the way the sequencer's full tree might be.
const Levels = 15

// Contract is the in-process analogue of the deployed payment contract: its
// storage is the frontier tree's Z/S/R tables plus a nullifier set, and its
// entry points mirror initialize/insert/record_nullifier exactly (§6).
type Contract struct {
	mu sync.Mutex

	initialized bool
	frontier    *zkp.FrontierTree
	nullifiers  map[types.Hash]struct{}
}

// New returns an uninitialized contract. Initialize must be called before
// any other entry point.
func New() *Contract {
	return &Contract{nullifiers: make(map[types.Hash]struct{})}
}

// Initialize sets up the empty-tree state. Calling it twice is an illegal
// call (§6): deployments initialize exactly once.
func (c *Contract) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return &Error{Code: ErrIllegalContractCall}
	}
	c.frontier = zkp.NewFrontierTree(Levels)
	c.initialized = true
	return nil
}

// Insert appends leaf to the tree, returning the index it was written to.
func (c *Contract) Insert(leaf types.Hash) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return 0, &Error{Code: ErrContractUninitialized}
	}

	position, err := c.frontier.Insert(leaf)
	if err != nil {
		return 0, err
	}
	return uint32(position), nil
}

// RecordNullifier records nullifier as spent, rejecting a repeat with
// ErrDuplicateNullifier (§6).
func (c *Contract) RecordNullifier(nullifier types.Hash) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return &Error{Code: ErrContractUninitialized}
	}
	if _, exists := c.nullifiers[nullifier]; exists {
		return &Error{Code: ErrDuplicateNullifier}
	}
	c.nullifiers[nullifier] = struct{}{}
	return nil
}

// IsKnownRoot reports whether root is within the contract's rolling root
// history window, used to accept a Payment proof built against a root a few
// inserts in the past (§6).
func (c *Contract) IsKnownRoot(root types.Hash) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return false, &Error{Code: ErrContractUninitialized}
	}
	if !c.frontier.IsKnownRoot(root) {
		return false, &Error{Code: ErrUnknownRoot}
	}
	return true, nil
}

// CurrentRoot returns the most recently inserted root.
func (c *Contract) CurrentRoot() (types.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return types.Hash{}, &Error{Code: ErrContractUninitialized}
	}
	return c.frontier.CurrentRoot(), nil
}

// Payment validates a spend against the contract's own state (root
// freshness, nullifier uniqueness) and, on success, records the nullifier
// and inserts the new output commitment. It performs no proof verification
// of its own; callers that hold a verified bundle call this directly, and
// PaymentWithProof below is the entry point that verifies first (§6, §9).
func (c *Contract) Payment(root, nullifier, newLeaf types.Hash) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paymentLocked(root, nullifier, newLeaf)
}

func (c *Contract) paymentLocked(root, nullifier, newLeaf types.Hash) (uint32, error) {
	if !c.initialized {
		return 0, &Error{Code: ErrContractUninitialized}
	}
	if _, exists := c.nullifiers[nullifier]; exists {
		return 0, &Error{Code: ErrDuplicateNullifier}
	}
	if !c.frontier.IsKnownRoot(root) {
		return 0, &Error{Code: ErrUnknownRoot}
	}

	c.nullifiers[nullifier] = struct{}{}
	position, err := c.frontier.Insert(newLeaf)
	if err != nil {
		return 0, err
	}
	return uint32(position), nil
}

// PaymentWithProof is the entry point a real deployment should expose to a
// client transaction: it verifies the Payment statement's Groth16 proof
// against (root, nullifier, newLeaf) before touching any state, closing the
// gap the design notes flag — the source's payment() left a `// TODO: verify
// the zk proof` with state mutation unconditional (§9). A failed proof
// leaves the contract's state untouched.
func (c *Contract) PaymentWithProof(driver *zkp.CircuitDriver, proofBytes []byte, root, nullifier, newLeaf types.Hash) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return 0, &Error{Code: ErrContractUninitialized}
	}

	public := zkp.NewPaymentPublicWitness([]types.Hash{root, nullifier, newLeaf})
	ok, err := driver.Verify(zkp.StatementPayment, proofBytes, public)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &Error{Code: ErrIllegalContractCall}
	}

	return c.paymentLocked(root, nullifier, newLeaf)
}

package zkp

import (
	"errors"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// ErrUnknownRoot is returned when a MerkleUpdate's old root is not the
// frontier's current root (contract error code UnknownRoot = 4, §6).
var ErrUnknownRoot = errors.New("zkp: old root is not the current root")

// FrontierTree is the light append-only accumulator the verifier and the
// on-chain contract keep: no full leaf vector, just the empty-subtree table
// Z, the filled-left-sibling table S, and a ring buffer of the last
// RootHistorySize roots (§3). It tracks only enough state to accept the next
// append and to check whether a presented root is recent.
type FrontierTree struct {
	depth int

	// zero holds Z[0..depth]: the root of an empty subtree of each height.
	zero []types.Hash

	// filled holds S[0..depth): the last inserted node at each level that
	// is still waiting for a right sibling, i.e. the frontier.
	filled []types.Hash

	// roots is the ring buffer of the last RootHistorySize roots.
	roots [types.RootHistorySize]types.Hash

	// rootIndex is the index of the most recently written root in roots.
	rootIndex uint32

	nextIndex uint64
}

// NewFrontierTree constructs an empty frontier of the given depth, with the
// root-history ring seeded with the empty tree's root.
func NewFrontierTree(depth int) *FrontierTree {
	zero := make([]types.Hash, depth+1)
	for i := range zero {
		zero[i] = emptySubtreeHash(i)
	}

	f := &FrontierTree{
		depth:  depth,
		zero:   zero,
		filled: make([]types.Hash, depth),
	}
	f.roots[0] = zero[depth]
	return f
}

// CurrentRoot returns the most recently inserted root.
func (f *FrontierTree) CurrentRoot() types.Hash {
	return f.roots[f.rootIndex]
}

// NextIndex returns the position the next Insert will occupy.
func (f *FrontierTree) NextIndex() uint64 {
	return f.nextIndex
}

// IsKnownRoot reports whether root appears anywhere in the last
// RootHistorySize roots written, so a proof built against a root that has
// since been superseded by a few blocks' worth of inserts still verifies.
func (f *FrontierTree) IsKnownRoot(root types.Hash) bool {
	if root.IsEmpty() {
		return false
	}
	for i := 0; i < types.RootHistorySize; i++ {
		if f.roots[i] == root {
			return true
		}
	}
	return false
}

// Insert appends leaf at the next free position, folding it up the frontier
// and pushing the resulting root onto the history ring. It returns the
// position the leaf was written to.
func (f *FrontierTree) Insert(leaf types.Hash) (uint64, error) {
	maxLeaves := uint64(1) << uint(f.depth)
	if f.nextIndex >= maxLeaves {
		return 0, ErrTreeFull
	}

	position := f.nextIndex
	current := leaf
	index := position

	for level := 0; level < f.depth; level++ {
		if index%2 == 0 {
			// Left child: this node becomes the new frontier entry at this
			// level, waiting for a right sibling.
			f.filled[level] = current
			current = hashPair(current, f.zero[level])
		} else {
			// Right child: the frontier holds our left sibling.
			current = hashPair(f.filled[level], current)
		}
		index /= 2
	}

	f.nextIndex++
	f.rootIndex = (f.rootIndex + 1) % types.RootHistorySize
	f.roots[f.rootIndex] = current

	return position, nil
}

// VerifyUpdate checks that a MerkleUpdate proof's claimed (leafIndex,
// oldRoot) is consistent with this frontier's current state: the update must
// target the next free slot and must build on the current root (the empty
// tree's root, for the very first insert). An older root still inside the
// history window is rejected, so successive updates chain root to root.
func (f *FrontierTree) VerifyUpdate(leafIndex uint64, oldRoot, newRoot types.Hash) error {
	if leafIndex != f.nextIndex {
		return ErrInvalidPosition
	}
	if oldRoot != f.CurrentRoot() {
		return ErrUnknownRoot
	}
	_ = newRoot // bound to oldRoot and leafIndex by the MerkleUpdate proof the caller verifies
	return nil
}

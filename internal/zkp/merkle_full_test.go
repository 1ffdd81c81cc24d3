package zkp

import (
	"context"
	"testing"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

func leafHash(b byte) types.Hash {
	return types.HashFromBytes([]byte{b})
}

// TestEmptySubtreeRecurrence exercises P7: Z[i] = H(Z[i-1] || Z[i-1]).
func TestEmptySubtreeRecurrence(t *testing.T) {
	for i := 1; i <= 8; i++ {
		prev := emptySubtreeHash(i - 1)
		want := hashPair(prev, prev)
		got := emptySubtreeHash(i)
		if got != want {
			t.Fatalf("Z[%d] does not satisfy the recurrence", i)
		}
	}
}

func TestFullTreeAppendAdvancesRoot(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTreeStore()
	tree := NewFullTree(store, 4)
	if err := tree.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	emptyRoot := tree.Root()

	_, newPath, position, err := tree.Append(ctx, leafHash(1))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if position != 0 {
		t.Fatalf("first append should land at position 0, got %d", position)
	}
	if tree.Root() == emptyRoot {
		t.Fatal("root did not change after appending a leaf")
	}
	if !VerifyPath(newPath, tree.Root()) {
		t.Fatal("returned path does not fold up to the new root")
	}
}

func TestFullTreeAppendRejectsWhenFull(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTreeStore()
	tree := NewFullTree(store, 1) // capacity 2
	if err := tree.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, _, _, err := tree.Append(ctx, leafHash(1)); err != nil {
		t.Fatalf("Append 1: %v", err)
	}
	if _, _, _, err := tree.Append(ctx, leafHash(2)); err != nil {
		t.Fatalf("Append 2: %v", err)
	}
	if _, _, _, err := tree.Append(ctx, leafHash(3)); err != ErrTreeFull {
		t.Fatalf("expected ErrTreeFull, got %v", err)
	}
}

func TestFullTreeUpdateProducesConsistentOldAndNewOpenings(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTreeStore()
	tree := NewFullTree(store, 3)
	if err := tree.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, _, _, err := tree.Append(ctx, leafHash(1))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	oldPath, newPath, err := tree.Update(ctx, 0, leafHash(2))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if FoldPath(oldPath) == FoldPath(newPath) {
		t.Fatal("updating a leaf did not change the folded root")
	}
	if !VerifyPath(newPath, tree.Root()) {
		t.Fatal("post-update path does not verify against the tree's current root")
	}
}

// TestEmptySubtreeBaseCaseHashesTheZeroLeaf exercises Z[0] = H(0^32), not the
// raw zero bytes.
func TestEmptySubtreeBaseCaseHashesTheZeroLeaf(t *testing.T) {
	if emptySubtreeHash(0) == types.EmptyHash {
		t.Fatal("Z[0] should be the hash of the zero leaf, not the zero bytes themselves")
	}
	if got, want := emptySubtreeHash(0), emptyLeafHash(); got != want {
		t.Fatalf("Z[0] = %x, want H(0^32) = %x", got, want)
	}
}

// TestFullTreeProofRejectsOutOfRangePosition exercises P-MERKLE's "proof(k)
// on out-of-range k is fatal" for both an unwritten-but-in-capacity index and
// an index beyond the tree's depth.
func TestFullTreeProofRejectsOutOfRangePosition(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTreeStore()
	tree := NewFullTree(store, 2) // capacity 4
	if err := tree.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, _, err := tree.Append(ctx, leafHash(1)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if _, err := tree.Proof(ctx, 1); err != ErrLeafNotFound {
		t.Fatalf("Proof(1) on an unwritten leaf = %v, want ErrLeafNotFound", err)
	}
	if _, err := tree.Proof(ctx, 4); err != ErrInvalidPosition {
		t.Fatalf("Proof(4) beyond capacity = %v, want ErrInvalidPosition", err)
	}
	if _, err := tree.Proof(ctx, 0); err != nil {
		t.Fatalf("Proof(0) on a written leaf: %v", err)
	}
}

// TestFullTreeUpdateRejectsOutOfRangePosition exercises P-MERKLE's "update
// out-of-range is fatal".
func TestFullTreeUpdateRejectsOutOfRangePosition(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTreeStore()
	tree := NewFullTree(store, 2) // capacity 4
	if err := tree.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, _, err := tree.Update(ctx, 0, leafHash(1)); err != ErrLeafNotFound {
		t.Fatalf("Update(0) before any append = %v, want ErrLeafNotFound", err)
	}
	if _, _, err := tree.Update(ctx, 4, leafHash(1)); err != ErrInvalidPosition {
		t.Fatalf("Update(4) beyond capacity = %v, want ErrInvalidPosition", err)
	}
}

// TestFullTreeMatchesFrontierRoot exercises P4: the frontier-computed root
// equals the full tree's root after the same sequence of inserts.
func TestFullTreeMatchesFrontierRoot(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTreeStore()
	full := NewFullTree(store, 4)
	if err := full.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	frontier := NewFrontierTree(4)

	leaves := []types.Hash{leafHash(1), leafHash(2), leafHash(3)}
	for _, leaf := range leaves {
		if _, _, _, err := full.Append(ctx, leaf); err != nil {
			t.Fatalf("full.Append: %v", err)
		}
		if _, err := frontier.Insert(leaf); err != nil {
			t.Fatalf("frontier.Insert: %v", err)
		}
	}

	if full.Root() != frontier.CurrentRoot() {
		t.Fatalf("full tree root %x != frontier root %x", full.Root(), frontier.CurrentRoot())
	}
}

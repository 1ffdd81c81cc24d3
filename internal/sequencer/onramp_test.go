package sequencer

import (
	"context"
	"testing"

	"github.com/sanctum-labs/sanctum/internal/zkp"
	"github.com/sanctum-labs/sanctum/pkg/types"
)

func TestLeafIndexHashRoundTripsLowBytes(t *testing.T) {
	h := leafIndexHash(300)
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(h[i])
	}
	if v != 300 {
		t.Fatalf("leafIndexHash round-trip = %d, want 300", v)
	}
}

func TestRootBeforeAppendFoldsTheOldPath(t *testing.T) {
	ctx := context.Background()
	store := zkp.NewInMemoryTreeStore()
	tree := zkp.NewFullTree(store, 4)
	if err := tree.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	rootBefore := tree.Root()
	oldPath, newPath, _, err := tree.Append(ctx, types.HashFromBytes([]byte("commitment")))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if got := rootBeforeAppend(oldPath, newPath); got != rootBefore {
		t.Fatalf("rootBeforeAppend() = %x, want pre-append root %x", got, rootBefore)
	}
}

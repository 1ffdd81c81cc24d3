package verifier

import (
	"testing"

	"github.com/sanctum-labs/sanctum/internal/zkp"
	"github.com/sanctum-labs/sanctum/pkg/types"
)

func TestHashToUint64RoundTripsLowBytes(t *testing.T) {
	var h types.Hash
	h[0], h[1] = 0x2c, 0x01 // 0x012c == 300, little-endian in the low bytes
	if got := hashToUint64(h); got != 300 {
		t.Fatalf("hashToUint64() = %d, want 300", got)
	}
}

func TestStateLockReturnsAWorkingUnlock(t *testing.T) {
	s := NewState(nil, 4, nil)

	unlock := s.Lock()
	unlock()

	// A second Lock must not deadlock once the first has been released.
	unlock2 := s.Lock()
	unlock2()
}

func TestNewStateBuildsAnEmptyFrontierAtTheRequestedDepth(t *testing.T) {
	s := NewState(nil, 4, nil)
	if s.Frontier == nil {
		t.Fatal("NewState should build a non-nil frontier tree")
	}
	if !s.Frontier.IsKnownRoot(s.Frontier.CurrentRoot()) {
		t.Fatal("a freshly built frontier should recognize its own root")
	}
	if s.Frontier.CurrentRoot() != zkp.NewFrontierTree(4).CurrentRoot() {
		t.Fatal("NewState's frontier root is not the empty root of a depth-4 tree")
	}
}

package contract

import (
	"errors"
	"testing"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

func hashOf(b byte) types.Hash {
	return types.HashFromBytes([]byte{b})
}

// TestInitializeTwiceIsIllegal exercises S1: double initialization is
// rejected with IllegalContractCall.
func TestInitializeTwiceIsIllegal(t *testing.T) {
	c := New()
	if err := c.Initialize(); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	err := c.Initialize()
	var ce *Error
	if !errors.As(err, &ce) || ce.Code != ErrIllegalContractCall {
		t.Fatalf("second Initialize should fail with ErrIllegalContractCall, got %v", err)
	}
}

// TestPaymentAgainstEmptyTreeRootSucceeds exercises S1: the empty tree's own
// root is accepted immediately after initialization.
func TestPaymentAgainstEmptyTreeRootSucceeds(t *testing.T) {
	c := New()
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	root, err := c.CurrentRoot()
	if err != nil {
		t.Fatalf("CurrentRoot: %v", err)
	}
	if _, err := c.Payment(root, hashOf(1), hashOf(2)); err != nil {
		t.Fatalf("Payment against the empty-tree root should succeed, got %v", err)
	}
}

// TestDuplicateNullifierRejected exercises S2.
func TestDuplicateNullifierRejected(t *testing.T) {
	c := New()
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	root, err := c.CurrentRoot()
	if err != nil {
		t.Fatalf("CurrentRoot: %v", err)
	}
	nf := hashOf(1)

	if _, err := c.Payment(root, nf, hashOf(2)); err != nil {
		t.Fatalf("first payment should succeed: %v", err)
	}

	root2, err := c.CurrentRoot()
	if err != nil {
		t.Fatalf("CurrentRoot: %v", err)
	}
	_, err = c.Payment(root2, nf, hashOf(3))
	var ce *Error
	if !errors.As(err, &ce) || ce.Code != ErrDuplicateNullifier {
		t.Fatalf("resubmitting the same nullifier should fail with ErrDuplicateNullifier, got %v", err)
	}
}

// TestUnknownRootRejected exercises S3.
func TestUnknownRootRejected(t *testing.T) {
	c := New()
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	bogusRoot := hashOf(255)
	_, err := c.Payment(bogusRoot, hashOf(1), hashOf(2))
	var ce *Error
	if !errors.As(err, &ce) || ce.Code != ErrUnknownRoot {
		t.Fatalf("payment against an unknown root should fail with ErrUnknownRoot, got %v", err)
	}
}

func TestOperationsBeforeInitializeAreRejected(t *testing.T) {
	c := New()

	_, err := c.Insert(hashOf(1))
	var ce *Error
	if !errors.As(err, &ce) || ce.Code != ErrContractUninitialized {
		t.Fatalf("Insert before Initialize should fail with ErrContractUninitialized, got %v", err)
	}

	_, err = c.Payment(hashOf(1), hashOf(2), hashOf(3))
	if !errors.As(err, &ce) || ce.Code != ErrContractUninitialized {
		t.Fatalf("Payment before Initialize should fail with ErrContractUninitialized, got %v", err)
	}
}

// TestNullifierSetGrowsOneToOneWithAcceptedPayments exercises P2.
func TestNullifierSetGrowsOneToOneWithAcceptedPayments(t *testing.T) {
	c := New()
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	accepted := 0
	for i := byte(0); i < 5; i++ {
		root, err := c.CurrentRoot()
		if err != nil {
			t.Fatalf("CurrentRoot: %v", err)
		}
		if _, err := c.Payment(root, hashOf(i), hashOf(i+100)); err != nil {
			t.Fatalf("payment %d should succeed: %v", i, err)
		}
		accepted++
	}

	if len(c.nullifiers) != accepted {
		t.Fatalf("nullifier set has %d entries, want %d", len(c.nullifiers), accepted)
	}
}

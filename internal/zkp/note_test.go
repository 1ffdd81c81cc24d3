package zkp

import (
	"testing"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

func TestDummyNoteIsDummy(t *testing.T) {
	if !DummyNote().IsDummy() {
		t.Fatal("DummyNote() should report IsDummy() == true")
	}
}

func TestNewNoteIsNotDummy(t *testing.T) {
	ownerKey := types.HashFromBytes([]byte("owner-spending-key"))
	assetID := types.FieldElementFromBytes([]byte{1})

	note, err := NewNote(ownerKey, assetID, 100)
	if err != nil {
		t.Fatalf("NewNote: %v", err)
	}
	if note.IsDummy() {
		t.Fatal("a freshly minted note should not be the dummy placeholder")
	}
	if note.AmountUint64() != 100 {
		t.Fatalf("AmountUint64() = %d, want 100", note.AmountUint64())
	}
}

func TestNewNoteOwnerMatchesDerivedPublicKey(t *testing.T) {
	ownerKey := types.HashFromBytes([]byte("owner-spending-key"))
	assetID := types.FieldElementFromBytes([]byte{1})

	note, err := NewNote(ownerKey, assetID, 1)
	if err != nil {
		t.Fatalf("NewNote: %v", err)
	}
	want := DerivePublicKey(ownerKey)
	if types.FieldElementFromBytes(want[:]) != note.Owner {
		t.Fatal("note.Owner does not match PRF_sk(0)")
	}
}

func TestNoteCommitmentChangesWithAmount(t *testing.T) {
	ownerKey := types.HashFromBytes([]byte("owner-spending-key"))
	assetID := types.FieldElementFromBytes([]byte{1})
	scheme := NewSha256CommitmentScheme()

	noteA, err := NewNote(ownerKey, assetID, 10)
	if err != nil {
		t.Fatalf("NewNote: %v", err)
	}
	cmA, err := noteA.Commitment(scheme)
	if err != nil {
		t.Fatalf("Commitment: %v", err)
	}

	noteB := *noteA
	noteB.Amount = types.FieldElementFromBytes([]byte{20})
	cmB, err := noteB.Commitment(scheme)
	if err != nil {
		t.Fatalf("Commitment: %v", err)
	}

	if cmA.Digest == cmB.Digest {
		t.Fatal("changing the amount field did not change the commitment")
	}
}

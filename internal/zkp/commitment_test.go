package zkp

import (
	"testing"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

func sampleFields() [types.NumNoteFields]types.FieldElement {
	return [types.NumNoteFields]types.FieldElement{
		types.FieldElementFromBytes([]byte{1}),
		types.FieldElementFromBytes([]byte{2}),
		types.FieldElementFromBytes([]byte{3}),
		types.FieldElementFromBytes([]byte{4}),
		types.FieldElementFromBytes([]byte{5}),
	}
}

func TestSha256CommitmentDeterministic(t *testing.T) {
	scheme := NewSha256CommitmentScheme()
	fields := sampleFields()
	blind := types.FieldElementFromBytes([]byte{9})

	a, err := scheme.Commit(fields, blind)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	b, err := scheme.Commit(fields, blind)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if a.Digest != b.Digest {
		t.Fatal("commitment is not deterministic over identical inputs")
	}
}

func TestSha256CommitmentBindingToBlind(t *testing.T) {
	scheme := NewSha256CommitmentScheme()
	fields := sampleFields()

	a, err := scheme.Commit(fields, types.FieldElementFromBytes([]byte{9}))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	b, err := scheme.Commit(fields, types.FieldElementFromBytes([]byte{10}))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if a.Digest == b.Digest {
		t.Fatal("commitment ignored the blind: two different blinds produced the same digest")
	}
}

func TestSha256CommitmentPublicInputsSingleElement(t *testing.T) {
	scheme := NewSha256CommitmentScheme()
	cm, err := scheme.Commit(sampleFields(), types.FieldElement{})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	inputs := cm.PublicInputs(VariantSHA256)
	if len(inputs) != 1 {
		t.Fatalf("SHA-256 variant should expose 1 public input slot, got %d", len(inputs))
	}
}

func TestPedersenCommitmentDeterministicAndBinding(t *testing.T) {
	gens := TrustedSetupPedersenGenerators()
	scheme := NewPedersenCommitmentScheme(gens)
	fields := sampleFields()
	blind := types.FieldElementFromBytes([]byte{7})

	a, err := scheme.Commit(fields, blind)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	b, err := scheme.Commit(fields, blind)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	ax, ay := a.Point.Coordinates()
	bx, by := b.Point.Coordinates()
	if ax != bx || ay != by {
		t.Fatal("Pedersen commitment is not deterministic over identical inputs")
	}

	inputs := a.PublicInputs(VariantPedersen)
	if len(inputs) != 2 {
		t.Fatalf("Pedersen variant should expose 2 public input slots (x, y), got %d", len(inputs))
	}
}

func TestPedersenCommitmentDiffersAcrossFields(t *testing.T) {
	gens := TrustedSetupPedersenGenerators()
	scheme := NewPedersenCommitmentScheme(gens)
	blind := types.FieldElementFromBytes([]byte{7})

	a, err := scheme.Commit(sampleFields(), blind)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	other := sampleFields()
	other[0] = types.FieldElementFromBytes([]byte{99})
	b, err := scheme.Commit(other, blind)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	ax, ay := a.Point.Coordinates()
	bx, by := b.Point.Coordinates()
	if ax == bx && ay == by {
		t.Fatal("changing a note field did not change the Pedersen commitment")
	}
}

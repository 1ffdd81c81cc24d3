package protocol

import (
	"testing"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

func TestGrothProofRoundTrip(t *testing.T) {
	proofBytes := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	publicInputs := []types.Hash{
		types.HashFromBytes([]byte("asset")),
		types.HashFromBytes([]byte("amount")),
		types.HashFromBytes([]byte("commitment")),
	}

	wire := EncodeGrothProof(proofBytes, publicInputs)

	decodedProof, decodedInputs, err := wire.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(decodedProof) != string(proofBytes) {
		t.Fatalf("proof bytes did not round-trip: got %v, want %v", decodedProof, proofBytes)
	}
	if len(decodedInputs) != len(publicInputs) {
		t.Fatalf("got %d public inputs, want %d", len(decodedInputs), len(publicInputs))
	}
	for i := range publicInputs {
		if decodedInputs[i] != publicInputs[i] {
			t.Fatalf("public input %d did not round-trip: got %x, want %x", i, decodedInputs[i], publicInputs[i])
		}
	}
}

func TestGrothProofDecodeRejectsMalformedBase58(t *testing.T) {
	wire := GrothProof{Proof: "not-valid-base58-!!!", PublicInputs: nil}
	if _, _, err := wire.Decode(); err != ErrMalformedEnvelope {
		t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
	}
}

func TestMerklePathEnvelopeRoundTripsThroughJSON(t *testing.T) {
	leaf := types.HashFromBytes([]byte("leaf"))
	siblings := []types.Hash{
		types.HashFromBytes([]byte("sib-0")),
		types.HashFromBytes([]byte("sib-1")),
	}
	root := types.HashFromBytes([]byte("root"))

	wire := EncodeMerklePath(leaf, siblings, 5, root)

	data, err := Marshal(wire)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded VectorCommitmentOpeningProof
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.LeafIndex != 5 {
		t.Fatalf("LeafIndex = %d, want 5", decoded.LeafIndex)
	}
	if len(decoded.AuthPath) != len(siblings) {
		t.Fatalf("AuthPath has %d entries, want %d", len(decoded.AuthPath), len(siblings))
	}
	if decoded.LeafValue != wire.LeafValue || decoded.Root != wire.Root {
		t.Fatal("leaf/root strings did not round-trip through JSON")
	}
}

func TestUnmarshalRejectsMalformedJSON(t *testing.T) {
	var envelope OnRampEnvelope
	if err := Unmarshal([]byte("{not json"), &envelope); err != ErrMalformedEnvelope {
		t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
	}
}

func TestOnRampEnvelopeRoundTripsThroughJSON(t *testing.T) {
	onramp := EncodeGrothProof([]byte{1, 2, 3}, []types.Hash{types.HashFromBytes([]byte("a"))})
	merkle := EncodeGrothProof([]byte{4, 5, 6}, []types.Hash{types.HashFromBytes([]byte("b"))})
	envelope := OnRampEnvelope{OnRampProof: onramp, MerkleUpdateProof: merkle}

	data, err := Marshal(envelope)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded OnRampEnvelope
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.OnRampProof.Proof != envelope.OnRampProof.Proof {
		t.Fatal("on-ramp proof field did not round-trip")
	}
	if decoded.MerkleUpdateProof.Proof != envelope.MerkleUpdateProof.Proof {
		t.Fatal("merkle-update proof field did not round-trip")
	}
}

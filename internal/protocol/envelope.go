// Package protocol defines the base58/JSON wire envelopes exchanged between
// the sequencer, the verifier, and clients (§4.8, §5).
package protocol

import (
	"encoding/json"
	"errors"

	"github.com/mr-tron/base58"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// ErrMalformedEnvelope is returned when a base58 or JSON envelope cannot be
// decoded — a malformed-input error per §7, carrying no state change.
var ErrMalformedEnvelope = errors.New("protocol: malformed envelope")

// GrothProof is the base58-wrapped wire form of a single Groth16 proof: the
// compressed proof bytes and its public inputs, each base58-encoded
// independently so the envelope round-trips as plain JSON.
type GrothProof struct {
	Proof        string   `json:"proof"`
	PublicInputs []string `json:"public_inputs"`
}

// EncodeGrothProof wraps raw compressed proof bytes and public-input field
// elements into their wire form.
func EncodeGrothProof(proofBytes []byte, publicInputs []types.Hash) GrothProof {
	encodedInputs := make([]string, len(publicInputs))
	for i, f := range publicInputs {
		encodedInputs[i] = base58.Encode(f.Bytes())
	}
	return GrothProof{
		Proof:        base58.Encode(proofBytes),
		PublicInputs: encodedInputs,
	}
}

// Decode reverses EncodeGrothProof.
func (g GrothProof) Decode() (proofBytes []byte, publicInputs []types.Hash, err error) {
	proofBytes, err = base58.Decode(g.Proof)
	if err != nil {
		return nil, nil, ErrMalformedEnvelope
	}
	publicInputs = make([]types.Hash, len(g.PublicInputs))
	for i, s := range g.PublicInputs {
		b, derr := base58.Decode(s)
		if derr != nil {
			return nil, nil, ErrMalformedEnvelope
		}
		publicInputs[i] = types.HashFromBytes(b)
	}
	return proofBytes, publicInputs, nil
}

// VectorCommitmentOpeningProof is the base58 wire form of one Merkle
// authentication path: the leaf's value, its sibling hashes root-ward, its
// position, and the root it authenticates against.
type VectorCommitmentOpeningProof struct {
	LeafValue string   `json:"leaf_value"`
	AuthPath  []string `json:"auth_path"`
	LeafIndex uint64   `json:"leaf_index"`
	Root      string   `json:"root"`
}

// EncodeMerklePath wraps a MerklePath-shaped opening into its wire form.
func EncodeMerklePath(leafValue types.Hash, siblings []types.Hash, leafIndex uint64, root types.Hash) VectorCommitmentOpeningProof {
	authPath := make([]string, len(siblings))
	for i, s := range siblings {
		authPath[i] = base58.Encode(s.Bytes())
	}
	return VectorCommitmentOpeningProof{
		LeafValue: base58.Encode(leafValue.Bytes()),
		AuthPath:  authPath,
		LeafIndex: leafIndex,
		Root:      base58.Encode(root.Bytes()),
	}
}

// OnRampEnvelope is the bundle a sequencer forwards to the verifier's POST
// /onramp after processing its own POST /onramp: the OnRamp statement's
// proof, plus the MerkleUpdate proof that records the new note's
// commitment into the tree (§4.4, §4.6, §5.1).
type OnRampEnvelope struct {
	OnRampProof       GrothProof `json:"on_ramp_proof"`
	MerkleUpdateProof GrothProof `json:"merkle_update_proof"`
}

// PaymentEnvelope is the bundle a sequencer forwards to the verifier's POST
// /payment after processing its own POST /payment: the Payment
// statement's proof, plus the MerkleUpdate proof recording the new output
// note (§4.5, §4.6, §5.2).
type PaymentEnvelope struct {
	PaymentProof      GrothProof `json:"payment_proof"`
	MerkleUpdateProof GrothProof `json:"merkle_update_proof"`
}

// MarshalJSON-compatible helpers: both envelopes round-trip through plain
// encoding/json since every field is already a string or a slice of
// strings; these wrappers exist so callers don't need to think about that.

// Marshal serializes v (an OnRampEnvelope or PaymentEnvelope) to JSON.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal deserializes JSON into v, returning ErrMalformedEnvelope on
// failure so callers can map it to a 4xx response (§7).
func Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return ErrMalformedEnvelope
	}
	return nil
}

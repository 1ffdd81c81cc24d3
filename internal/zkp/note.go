package zkp

import (
	"errors"

	"github.com/sanctum-labs/sanctum/pkg/common"
	"github.com/sanctum-labs/sanctum/pkg/types"
)

// ErrNoteAlreadySpent is returned when an input note's nullifier has
// already been recorded.
var ErrNoteAlreadySpent = errors.New("zkp: note already spent")

// Note is the UTXO-equivalent of the shielded pool: a record of asset
// ownership identified, off-chain, by its commitment, and on-chain by its
// presence in the Merkle tree (§3).
type Note struct {
	// Entropy is per-note randomness that hides the commitment.
	Entropy types.FieldElement

	// Owner is the PRF-derived public key of the note's owner.
	Owner types.FieldElement

	// AssetID is an opaque asset tag.
	AssetID types.FieldElement

	// Amount is the note's unsigned integer value, little-endian encoded.
	Amount types.FieldElement

	// Rho is the nullifier seed, unique per note.
	Rho types.FieldElement

	// Blind is the 31-byte blinding factor used by the commitment.
	Blind types.FieldElement
}

// Fields returns the five fields committed to by cm = Commit(fields, blind).
func (n Note) Fields() [types.NumNoteFields]types.FieldElement {
	return [types.NumNoteFields]types.FieldElement{n.Entropy, n.Owner, n.AssetID, n.Amount, n.Rho}
}

// Commitment computes the note's commitment under the given scheme.
func (n Note) Commitment(scheme CommitmentScheme) (Commitment, error) {
	return scheme.Commit(n.Fields(), n.Blind)
}

// AmountUint64 interprets Amount as a little-endian unsigned integer,
// truncated to 64 bits (amounts in this pool never exceed that range).
func (n Note) AmountUint64() uint64 {
	var v uint64
	b := n.Amount.Bytes()
	for i := 7; i >= 0 && i < len(b); i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// NewNote constructs a note owned by ownerKey for the given asset and
// amount, sampling fresh entropy, rho, and blind from crypto/rand.
func NewNote(ownerKey types.Hash, assetID types.FieldElement, amount uint64) (*Note, error) {
	entropy, err := randomFieldElement()
	if err != nil {
		return nil, err
	}
	rho, err := randomFieldElement()
	if err != nil {
		return nil, err
	}
	// Sampled via the BLS12-377 scalar field rather than raw random bytes so
	// the blind is a valid scalar for the Pedersen variant's group
	// exponentiation, not just a random byte string (§4.1).
	blindScalar, err := randomScalar()
	if err != nil {
		return nil, err
	}
	blindBytesBE := blindScalar.Bytes()
	blind := types.FieldElementFromBytes(reverse(blindBytesBE[:]))

	owner := DerivePublicKey(ownerKey)

	var amountBytes [types.FieldElementSize]byte
	v := amount
	for i := 0; i < 8; i++ {
		amountBytes[i] = byte(v)
		v >>= 8
	}

	return &Note{
		Entropy: entropy,
		Owner:   types.FieldElementFromBytes(owner[:]),
		AssetID: assetID,
		Amount:  types.FieldElementFromBytes(amountBytes[:]),
		Rho:     rho,
		Blind:   blind,
	}, nil
}

// DummyNote returns the all-zero note used to pre-fill an empty commitment
// tree slot (mirrors the original's get_dummy_utxo: every field, including
// the blind, is zero).
func DummyNote() *Note {
	return &Note{}
}

// IsDummy reports whether n is the all-zero placeholder note.
func (n Note) IsDummy() bool {
	for _, f := range n.Fields() {
		if !common.IsZeroBytes(f.Bytes()) {
			return false
		}
	}
	return common.IsZeroBytes(n.Blind.Bytes())
}

func randomFieldElement() (types.FieldElement, error) {
	b, err := common.RandomBytes(types.FieldElementSize)
	if err != nil {
		return types.FieldElement{}, err
	}
	return types.FieldElementFromBytes(b), nil
}

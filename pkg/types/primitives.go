// Package types defines the fixed-size value types shared across the
// shielded pool: 32-byte hashes, 31-byte note field elements, and the size
// constants they are built on. Notes live in internal/zkp and the wire
// envelopes in internal/protocol.
package types

import "encoding/hex"

const (
	// HashSize is the size of a digest or field-element encoding in bytes.
	HashSize = 32

	// FieldElementSize is the size of a single note field before blinding,
	// chosen so that L*8 bits pack strictly inside the outer scalar field.
	FieldElementSize = 31

	// NumNoteFields is the number of fields committed to by a note
	// (entropy, owner, asset_id, amount, rho).
	NumNoteFields = 5

	// RootHistorySize is the length of the rolling root-history ring
	// retained by the verifier and the on-chain contract.
	RootHistorySize = 30
)

// Hash is a 32-byte value: a SHA-256 output (commitments, Merkle nodes,
// nullifiers) or another 32-byte field-element encoding such as a public
// input. It is too short to hold a compressed C_inner.G1 point.
type Hash [HashSize]byte

// EmptyHash is the all-zero hash: the pre-image of Z[0] in the
// empty-subtree table (Z[0] = H(EmptyHash), not EmptyHash itself).
var EmptyHash = Hash{}

// IsEmpty reports whether h is the all-zero hash.
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// Bytes returns h as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// String returns the hex representation of h.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// HashFromBytes copies up to HashSize bytes of b into a Hash.
func HashFromBytes(b []byte) Hash {
	var h Hash
	n := len(b)
	if n > HashSize {
		n = HashSize
	}
	copy(h[:n], b[:n])
	return h
}

// FieldElement is a single 31-byte little-endian note field.
type FieldElement [FieldElementSize]byte

// FieldElementFromBytes copies up to FieldElementSize bytes of b.
func FieldElementFromBytes(b []byte) FieldElement {
	var f FieldElement
	n := len(b)
	if n > FieldElementSize {
		n = FieldElementSize
	}
	copy(f[:n], b[:n])
	return f
}

// Bytes returns f as a byte slice.
func (f FieldElement) Bytes() []byte {
	return f[:]
}

package zkp

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"golang.org/x/crypto/sha3"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// Errors returned by the commitment schemes.
var (
	ErrInvalidFieldCount = errors.New("zkp: commitment requires exactly NumNoteFields fields")
	ErrInvalidPoint      = errors.New("zkp: invalid curve point encoding")
)

// CommitmentVariant selects which binding scheme is active for a deployment.
// The two variants are mutually exclusive per deployment (§4.1, §9): a
// service is configured once, at start-up, with one of these.
type CommitmentVariant uint8

const (
	// VariantSHA256 concatenates the five padded 31-byte fields plus the
	// blind and hashes them with SHA-256.
	VariantSHA256 CommitmentVariant = iota

	// VariantPedersen exponentiates five generators (plus a blinding
	// generator) on C_inner = BLS12-377's G1 by the field-interpreted
	// scalars and sums the result.
	VariantPedersen
)

// ParseCommitmentVariant maps a deployment's "commitment" flag value to a
// CommitmentVariant, the same two spellings newCommitmentScheme (cmd/sequencerd)
// accepts.
func ParseCommitmentVariant(s string) (CommitmentVariant, error) {
	switch s {
	case "pedersen":
		return VariantPedersen, nil
	case "sha256", "":
		return VariantSHA256, nil
	default:
		return 0, fmt.Errorf("zkp: unknown commitment variant %q", s)
	}
}

// CommitmentScheme binds NumNoteFields byte-fields and a blind into a single
// commitment. Both variants satisfy one invariant only: binding — given a
// commitment it must be computationally infeasible to find a second valid
// opening. The Pedersen variant is additionally hiding.
type CommitmentScheme interface {
	// Commit computes the commitment over fields (exactly NumNoteFields of
	// them) and a 31-byte blind.
	Commit(fields [types.NumNoteFields]types.FieldElement, blind types.FieldElement) (Commitment, error)

	// Variant identifies which scheme this is, for wire encoding (§4.4-§4.6
	// public-input arity depends on it: 1 field element for SHA-256, 2 (x,y)
	// for Pedersen).
	Variant() CommitmentVariant
}

// Commitment is the output of a CommitmentScheme: either a 32-byte digest
// (SHA-256 variant) or a point on C_inner.G1 (Pedersen variant).
type Commitment struct {
	// Digest holds the SHA-256 output when Variant() == VariantSHA256.
	Digest types.Hash

	// Point holds the compressed Pedersen commitment point when
	// Variant() == VariantPedersen.
	Point PedersenPoint
}

// PublicInputs returns the commitment's field-element encoding in the
// normative order used by every circuit's public-input vector: a single
// element for SHA-256, or (x, y) for Pedersen.
func (c Commitment) PublicInputs(variant CommitmentVariant) []types.Hash {
	if variant == VariantSHA256 {
		return []types.Hash{c.Digest}
	}
	x, y := c.Point.Coordinates()
	return []types.Hash{x, y}
}

// Sha256CommitmentScheme is the VariantSHA256 implementation.
type Sha256CommitmentScheme struct{}

// NewSha256CommitmentScheme returns the SHA-256 note-commitment scheme.
func NewSha256CommitmentScheme() *Sha256CommitmentScheme {
	return &Sha256CommitmentScheme{}
}

func (s *Sha256CommitmentScheme) Variant() CommitmentVariant { return VariantSHA256 }

// Commit computes cm = SHA256(entropy || owner || asset_id || amount || rho || blind),
// each field zero-padded to 32 bytes before concatenation.
func (s *Sha256CommitmentScheme) Commit(
	fields [types.NumNoteFields]types.FieldElement,
	blind types.FieldElement,
) (Commitment, error) {
	h := sha256.New()
	for _, f := range fields {
		var padded [32]byte
		copy(padded[:], f.Bytes())
		h.Write(padded[:])
	}
	var paddedBlind [32]byte
	copy(paddedBlind[:], blind.Bytes())
	h.Write(paddedBlind[:])

	return Commitment{Digest: types.HashFromBytes(h.Sum(nil))}, nil
}

// PedersenPoint is a compressed point on C_inner.G1 (BLS12-377).
type PedersenPoint struct {
	affine bls12377.G1Affine // reused curve arithmetic bindings; see note below
}

// NOTE: BLS12-377 is C_inner. Its base field equals the scalar field of
// BW6-761, C_outer, the curve groth16 proofs are produced over; that's what
// lets a BLS12-377 group operation be expressed as BW6-761 R1CS constraints
// (see groth16.go). PedersenPoint stores the inner-curve point directly so
// the commitment gadget and the native path agree on encoding.

// Coordinates returns the (x, y) affine coordinates as Hash-sized field
// elements, used as the two public-input slots for the Pedersen variant.
func (p PedersenPoint) Coordinates() (x, y types.Hash) {
	xBytes := p.affine.X.Bytes()
	yBytes := p.affine.Y.Bytes()
	return types.HashFromBytes(xBytes[:]), types.HashFromBytes(yBytes[:])
}

// Bytes returns the compressed encoding of the point.
func (p PedersenPoint) Bytes() []byte {
	b := p.affine.Bytes()
	return b[:]
}

// PedersenGenerators holds the six generators used by the Pedersen note
// commitment: one per note field, plus one for the blind.
type PedersenGenerators struct {
	field [types.NumNoteFields]bls12377.G1Affine
	blind bls12377.G1Affine
}

// TrustedSetupPedersenGenerators derives deployment-wide Pedersen generators
// from a domain-separated seed. A production deployment replaces this with
// nothing-up-my-sleeve generators from an audited hash-to-curve; this
// deterministic derivation exists so setup is reproducible in tests (§4.7
// treats key generation the same way: seeded RNG stands in for a ceremony).
func TrustedSetupPedersenGenerators() *PedersenGenerators {
	g := &PedersenGenerators{}
	_, _, base, _ := bls12377.Generators()
	for i := range g.field {
		g.field[i] = scalarMulSeed(base, "sanctum/pedersen/field", i)
	}
	g.blind = scalarMulSeed(base, "sanctum/pedersen/blind", 0)
	return g
}

// scalarMulSeed derives a nothing-up-my-sleeve generator by hashing a
// domain-separated label with Keccak (sha3.Sum256) rather than SHA-256, so
// the generator-derivation path is independent of the commitment scheme's
// own hash function.
func scalarMulSeed(base bls12377.G1Affine, domain string, index int) bls12377.G1Affine {
	seed := sha3.Sum256(append([]byte(domain), byte(index)))
	scalar := new(big.Int).SetBytes(seed[:])
	var out bls12377.G1Affine
	out.ScalarMultiplication(&base, scalar)
	return out
}

// PedersenCommitmentScheme is the VariantPedersen implementation.
type PedersenCommitmentScheme struct {
	gens *PedersenGenerators
}

// NewPedersenCommitmentScheme returns the Pedersen note-commitment scheme
// over the supplied generators (see TrustedSetupPedersenGenerators).
func NewPedersenCommitmentScheme(gens *PedersenGenerators) *PedersenCommitmentScheme {
	return &PedersenCommitmentScheme{gens: gens}
}

func (s *PedersenCommitmentScheme) Variant() CommitmentVariant { return VariantPedersen }

// Commit computes cm = sum_i(field_i * G_i) + blind * H.
func (s *PedersenCommitmentScheme) Commit(
	fields [types.NumNoteFields]types.FieldElement,
	blind types.FieldElement,
) (Commitment, error) {
	blindScalar := new(big.Int).SetBytes(reverse(blind.Bytes()))
	acc := new(bls12377.G1Affine).ScalarMultiplication(&s.gens.blind, blindScalar)

	for i, f := range fields {
		scalar := new(big.Int).SetBytes(reverse(f.Bytes()))
		var term bls12377.G1Affine
		term.ScalarMultiplication(&s.gens.field[i], scalar)
		acc.Add(acc, &term)
	}

	return Commitment{Point: PedersenPoint{affine: *acc}}, nil
}

// reverse returns a little-endian-to-big-endian byte reversal, since note
// fields are little-endian but math/big.Int.SetBytes expects big-endian.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// randomScalar samples a uniformly random scalar field element, used for
// blinds and per-note randomness.
func randomScalar() (*fr.Element, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return nil, err
	}
	return &e, nil
}

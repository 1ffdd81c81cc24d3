package zkp

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/sw_bls12377"
	"github.com/consensys/gnark/std/hash/sha2"
	"github.com/consensys/gnark/std/math/uints"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// scalarToBytes decomposes v into n little-endian bytes, the same convention
// hashToScalar/reverse (witness.go, commitment.go) use natively: byte[0] is
// the least-significant byte.
func scalarToBytes(api frontend.API, v frontend.Variable, n int) []uints.U8 {
	bits := api.ToBinary(v, n*8)
	out := make([]uints.U8, n)
	for i := 0; i < n; i++ {
		var b frontend.Variable = 0
		for j := 0; j < 8; j++ {
			b = api.Add(b, api.Mul(bits[i*8+j], 1<<uint(j)))
		}
		out[i] = uints.U8{Val: b}
	}
	return out
}

// bytesToScalar recomposes little-endian bytes into a single scalar, the
// inverse of scalarToBytes.
func bytesToScalar(api frontend.API, bs []uints.U8) frontend.Variable {
	acc := frontend.Variable(0)
	mult := frontend.Variable(1)
	for _, b := range bs {
		acc = api.Add(acc, api.Mul(b.Val, mult))
		mult = api.Mul(mult, 256)
	}
	return acc
}

// selectBytes is api.Select lifted over byte arrays.
func selectBytes(api frontend.API, bit frontend.Variable, ifTrue, ifFalse []uints.U8) []uints.U8 {
	out := make([]uints.U8, len(ifTrue))
	for i := range out {
		out[i] = uints.U8{Val: api.Select(bit, ifTrue[i].Val, ifFalse[i].Val)}
	}
	return out
}

// sha256Bytes hashes the concatenation of chunks with SHA-256, mirroring the
// sequence of crypto/sha256 Write calls each native counterpart makes.
func sha256Bytes(api frontend.API, chunks ...[]uints.U8) ([]uints.U8, error) {
	h, err := sha2.New(api)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(), nil
}

// merklePathGadget folds leaf up depth levels of siblings/pathBits (pathBits[i]
// == 1 means the current node is the right child at level i) using the same
// SHA-256 two-to-one function hashPair applies natively (merkle_full.go),
// and asserts the result equals root (§4.3).
func merklePathGadget(api frontend.API, leaf frontend.Variable, siblings, pathBits []frontend.Variable, root frontend.Variable) error {
	current := scalarToBytes(api, leaf, types.HashSize)
	for i := range siblings {
		sib := scalarToBytes(api, siblings[i], types.HashSize)
		left := selectBytes(api, pathBits[i], sib, current)
		right := selectBytes(api, pathBits[i], current, sib)

		parent, err := sha256Bytes(api, left, right)
		if err != nil {
			return err
		}
		current = parent
	}

	api.AssertIsEqual(bytesToScalar(api, current), root)
	return nil
}

// prfGadget computes SHA256(key || input), the in-circuit equivalent of PRF
// (prf.go). Used for both pk = PRF_sk(0) and nf = PRF_sk(rho) (§4.2).
func prfGadget(api frontend.API, key, input frontend.Variable) (frontend.Variable, error) {
	keyBytes := scalarToBytes(api, key, types.HashSize)
	inputBytes := scalarToBytes(api, input, types.HashSize)
	sum, err := sha256Bytes(api, keyBytes, inputBytes)
	if err != nil {
		return nil, err
	}
	return bytesToScalar(api, sum), nil
}

// commitmentGadget computes the in-circuit VariantSHA256 note commitment,
// mirroring Sha256CommitmentScheme.Commit byte-for-byte: each of the five
// note fields and the blind is zero-padded from FieldElementSize to HashSize
// bytes before concatenation (§4.1).
func commitmentGadget(api frontend.API, fields [types.NumNoteFields]frontend.Variable, blind frontend.Variable) (frontend.Variable, error) {
	chunks := make([][]uints.U8, 0, types.NumNoteFields+1)
	for _, f := range fields {
		chunks = append(chunks, scalarToBytes(api, f, types.HashSize))
	}
	chunks = append(chunks, scalarToBytes(api, blind, types.HashSize))

	sum, err := sha256Bytes(api, chunks...)
	if err != nil {
		return nil, err
	}
	return bytesToScalar(api, sum), nil
}

// pedersenCircuitGenerators lifts TrustedSetupPedersenGenerators' native
// BLS12-377 points into C_outer (BW6-761) circuit constants, so
// pedersenCommitmentGadget sums against the exact same generators
// PedersenCommitmentScheme does.
func pedersenCircuitGenerators() [types.NumNoteFields + 1]sw_bls12377.G1Affine {
	gens := TrustedSetupPedersenGenerators()
	var out [types.NumNoteFields + 1]sw_bls12377.G1Affine
	for i := range gens.field {
		out[i] = sw_bls12377.G1Affine{X: gens.field[i].X, Y: gens.field[i].Y}
	}
	out[types.NumNoteFields] = sw_bls12377.G1Affine{X: gens.blind.X, Y: gens.blind.Y}
	return out
}

// pedersenCommitmentGadget computes cm = blind*H + sum_i(field_i * G_i) on
// C_inner (BLS12-377) as R1CS constraints over C_outer (BW6-761), mirroring
// PedersenCommitmentScheme.Commit. It returns the affine (x, y) coordinates,
// the two public-input slots the Pedersen variant uses (§4.1).
func pedersenCommitmentGadget(api frontend.API, fields [types.NumNoteFields]frontend.Variable, blind frontend.Variable) (x, y frontend.Variable, err error) {
	gens := pedersenCircuitGenerators()

	var acc sw_bls12377.G1Affine
	acc.ScalarMul(api, gens[types.NumNoteFields], blind)

	for i, f := range fields {
		var term sw_bls12377.G1Affine
		term.ScalarMul(api, gens[i], f)
		acc.AddAssign(api, term)
	}

	return acc.X, acc.Y, nil
}

// Package zkp implements the note, commitment, nullifier, Merkle and
// Groth16 circuit machinery of the shielded pool.
package zkp

import (
	"crypto/sha256"
	"errors"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// ErrInvalidKeyLength is returned when a PRF key is not exactly HashSize bytes.
var ErrInvalidKeyLength = errors.New("zkp: prf key must be 32 bytes")

// PRFOutput is the 32-byte output of the keyed PRF.
type PRFOutput = types.Hash

// zeroInput is the all-zero 32-byte PRF input used to derive a public key
// from a spending key: pk = PRF_sk(0^32).
var zeroInput = types.Hash{}

// PRF evaluates the keyed pseudo-random function used both for ownership
// (pk = PRF_sk(0^32)) and nullifier derivation (nf = PRF_sk(rho)).
//
// The concrete instantiation is SHA-256(key || input): collision-resistant,
// pseudorandom, and requires no trusted setup, matching the contract in
// §4.2. The in-circuit gadget (prfGadget, circuit_common.go) constrains the
// same SHA-256 compression via std/hash/sha2, so a witness that satisfies
// the circuit is one where native and in-circuit PRF agree bit for bit.
func PRF(key, input types.Hash) types.Hash {
	h := sha256.New()
	h.Write(key[:])
	h.Write(input[:])
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// DerivePublicKey computes pk = PRF_sk(0^32) for a spending key sk.
func DerivePublicKey(spendingKey types.Hash) types.Hash {
	return PRF(spendingKey, zeroInput)
}

// DeriveNullifier computes nf = PRF_sk(rho) for a spending key sk and a
// note's nullifier seed rho.
func DeriveNullifier(spendingKey types.Hash, rho types.Hash) types.Hash {
	return PRF(spendingKey, rho)
}

// SpendingKeyFromSeed derives a 32-byte spending key from arbitrary seed
// material, e.g. a user-supplied passphrase or CSPRNG output.
func SpendingKeyFromSeed(seed []byte) types.Hash {
	h := sha256.Sum256(append([]byte("sanctum/spending-key"), seed...))
	return h
}

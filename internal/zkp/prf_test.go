package zkp

import (
	"testing"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

func TestPRFDeterministic(t *testing.T) {
	key := types.HashFromBytes([]byte("spending-key-material"))
	input := types.HashFromBytes([]byte("rho-seed"))

	a := PRF(key, input)
	b := PRF(key, input)
	if a != b {
		t.Fatalf("PRF is not deterministic: %x != %x", a, b)
	}
}

func TestPRFDiffersByInput(t *testing.T) {
	key := types.HashFromBytes([]byte("spending-key-material"))
	rho1 := types.HashFromBytes([]byte("rho-1"))
	rho2 := types.HashFromBytes([]byte("rho-2"))

	if PRF(key, rho1) == PRF(key, rho2) {
		t.Fatal("PRF collided across distinct inputs")
	}
}

func TestDerivePublicKeyIsPRFOfZero(t *testing.T) {
	key := types.HashFromBytes([]byte("sk"))
	want := PRF(key, types.Hash{})
	got := DerivePublicKey(key)
	if got != want {
		t.Fatalf("DerivePublicKey() = %x, want %x", got, want)
	}
}

func TestDeriveNullifierUniquePerRho(t *testing.T) {
	key := types.HashFromBytes([]byte("sk"))
	rho1 := types.HashFromBytes([]byte("note-1"))
	rho2 := types.HashFromBytes([]byte("note-2"))

	nf1 := DeriveNullifier(key, rho1)
	nf2 := DeriveNullifier(key, rho2)
	if nf1 == nf2 {
		t.Fatal("nullifiers for distinct notes collided")
	}
}

func TestSpendingKeyFromSeedDeterministic(t *testing.T) {
	seed := []byte("user passphrase")
	a := SpendingKeyFromSeed(seed)
	b := SpendingKeyFromSeed(seed)
	if a != b {
		t.Fatal("SpendingKeyFromSeed is not deterministic")
	}
}

package zkp

import (
	"github.com/consensys/gnark/frontend"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// MerkleUpdateCircuit proves that writing leafValue at leafIndex transforms
// oldRoot into newRoot, using a single shared authentication path (the
// siblings at leafIndex are identical before and after, since only the leaf
// itself changes) (§4.6).
//
// Public inputs, in order: [leaf_index, leaf_value, old_root, new_root].
type MerkleUpdateCircuit struct {
	LeafIndex frontend.Variable `gnark:",public"`
	LeafValue frontend.Variable `gnark:",public"`
	OldRoot   frontend.Variable `gnark:",public"`
	NewRoot   frontend.Variable `gnark:",public"`

	OldLeafValue frontend.Variable
	Siblings     [PaymentTreeDepth]frontend.Variable
	PathBits     [PaymentTreeDepth]frontend.Variable
}

// NewMerkleUpdatePublicWitness builds a public-only MerkleUpdateCircuit
// assignment from the wire's raw public inputs, in the normative order
// [leaf_index, leaf_value, old_root, new_root].
func NewMerkleUpdatePublicWitness(inputs []types.Hash) *MerkleUpdateCircuit {
	return &MerkleUpdateCircuit{
		LeafIndex: hashToScalar(inputs[0]),
		LeafValue: hashToScalar(inputs[1]),
		OldRoot:   hashToScalar(inputs[2]),
		NewRoot:   hashToScalar(inputs[3]),
	}
}

func (c *MerkleUpdateCircuit) Define(api frontend.API) error {
	// leaf_index must decompose into the same path bits used to fold both
	// roots, tying the public index to the private authentication path
	// (prevents a prover from updating one index while claiming another).
	bits := api.ToBinary(c.LeafIndex, len(c.PathBits))
	for i, b := range bits {
		api.AssertIsEqual(b, c.PathBits[i])
	}

	if err := merklePathGadget(api, c.OldLeafValue, c.Siblings[:], c.PathBits[:], c.OldRoot); err != nil {
		return err
	}
	if err := merklePathGadget(api, c.LeafValue, c.Siblings[:], c.PathBits[:], c.NewRoot); err != nil {
		return err
	}

	return nil
}

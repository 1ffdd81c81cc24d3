package zkp

import "math/big"

// hashToScalar interprets h's bytes as a little-endian unsigned integer,
// the same convention note fields and commitments use, producing a
// *big.Int fit to assign to a frontend.Variable.
func hashToScalar(h [32]byte) *big.Int {
	return new(big.Int).SetBytes(reverse(h[:]))
}

// BuildMerkleUpdateWitness assembles a MerkleUpdateCircuit witness from a
// FullTree's pre- and post-update authentication paths for the same
// position, matching the public-input ordering documented on
// MerkleUpdateCircuit: [leaf_index, leaf_value, old_root, new_root].
func BuildMerkleUpdateWitness(oldPath, newPath *MerklePath, oldRoot, newRoot [32]byte) (*MerkleUpdateCircuit, error) {
	if len(oldPath.Siblings) != PaymentTreeDepth {
		return nil, ErrInvalidPath
	}

	w := &MerkleUpdateCircuit{
		LeafIndex:    hashToScalar(uint64ToHash(newPath.LeafPosition)),
		LeafValue:    hashToScalar(newPath.LeafValue),
		OldRoot:      hashToScalar(oldRoot),
		NewRoot:      hashToScalar(newRoot),
		OldLeafValue: hashToScalar(oldPath.LeafValue),
	}

	for i := 0; i < PaymentTreeDepth; i++ {
		w.Siblings[i] = hashToScalar(newPath.Siblings[i])
		if newPath.PathBits[i] {
			w.PathBits[i] = 1
		} else {
			w.PathBits[i] = 0
		}
	}

	return w, nil
}

func uint64ToHash(v uint64) [32]byte {
	var h [32]byte
	for i := 0; i < 8; i++ {
		h[i] = byte(v)
		v >>= 8
	}
	return h
}

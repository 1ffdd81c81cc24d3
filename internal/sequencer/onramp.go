package sequencer

import (
	"context"

	"github.com/sanctum-labs/sanctum/internal/protocol"
	"github.com/sanctum-labs/sanctum/internal/zkp"
	"github.com/sanctum-labs/sanctum/pkg/common"
	"github.com/sanctum-labs/sanctum/pkg/types"
)

// addCoin appends a new commitment to the tree and proves the transition
// with a MerkleUpdate proof, mirroring the original's add_coin_to_state:
// capture the opening before the write, perform the write, capture the
// opening after, then prove the two openings are consistent (§4.6, §4.9).
func (s *State) addCoin(ctx context.Context, commitment types.Hash) (*protocol.GrothProof, uint64, error) {
	oldPath, newPath, position, err := s.Tree.Append(ctx, commitment)
	if err != nil {
		return nil, 0, err
	}

	oldRoot := rootBeforeAppend(oldPath, newPath)
	newRoot := s.Tree.Root()

	if s.Log != nil {
		s.Log.WithField("position", position).
			WithField("root", common.BytesToHex(newRoot[:])).
			Debug("appended note commitment")
	}

	witness, err := zkp.BuildMerkleUpdateWitness(oldPath, newPath, oldRoot, newRoot)
	if err != nil {
		return nil, 0, err
	}

	proofBytes, _, err := s.Circuits.Prove(zkp.StatementMerkleUpdate, witness)
	if err != nil {
		return nil, 0, err
	}

	publicInputs := []types.Hash{
		leafIndexHash(position),
		newPath.LeafValue,
		oldRoot,
		newRoot,
	}

	wire := protocol.EncodeGrothProof(proofBytes, publicInputs)
	return &wire, position, nil
}

// rootBeforeAppend recomputes the pre-update root from the captured
// pre-write opening: the FullTree mutates the root in place, so the prior
// root is only recoverable by re-folding that opening, not from tree state
// taken after the write.
func rootBeforeAppend(oldPath, newPath *zkp.MerklePath) types.Hash {
	return zkp.FoldPath(oldPath)
}

func leafIndexHash(position uint64) types.Hash {
	var h types.Hash
	v := position
	for i := 0; i < 8; i++ {
		h[i] = byte(v)
		v >>= 8
	}
	return h
}

package verifier

import (
	"encoding/json"
	"net/http"

	"github.com/sanctum-labs/sanctum/internal/protocol"
	"github.com/sanctum-labs/sanctum/internal/zkp"
	"github.com/sanctum-labs/sanctum/pkg/types"
)

// Server wires verifier State to its two HTTP endpoints.
type Server struct {
	State *State
}

// NewServer constructs a Server.
func NewServer(state *State) *Server {
	return &Server{State: state}
}

// Routes registers the verifier's two endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/onramp", s.handleOnRamp)
	mux.HandleFunc("/payment", s.handlePayment)
}

// handleOnRamp implements POST /onramp: re-verify the on-ramp proof and its
// accompanying Merkle-update proof, then ratchet the root history forward
// on success (§4.10, §5.1).
func (s *Server) handleOnRamp(w http.ResponseWriter, r *http.Request) {
	var envelope protocol.OnRampEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	proofBytes, publicInputs, err := envelope.OnRampProof.Decode()
	if err != nil {
		http.Error(w, "malformed proof envelope", http.StatusBadRequest)
		return
	}

	unlock := s.State.Lock()
	defer unlock()

	ok, err := s.State.Circuits.Verify(zkp.StatementOnRamp, proofBytes, zkp.NewOnRampPublicWitness(publicInputs))
	if err != nil || !ok {
		http.Error(w, "invalid on-ramp proof", http.StatusBadRequest)
		return
	}

	if err := s.State.verifyAndRatchetMerkleUpdate(envelope.MerkleUpdateProof); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Write([]byte("OK"))
}

// handlePayment implements POST /payment: re-verify the payment proof and
// its accompanying Merkle-update proof, then ratchet the root history
// forward on success (§4.10, §5.2).
func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	var envelope protocol.PaymentEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	proofBytes, publicInputs, err := envelope.PaymentProof.Decode()
	if err != nil {
		http.Error(w, "malformed proof envelope", http.StatusBadRequest)
		return
	}

	unlock := s.State.Lock()
	defer unlock()

	ok, err := s.State.Circuits.Verify(zkp.StatementPayment, proofBytes, zkp.NewPaymentPublicWitness(publicInputs))
	if err != nil || !ok {
		http.Error(w, "invalid payment proof", http.StatusBadRequest)
		return
	}

	root := publicInputs[0]
	if !s.State.Frontier.IsKnownRoot(root) {
		http.Error(w, "unknown root", http.StatusBadRequest)
		return
	}

	if err := s.State.verifyAndRatchetMerkleUpdate(envelope.MerkleUpdateProof); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Write([]byte("OK"))
}

// verifyAndRatchetMerkleUpdate re-verifies a MerkleUpdate proof, checks that
// it is building on this verifier's current root and targets the
// next expected leaf index, and, only then, folds the new leaf into the
// frontier (§4.6, §4.10, §9: enforcing leaf_index == next_index is what
// makes the tree append-only from the verifier's point of view).
func (s *State) verifyAndRatchetMerkleUpdate(mergeProof protocol.GrothProof) error {
	proofBytes, publicInputs, err := mergeProof.Decode()
	if err != nil {
		return zkp.ErrInvalidPath
	}

	ok, err := s.Circuits.Verify(zkp.StatementMerkleUpdate, proofBytes, zkp.NewMerkleUpdatePublicWitness(publicInputs))
	if err != nil || !ok {
		return zkp.ErrInvalidPath
	}

	leafIndex := hashToUint64(publicInputs[0])
	leafValue := publicInputs[1]
	oldRoot := publicInputs[2]

	if err := s.Frontier.VerifyUpdate(leafIndex, oldRoot, publicInputs[3]); err != nil {
		return err
	}

	if _, err := s.Frontier.Insert(leafValue); err != nil {
		return err
	}
	return nil
}

func hashToUint64(h types.Hash) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(h[i])
	}
	return v
}

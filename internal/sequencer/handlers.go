package sequencer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sanctum-labs/sanctum/internal/protocol"
	"github.com/sanctum-labs/sanctum/internal/zkp"
	"github.com/sanctum-labs/sanctum/pkg/types"
)

// Server wires a State to HTTP handlers and a client for forwarding
// verified bundles to the verifier (§5.1, §5.2).
type Server struct {
	State        *State
	VerifierAddr string
	HTTPClient   *http.Client
}

// NewServer constructs a Server. verifierAddr is the verifier's base URL,
// e.g. "http://127.0.0.1:8081".
func NewServer(state *State, verifierAddr string) *Server {
	return &Server{
		State:        state,
		VerifierAddr: verifierAddr,
		HTTPClient:   &http.Client{},
	}
}

// Routes registers the sequencer's three endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/onramp", s.handleOnRamp)
	mux.HandleFunc("/payment", s.handlePayment)
	mux.HandleFunc("/merkle", s.handleMerkleProof)
}

// handleOnRamp implements POST /onramp: verify the client's OnRamp proof,
// append its commitment to the tree, prove the update, then forward the
// bundle to the verifier. The coarse lock is held across verification and
// the local tree mutation, and released before the downstream call (§4.9).
func (s *Server) handleOnRamp(w http.ResponseWriter, r *http.Request) {
	var wire protocol.GrothProof
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	proofBytes, publicInputs, err := wire.Decode()
	if err != nil {
		http.Error(w, "malformed proof envelope", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	unlock := s.State.Lock()

	ok, err := s.State.Circuits.Verify(zkp.StatementOnRamp, proofBytes, zkp.NewOnRampPublicWitness(publicInputs))
	if err != nil || !ok {
		unlock()
		http.Error(w, "invalid on-ramp proof", http.StatusBadRequest)
		return
	}

	commitment := commitmentFromOnRampPublicInputs(publicInputs)
	mergeProof, position, err := s.State.addCoin(ctx, commitment)
	if err != nil {
		unlock()
		http.Error(w, fmt.Sprintf("failed to append commitment: %v", err), http.StatusInternalServerError)
		return
	}
	s.State.NumCoins++
	unlock()

	envelope := protocol.OnRampEnvelope{
		OnRampProof:       wire,
		MerkleUpdateProof: *mergeProof,
	}

	if err := s.forward(ctx, "/onramp", envelope); err != nil {
		s.State.Log.WithError(err).WithField("position", position).Error("verifier rejected onramp bundle")
		fmt.Fprint(w, "FAILED")
		return
	}

	fmt.Fprint(w, "OK")
}

// handlePayment implements POST /payment: verify the spend proof, check and
// record the nullifier, append the new output commitment, prove the
// update, then forward the bundle (§4.9, §5.2).
func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	var wire protocol.GrothProof
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	proofBytes, publicInputs, err := wire.Decode()
	if err != nil {
		http.Error(w, "malformed proof envelope", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	unlock := s.State.Lock()

	ok, err := s.State.Circuits.Verify(zkp.StatementPayment, proofBytes, zkp.NewPaymentPublicWitness(publicInputs))
	if err != nil || !ok {
		unlock()
		http.Error(w, "invalid payment proof", http.StatusBadRequest)
		return
	}

	nullifier := publicInputs[1]
	spent, err := s.State.Nullifiers.IsSpent(ctx, nullifier)
	if err != nil {
		unlock()
		http.Error(w, "nullifier lookup failed", http.StatusInternalServerError)
		return
	}
	if spent {
		unlock()
		http.Error(w, "duplicate nullifier", http.StatusBadRequest)
		return
	}

	commitment := publicInputs[2]
	position := s.State.Tree.Size()
	if err := s.State.Nullifiers.MarkSpent(ctx, nullifier, position); err != nil {
		unlock()
		http.Error(w, "failed to record nullifier", http.StatusInternalServerError)
		return
	}

	mergeProof, position, err := s.State.addCoin(ctx, commitment)
	if err != nil {
		unlock()
		http.Error(w, fmt.Sprintf("failed to append commitment: %v", err), http.StatusInternalServerError)
		return
	}
	unlock()

	envelope := protocol.PaymentEnvelope{
		PaymentProof:      wire,
		MerkleUpdateProof: *mergeProof,
	}

	if err := s.forward(ctx, "/payment", envelope); err != nil {
		s.State.Log.WithError(err).WithField("position", position).Error("verifier rejected payment bundle")
		fmt.Fprint(w, "FAILED")
		return
	}

	fmt.Fprint(w, "OK")
}

// handleMerkleProof implements GET /merkle: serve the current opening proof
// for a leaf index, the frontier contract relies on the sequencer (the
// holder of the full tree) to supply these on demand (§3).
func (s *Server) handleMerkleProof(w http.ResponseWriter, r *http.Request) {
	var index uint64
	if err := json.NewDecoder(r.Body).Decode(&index); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	unlock := s.State.Lock()
	path, err := s.State.Tree.Proof(r.Context(), index)
	root := s.State.Tree.Root()
	unlock()

	if err != nil {
		http.Error(w, "unknown leaf index", http.StatusBadRequest)
		return
	}

	wire := protocol.EncodeMerklePath(path.LeafValue, path.Siblings, index, root)
	json.NewEncoder(w).Encode(wire)
}

func (s *Server) forward(ctx context.Context, path string, envelope interface{}) error {
	body, err := protocol.Marshal(envelope)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.VerifierAddr+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verifier returned status %d", resp.StatusCode)
	}
	return nil
}

// commitmentFromOnRampPublicInputs extracts the commitment element at index
// 2 of the OnRamp statement's public inputs: [asset_id, amount,
// commitment...] (§4.4). For the SHA-256 variant that is the whole
// commitment; for the Pedersen variant it is the x coordinate only, and the
// y coordinate at index 3 is not returned.
func commitmentFromOnRampPublicInputs(inputs []types.Hash) types.Hash {
	return inputs[2]
}

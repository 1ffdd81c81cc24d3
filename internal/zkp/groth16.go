package zkp

import (
	"bytes"
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// OuterCurve is C_outer, the curve Groth16 proofs are produced over. Its
// scalar field equals C_inner's (BLS12-377) base field, which is what lets a
// BLS12-377 group operation be expressed as R1CS constraints here (§4.7).
const OuterCurve = ecc.BW6_761

// Errors returned by the circuit driver.
var (
	ErrCircuitNotCompiled      = errors.New("zkp: circuit not compiled")
	ErrProofGenerationFailed   = errors.New("zkp: proof generation failed")
	ErrProofVerificationFailed = errors.New("zkp: proof verification failed")
)

// StatementKind identifies which of the three normative circuit statements a
// proof belongs to.
type StatementKind uint8

const (
	StatementOnRamp StatementKind = iota
	StatementPayment
	StatementMerkleUpdate
)

// CompiledStatement bundles a circuit's constraint system with its Groth16
// proving and verifying key.
type CompiledStatement struct {
	ConstraintSystem frontend.CompiledConstraintSystem
	ProvingKey       groth16.ProvingKey
	VerifyingKey     groth16.VerifyingKey
}

// CircuitDriver compiles the three statements once at start-up and serves
// Prove/Verify calls against the resulting keys. Keys are produced by
// groth16.Setup with its default (non-deterministic) internal randomness;
// a production deployment instead replays a multi-party ceremony transcript,
// which is out of scope here (§4.7, §9).
type CircuitDriver struct {
	statements map[StatementKind]*CompiledStatement
}

// NewCircuitDriver returns an empty driver; call Compile for each statement
// kind this deployment needs before calling Prove or Verify.
func NewCircuitDriver() *CircuitDriver {
	return &CircuitDriver{statements: make(map[StatementKind]*CompiledStatement)}
}

// Compile builds the R1CS for circuit and runs Groth16 setup, registering
// the result under kind.
func (d *CircuitDriver) Compile(kind StatementKind, circuit frontend.Circuit) error {
	ccs, err := frontend.Compile(OuterCurve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return err
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return err
	}

	d.statements[kind] = &CompiledStatement{
		ConstraintSystem: ccs,
		ProvingKey:       pk,
		VerifyingKey:     vk,
	}
	return nil
}

// Statement returns the compiled statement for kind, if Compile has been
// called for it.
func (d *CircuitDriver) Statement(kind StatementKind) (*CompiledStatement, error) {
	s, ok := d.statements[kind]
	if !ok {
		return nil, ErrCircuitNotCompiled
	}
	return s, nil
}

// Prove produces a Groth16 proof for the fully-assigned witness, returning
// the serialized proof and the serialized public witness (the ordering of
// which is circuit-assignment order: see each circuit type's doc comment for
// the statement's normative public-input ordering).
func (d *CircuitDriver) Prove(kind StatementKind, witness frontend.Circuit) (proofBytes, publicBytes []byte, err error) {
	s, err := d.Statement(kind)
	if err != nil {
		return nil, nil, err
	}

	w, err := frontend.NewWitness(witness, OuterCurve.ScalarField())
	if err != nil {
		return nil, nil, err
	}

	proof, err := groth16.Prove(s.ConstraintSystem, s.ProvingKey, w)
	if err != nil {
		return nil, nil, ErrProofGenerationFailed
	}
	proofBytes = proof.MarshalBinary()

	publicWitness, err := w.Public()
	if err != nil {
		return nil, nil, err
	}
	publicBytes, err = publicWitness.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}

	return proofBytes, publicBytes, nil
}

// ExportKeys serializes kind's proving and verifying key, for a setup CLI
// to persist to disk.
func (d *CircuitDriver) ExportKeys(kind StatementKind) (provingKeyBytes, verifyingKeyBytes []byte, err error) {
	s, err := d.Statement(kind)
	if err != nil {
		return nil, nil, err
	}

	var pkBuf, vkBuf bytes.Buffer
	if _, err := s.ProvingKey.WriteTo(&pkBuf); err != nil {
		return nil, nil, err
	}
	if _, err := s.VerifyingKey.WriteTo(&vkBuf); err != nil {
		return nil, nil, err
	}
	return pkBuf.Bytes(), vkBuf.Bytes(), nil
}

// Verify checks a serialized proof against a public-only circuit assignment
// (private fields left unassigned) for kind. publicAssignment is typically built
// by one of the per-statement NewXPublicWitness helpers from the raw field
// elements carried on the wire (§4.8).
func (d *CircuitDriver) Verify(kind StatementKind, proofBytes []byte, publicAssignment frontend.Circuit) (bool, error) {
	s, err := d.Statement(kind)
	if err != nil {
		return false, err
	}

	proof := groth16.NewProof(OuterCurve)
	if err := proof.UnmarshalBinary(proofBytes); err != nil {
		return false, err
	}

	w, err := frontend.NewWitness(publicAssignment, OuterCurve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, err
	}

	if err := groth16.Verify(proof, s.VerifyingKey, w); err != nil {
		return false, nil
	}
	return true, nil
}

package zkp

import (
	"github.com/consensys/gnark/frontend"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// PaymentTreeDepth is the deployment-wide Merkle depth the payment and
// merkle-update circuits are compiled against. Fixed at compile time: every
// proof produced for this deployment shares one depth (§3, §9).
const PaymentTreeDepth = 8

// PaymentCircuit proves ownership and spendability of an existing note and
// the well-formedness of a single freshly-created output note, without
// revealing either note's contents or the spender's key (§4.5).
//
// Public inputs, in order: [root, nullifier, commitment...].
type PaymentCircuit struct {
	Root       frontend.Variable `gnark:",public"`
	Nullifier  frontend.Variable `gnark:",public"`
	Commitment frontend.Variable `gnark:",public"`

	// Input note (spent).
	InEntropy frontend.Variable
	InOwner   frontend.Variable
	InAssetID frontend.Variable
	InAmount  frontend.Variable
	InRho     frontend.Variable
	InBlind   frontend.Variable

	SpendingKey frontend.Variable

	Siblings [PaymentTreeDepth]frontend.Variable
	PathBits [PaymentTreeDepth]frontend.Variable

	// Output note (created).
	OutEntropy frontend.Variable
	OutOwner   frontend.Variable
	OutAssetID frontend.Variable
	OutAmount  frontend.Variable
	OutRho     frontend.Variable
	OutBlind   frontend.Variable
}

// NewPaymentPublicWitness builds a public-only PaymentCircuit assignment
// from the wire's raw public inputs, in the normative order [root,
// nullifier, commitment].
func NewPaymentPublicWitness(inputs []types.Hash) *PaymentCircuit {
	return &PaymentCircuit{
		Root:       hashToScalar(inputs[0]),
		Nullifier:  hashToScalar(inputs[1]),
		Commitment: hashToScalar(inputs[2]),
	}
}

func (c *PaymentCircuit) Define(api frontend.API) error {
	inFields := [5]frontend.Variable{c.InEntropy, c.InOwner, c.InAssetID, c.InAmount, c.InRho}
	inCommitment, err := commitmentGadget(api, inFields, c.InBlind)
	if err != nil {
		return err
	}

	if err := merklePathGadget(api, inCommitment, c.Siblings[:], c.PathBits[:], c.Root); err != nil {
		return err
	}

	// Ownership: the prover knows the spending key behind the input note's
	// owner tag.
	pk, err := prfGadget(api, c.SpendingKey, 0)
	if err != nil {
		return err
	}
	api.AssertIsEqual(pk, c.InOwner)

	// Nullifier: derived from the same spending key and the input note's rho,
	// so it is unique per note and unforgeable without the key (§4.2).
	nf, err := prfGadget(api, c.SpendingKey, c.InRho)
	if err != nil {
		return err
	}
	api.AssertIsEqual(nf, c.Nullifier)

	// Value and asset conservation: the output carries the same asset and
	// amount as the input it spends (single-input, single-output statement;
	// §9 records multi-note batching as future work, not required here).
	api.AssertIsEqual(c.InAssetID, c.OutAssetID)
	api.AssertIsEqual(c.InAmount, c.OutAmount)

	outFields := [5]frontend.Variable{c.OutEntropy, c.OutOwner, c.OutAssetID, c.OutAmount, c.OutRho}
	outCommitment, err := commitmentGadget(api, outFields, c.OutBlind)
	if err != nil {
		return err
	}
	api.AssertIsEqual(outCommitment, c.Commitment)

	return nil
}

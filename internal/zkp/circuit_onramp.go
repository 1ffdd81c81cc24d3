package zkp

import (
	"github.com/consensys/gnark/frontend"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// OnRampCircuit proves that a newly minted note carries the claimed
// (asset_id, amount) and opens to the claimed commitment, without revealing
// the note's entropy, owner, rho, or blind (§4.4).
//
// Public inputs, in order: [asset_id, amount, commitment...]. The SHA-256
// variant trails a single commitment digest and pins CommitmentY to zero;
// the Pedersen variant trails the commitment point's (x, y) coordinates
// (§4.1).
type OnRampCircuit struct {
	AssetID     frontend.Variable `gnark:",public"`
	Amount      frontend.Variable `gnark:",public"`
	Commitment  frontend.Variable `gnark:",public"`
	CommitmentY frontend.Variable `gnark:",public"`

	Entropy frontend.Variable
	Owner   frontend.Variable
	Rho     frontend.Variable
	Blind   frontend.Variable

	// Variant selects which commitment gadget Define constrains against. It
	// is a plain compile-time field, not a witness value: a deployment
	// compiles one circuit for the variant it runs (§9).
	Variant CommitmentVariant
}

// NewOnRampPublicWitness builds a public-only OnRampCircuit assignment from
// the wire's raw public inputs, in the normative order [asset_id, amount,
// commitment...]. A 4-element input selects the Pedersen variant (the extra
// element carries the commitment's y coordinate); 3 elements selects
// SHA-256, with CommitmentY set to zero.
func NewOnRampPublicWitness(inputs []types.Hash) *OnRampCircuit {
	c := &OnRampCircuit{
		AssetID:     hashToScalar(inputs[0]),
		Amount:      hashToScalar(inputs[1]),
		Commitment:  hashToScalar(inputs[2]),
		CommitmentY: 0,
	}
	if len(inputs) > 3 {
		c.Variant = VariantPedersen
		c.CommitmentY = hashToScalar(inputs[3])
	}
	return c
}

func (c *OnRampCircuit) Define(api frontend.API) error {
	fields := [types.NumNoteFields]frontend.Variable{c.Entropy, c.Owner, c.AssetID, c.Amount, c.Rho}

	if c.Variant == VariantPedersen {
		x, y, err := pedersenCommitmentGadget(api, fields, c.Blind)
		if err != nil {
			return err
		}
		api.AssertIsEqual(x, c.Commitment)
		api.AssertIsEqual(y, c.CommitmentY)
		return nil
	}

	api.AssertIsEqual(c.CommitmentY, 0)
	cm, err := commitmentGadget(api, fields, c.Blind)
	if err != nil {
		return err
	}
	api.AssertIsEqual(cm, c.Commitment)
	return nil
}

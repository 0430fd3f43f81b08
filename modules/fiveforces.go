package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// Force captures one of Porter's five forces: how strong it is and the
// factors driving it.
type Force struct {
	Intensity string   `json:"intensity"`
	Factors   []string `json:"factors"`
}

// FiveForces is the competitive-forces document.
type FiveForces struct {
	Rivalry       Force `json:"rivalry"`
	NewEntrants   Force `json:"newEntrants"`
	SupplierPower Force `json:"supplierPower"`
	BuyerPower    Force `json:"buyerPower"`
	Substitutes   Force `json:"substitutes"`
}

// DefaultFiveForces returns an analysis with every force unset.
func DefaultFiveForces() FiveForces {
	empty := Force{Factors: []string{}}
	return FiveForces{
		Rivalry:       empty,
		NewEntrants:   empty,
		SupplierPower: empty,
		BuyerPower:    empty,
		Substitutes:   empty,
	}
}

var forceIntensityRules = []docstate.Rule{
	{Field: "rivalry.intensity", Expr: `call("oneOf", rivalry.intensity, "", "low", "medium", "high")`, Message: "intensity must be low, medium, or high"},
	{Field: "newEntrants.intensity", Expr: `call("oneOf", newEntrants.intensity, "", "low", "medium", "high")`, Message: "intensity must be low, medium, or high"},
	{Field: "supplierPower.intensity", Expr: `call("oneOf", supplierPower.intensity, "", "low", "medium", "high")`, Message: "intensity must be low, medium, or high"},
	{Field: "buyerPower.intensity", Expr: `call("oneOf", buyerPower.intensity, "", "low", "medium", "high")`, Message: "intensity must be low, medium, or high"},
	{Field: "substitutes.intensity", Expr: `call("oneOf", substitutes.intensity, "", "low", "medium", "high")`, Message: "intensity must be low, medium, or high"},
}

// FiveForcesSchema constrains each force's intensity to the known levels.
// An empty intensity means "not assessed yet" and is valid.
func FiveForcesSchema() docstate.Schema[FiveForces] {
	return docstate.NewRuleSchema(
		docstate.NewStructSchema[FiveForces](),
		forceIntensityRules,
		docstate.RuleWithFunctionRegistry[FiveForces](docstate.DefaultFunctionRegistry()),
		docstate.RuleWithKey[FiveForces](KeyFiveForces),
	)
}

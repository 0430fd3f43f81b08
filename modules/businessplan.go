package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// BusinessPlan is the narrative plan document: free-text sections the wizard
// fills in order. All sections are optional; empty strings mean "not written
// yet".
type BusinessPlan struct {
	CompanyName    string `json:"companyName"`
	Summary        string `json:"summary"`
	Problem        string `json:"problem"`
	Solution       string `json:"solution"`
	Market         string `json:"market"`
	Competition    string `json:"competition"`
	GoToMarket     string `json:"goToMarket"`
	Team           string `json:"team"`
	FinancialsNote string `json:"financialsNote"`
}

// DefaultBusinessPlan returns the empty plan used when nothing is persisted.
func DefaultBusinessPlan() BusinessPlan {
	return BusinessPlan{}
}

// BusinessPlanSchema accepts any object-shaped plan; unknown shapes (arrays,
// scalars) are rejected.
func BusinessPlanSchema() docstate.Schema[BusinessPlan] {
	return docstate.NewStructSchema[BusinessPlan]()
}

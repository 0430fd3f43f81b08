package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// Milestone is one roadmap entry.
type Milestone struct {
	Quarter string   `json:"quarter"` // e.g. "2026-Q1"
	Title   string   `json:"title"`
	Items   []string `json:"items"`
}

// Roadmap is the milestone document.
type Roadmap struct {
	Milestones []Milestone `json:"milestones"`
}

// DefaultRoadmap returns a roadmap with no milestones.
func DefaultRoadmap() Roadmap {
	return Roadmap{Milestones: []Milestone{}}
}

// RoadmapSchema requires the milestones field and a quarter per milestone.
func RoadmapSchema() docstate.Schema[Roadmap] {
	return docstate.NewRuleSchema(
		docstate.NewStructSchema[Roadmap](
			docstate.StructRequired[Roadmap]("milestones"),
		),
		[]docstate.Rule{
			{Field: "milestones", Expr: `all(milestones, {call("matches", .quarter, "^\\d{4}-Q[1-4]$")})`, Message: "quarters must use the YYYY-Qn format"},
		},
		docstate.RuleWithFunctionRegistry[Roadmap](docstate.DefaultFunctionRegistry()),
		docstate.RuleWithKey[Roadmap](KeyRoadmap),
	)
}

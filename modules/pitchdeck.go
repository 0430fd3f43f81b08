package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// Slide kinds the deck renderer understands.
const (
	SlideTitle    = "title"
	SlideProblem  = "problem"
	SlideSolution = "solution"
	SlideMarket   = "market"
	SlideProduct  = "product"
	SlideTeam     = "team"
	SlideFinance  = "financials"
	SlideAsk      = "ask"
)

// Slide is one pitch-deck slide: a kind the renderer maps to a layout, a
// title, and bullet lines.
type Slide struct {
	Kind    string   `json:"kind"`
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// PitchDeck is the ordered slide document.
type PitchDeck struct {
	Slides []Slide `json:"slides"`
}

// DefaultPitchDeck returns the canonical empty deck skeleton.
func DefaultPitchDeck() PitchDeck {
	return PitchDeck{Slides: []Slide{
		{Kind: SlideTitle, Bullets: []string{}},
		{Kind: SlideProblem, Bullets: []string{}},
		{Kind: SlideSolution, Bullets: []string{}},
		{Kind: SlideMarket, Bullets: []string{}},
		{Kind: SlideProduct, Bullets: []string{}},
		{Kind: SlideTeam, Bullets: []string{}},
		{Kind: SlideFinance, Bullets: []string{}},
		{Kind: SlideAsk, Bullets: []string{}},
	}}
}

// PitchDeckSchema requires the slides list and a kind on every slide.
func PitchDeckSchema() docstate.Schema[PitchDeck] {
	return docstate.NewRuleSchema(
		docstate.NewStructSchema[PitchDeck](
			docstate.StructRequired[PitchDeck]("slides"),
		),
		[]docstate.Rule{
			{Field: "slides", Expr: `all(slides, {call("nonEmpty", .kind)})`, Message: "every slide needs a kind"},
		},
		docstate.RuleWithFunctionRegistry[PitchDeck](docstate.DefaultFunctionRegistry()),
		docstate.RuleWithKey[PitchDeck](KeyPitchDeck),
	)
}

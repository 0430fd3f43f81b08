package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// Canvas is the business-model canvas document: the nine classic blocks,
// each an ordered list of short entries.
type Canvas struct {
	KeyPartners           []string `json:"keyPartners"`
	KeyActivities         []string `json:"keyActivities"`
	KeyResources          []string `json:"keyResources"`
	ValuePropositions     []string `json:"valuePropositions"`
	CustomerRelationships []string `json:"customerRelationships"`
	Channels              []string `json:"channels"`
	CustomerSegments      []string `json:"customerSegments"`
	CostStructure         []string `json:"costStructure"`
	RevenueStreams        []string `json:"revenueStreams"`
}

// DefaultCanvas returns a canvas with nine empty blocks.
func DefaultCanvas() Canvas {
	return Canvas{
		KeyPartners:           []string{},
		KeyActivities:         []string{},
		KeyResources:          []string{},
		ValuePropositions:     []string{},
		CustomerRelationships: []string{},
		Channels:              []string{},
		CustomerSegments:      []string{},
		CostStructure:         []string{},
		RevenueStreams:        []string{},
	}
}

// CanvasSchema accepts object-shaped canvases.
func CanvasSchema() docstate.Schema[Canvas] {
	return docstate.NewStructSchema[Canvas]()
}

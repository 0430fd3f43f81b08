package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// SWOT is the strengths/weaknesses/opportunities/threats document: four
// ordered lists of free-text entries.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// DefaultSWOT returns a SWOT analysis with four empty quadrants.
func DefaultSWOT() SWOT {
	return SWOT{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		Threats:       []string{},
	}
}

// SWOTSchema accepts object-shaped SWOT records; quadrants persisted before
// a rename are recovered by MigrateSWOT, not here.
func SWOTSchema() docstate.Schema[SWOT] {
	return docstate.NewStructSchema[SWOT]()
}

// MigrateSWOT upgrades legacy SWOT records where the four quadrants were
// persisted under single-letter keys (s, w, o, t). Total and idempotent.
func MigrateSWOT(raw any) SWOT {
	switch typed := raw.(type) {
	case SWOT:
		return typed
	case map[string]any:
		analysis := SWOT{
			Strengths:     stringList(typed, "strengths", "s"),
			Weaknesses:    stringList(typed, "weaknesses", "w"),
			Opportunities: stringList(typed, "opportunities", "o"),
			Threats:       stringList(typed, "threats", "t"),
		}
		return analysis
	default:
		return DefaultSWOT()
	}
}

func stringList(m map[string]any, keys ...string) []string {
	for _, key := range keys {
		items, ok := m[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// Package wizard defines the fixed step sequence of the planning suite and
// computes per-step completion from persisted documents.
package wizard

import (
	"context"

	"github.com/goliatone/go-docstate/export"
	"github.com/goliatone/go-docstate/modules"
	"github.com/goliatone/go-docstate/pkg/storage"
)

// Step is one wizard phase bound to a module's storage key.
type Step struct {
	ID    string
	Title string
	Key   string
	done  func(export.Snapshot) bool
}

// Progress is the completion state of one step.
type Progress struct {
	StepID string
	Title  string
	Done   bool
}

// Steps returns the fixed wizard sequence.
func Steps() []Step {
	return []Step{
		{ID: "plan", Title: "Business Plan", Key: modules.KeyBusinessPlan, done: func(s export.Snapshot) bool {
			return s.BusinessPlan.Summary != ""
		}},
		{ID: "canvas", Title: "Business Model Canvas", Key: modules.KeyCanvas, done: func(s export.Snapshot) bool {
			return len(s.Canvas.ValuePropositions) > 0
		}},
		{ID: "swot", Title: "SWOT Analysis", Key: modules.KeySWOT, done: func(s export.Snapshot) bool {
			return len(s.SWOT.Strengths) > 0 || len(s.SWOT.Weaknesses) > 0 ||
				len(s.SWOT.Opportunities) > 0 || len(s.SWOT.Threats) > 0
		}},
		{ID: "forces", Title: "Five Forces", Key: modules.KeyFiveForces, done: func(s export.Snapshot) bool {
			return s.FiveForces.Rivalry.Intensity != ""
		}},
		{ID: "orgchart", Title: "Org Chart", Key: modules.KeyOrgChart, done: func(s export.Snapshot) bool {
			return len(s.OrgChart.Roles) > 0
		}},
		{ID: "forecast", Title: "Financial Forecast", Key: modules.KeyForecast, done: func(s export.Snapshot) bool {
			return len(s.Forecast.Rows) > 0
		}},
		{ID: "roadmap", Title: "Roadmap", Key: modules.KeyRoadmap, done: func(s export.Snapshot) bool {
			return len(s.Roadmap.Milestones) > 0
		}},
		{ID: "deck", Title: "Pitch Deck", Key: modules.KeyPitchDeck, done: func(s export.Snapshot) bool {
			for _, slide := range s.PitchDeck.Slides {
				if slide.Title != "" || len(slide.Bullets) > 0 {
					return true
				}
			}
			return false
		}},
		{ID: "checklist", Title: "Launch Checklist", Key: modules.KeyChecklist, done: func(s export.Snapshot) bool {
			if len(s.Checklist) == 0 {
				return false
			}
			for _, item := range s.Checklist {
				if !item.Completed {
					return false
				}
			}
			return true
		}},
	}
}

// Evaluate reads one snapshot and reports completion for every step.
func Evaluate(ctx context.Context, store storage.Store) []Progress {
	snapshot := export.Reader{Store: store}.Snapshot(ctx)
	steps := Steps()
	progress := make([]Progress, 0, len(steps))
	for _, step := range steps {
		progress = append(progress, Progress{
			StepID: step.ID,
			Title:  step.Title,
			Done:   step.done(snapshot),
		})
	}
	return progress
}

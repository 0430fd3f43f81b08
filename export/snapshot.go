// Package export aggregates every module's persisted document into a single
// point-in-time snapshot for downstream renderers.
//
// Reads are best-effort and strictly read-only: each key is read directly
// from the store (never through a module's live binding), applies the same
// decode-failure-to-default rule bindings use, and no key is ever written.
// There is no consistency guarantee across keys; each document may reflect a
// different edit time.
package export

import (
	"context"
	"encoding/json"
	"io"
	"time"

	docstate "github.com/goliatone/go-docstate"
	"github.com/goliatone/go-docstate/modules"
	"github.com/goliatone/go-docstate/pkg/brand"
	"github.com/goliatone/go-docstate/pkg/storage"
)

// Snapshot is the aggregated plan at one moment.
type Snapshot struct {
	TakenAt      time.Time            `json:"takenAt"`
	BusinessPlan modules.BusinessPlan `json:"businessPlan"`
	OrgChart     modules.OrgChart     `json:"orgChart"`
	SWOT         modules.SWOT         `json:"swot"`
	FiveForces   modules.FiveForces   `json:"fiveForces"`
	Forecast     modules.Forecast     `json:"forecast"`
	PitchDeck    modules.PitchDeck    `json:"pitchDeck"`
	Checklist    modules.Checklist    `json:"checklist"`
	Roadmap      modules.Roadmap      `json:"roadmap"`
	Canvas       modules.Canvas       `json:"canvas"`
	Brand        brand.Kit            `json:"brand"`
}

// Reader takes snapshots from a store.
type Reader struct {
	Store storage.Store
	Clock func() time.Time
}

// Snapshot reads every module document best-effort. Keys that are absent,
// corrupt, or invalid contribute their module's default.
func (r Reader) Snapshot(ctx context.Context) Snapshot {
	now := r.Clock
	if now == nil {
		now = time.Now
	}
	return Snapshot{
		TakenAt: now(),
		BusinessPlan: docstate.Read(ctx, r.Store, modules.KeyBusinessPlan,
			modules.DefaultBusinessPlan(), modules.BusinessPlanSchema()),
		OrgChart: docstate.Read(ctx, r.Store, modules.KeyOrgChart,
			modules.DefaultOrgChart(), modules.OrgChartSchema(),
			docstate.WithMigration(modules.MigrateOrgChart)),
		SWOT: docstate.Read(ctx, r.Store, modules.KeySWOT,
			modules.DefaultSWOT(), modules.SWOTSchema(),
			docstate.WithMigration(modules.MigrateSWOT)),
		FiveForces: docstate.Read(ctx, r.Store, modules.KeyFiveForces,
			modules.DefaultFiveForces(), modules.FiveForcesSchema()),
		Forecast: docstate.Read(ctx, r.Store, modules.KeyForecast,
			modules.DefaultForecast(), modules.ForecastSchema()),
		PitchDeck: docstate.Read(ctx, r.Store, modules.KeyPitchDeck,
			modules.DefaultPitchDeck(), modules.PitchDeckSchema()),
		Checklist: docstate.Read(ctx, r.Store, modules.KeyChecklist,
			modules.DefaultChecklist(), modules.ChecklistSchema()),
		Roadmap: docstate.Read(ctx, r.Store, modules.KeyRoadmap,
			modules.DefaultRoadmap(), modules.RoadmapSchema()),
		Canvas: docstate.Read(ctx, r.Store, modules.KeyCanvas,
			modules.DefaultCanvas(), modules.CanvasSchema()),
		Brand: docstate.Read(ctx, r.Store, brand.StorageKey,
			brand.DefaultKit(), brand.KitSchema()),
	}
}

// WriteBundle serializes the snapshot as one indented JSON document, the
// hand-off format for external renderers.
func WriteBundle(w io.Writer, snapshot Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}

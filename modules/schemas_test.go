package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docstate "github.com/goliatone/go-docstate"
)

func TestFiveForcesIntensityLevels(t *testing.T) {
	schema := FiveForcesSchema()

	doc, err := schema.Parse(map[string]any{
		"rivalry":     map[string]any{"intensity": "high", "factors": []any{"many players"}},
		"buyerPower":  map[string]any{"intensity": ""},
		"newEntrants": map[string]any{"intensity": "low"},
	})
	require.NoError(t, err, "empty intensity means not assessed yet and is valid")
	assert.Equal(t, "high", doc.Rivalry.Intensity)

	_, err = schema.Parse(map[string]any{
		"rivalry": map[string]any{"intensity": "extreme"},
	})
	var fieldErrs docstate.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Fields(), "rivalry.intensity")
}

func TestDefaultFiveForcesIsValid(t *testing.T) {
	_, err := FiveForcesSchema().Parse(DefaultFiveForces())
	require.NoError(t, err)
}

func TestRoadmapQuarterFormat(t *testing.T) {
	schema := RoadmapSchema()

	doc, err := schema.Parse(map[string]any{
		"milestones": []any{
			map[string]any{"title": "Ship the MVP", "quarter": "2026-Q1"},
		},
	})
	require.NoError(t, err)
	require.Len(t, doc.Milestones, 1)

	_, err = schema.Parse(map[string]any{
		"milestones": []any{
			map[string]any{"title": "Ship the MVP", "quarter": "Q1 2026"},
		},
	})
	var fieldErrs docstate.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Fields(), "milestones")
}

func TestPitchDeckSlidesNeedKinds(t *testing.T) {
	schema := PitchDeckSchema()

	deck, err := schema.Parse(DefaultPitchDeck())
	require.NoError(t, err)
	assert.Len(t, deck.Slides, 8, "the default deck carries the full skeleton")

	_, err = schema.Parse(map[string]any{
		"slides": []any{map[string]any{"kind": "", "title": "Untitled"}},
	})
	var fieldErrs docstate.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Fields(), "slides")
}

func TestCanvasAcceptsPartialBlocks(t *testing.T) {
	canvas, err := CanvasSchema().Parse(map[string]any{
		"valuePropositions": []any{"analytics without a data team"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"analytics without a data team"}, canvas.ValuePropositions)
}

func TestBusinessPlanSchemaShape(t *testing.T) {
	plan, err := BusinessPlanSchema().Parse(map[string]any{"summary": "Bakery analytics."})
	require.NoError(t, err)
	assert.Equal(t, "Bakery analytics.", plan.Summary)

	_, err = BusinessPlanSchema().Parse([]any{"not", "an", "object"})
	var fieldErrs docstate.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
}

func TestModuleKeysAreDistinct(t *testing.T) {
	keys := []string{
		KeyBusinessPlan, KeyOrgChart, KeySWOT, KeyFiveForces, KeyForecast,
		KeyPitchDeck, KeyChecklist, KeyRoadmap, KeyCanvas,
	}
	seen := map[string]bool{}
	for _, key := range keys {
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}

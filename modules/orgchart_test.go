package modules

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docstate "github.com/goliatone/go-docstate"
	"github.com/goliatone/go-docstate/pkg/storage"
)

func TestMigrateOrgChartLegacyBareArray(t *testing.T) {
	legacy := []byte(`[
		{"name": "Dana Ortiz", "title": "CEO", "photoUrl": "https://example.com/dana.png"},
		{"name": "Lee Akana", "title": "CTO", "reportsTo": "Dana Ortiz"}
	]`)
	var raw any
	require.NoError(t, json.Unmarshal(legacy, &raw))

	chart := MigrateOrgChart(raw)
	require.Len(t, chart.Roles, 2)

	assert.Equal(t, "Dana Ortiz", chart.Roles[0].Name)
	assert.Equal(t, "CEO", chart.Roles[0].Title)
	assert.Equal(t, "url:https://example.com/dana.png", chart.Roles[0].PhotoAssetID,
		"legacy photo URLs become url-scheme asset references")
	assert.Empty(t, chart.Roles[0].Bio)
	assert.Empty(t, chart.Roles[0].LinkedInURL)

	assert.Equal(t, "Lee Akana", chart.Roles[1].Name)
	assert.Empty(t, chart.Roles[1].PhotoAssetID)
	assert.Equal(t, "Dana Ortiz", chart.Roles[1].ReportsTo)
}

func TestMigrateOrgChartKeepsExistingAssetReference(t *testing.T) {
	raw := []any{
		map[string]any{
			"name":         "Dana Ortiz",
			"photoAssetId": "asset-1",
			"photoUrl":     "https://example.com/stale.png",
		},
	}
	chart := MigrateOrgChart(raw)
	require.Len(t, chart.Roles, 1)
	assert.Equal(t, "asset-1", chart.Roles[0].PhotoAssetID,
		"an existing asset reference must not be overwritten by a stale photoUrl")
}

func TestMigrateOrgChartModernShape(t *testing.T) {
	raw := map[string]any{
		"roles": []any{
			map[string]any{"id": "ceo", "name": "Dana Ortiz", "bio": "Founder."},
		},
	}
	chart := MigrateOrgChart(raw)
	require.Len(t, chart.Roles, 1)
	assert.Equal(t, "ceo", chart.Roles[0].ID)
	assert.Equal(t, "Founder.", chart.Roles[0].Bio)
}

func TestMigrateOrgChartIsTotal(t *testing.T) {
	for _, raw := range []any{nil, "text", 42, map[string]any{}, []any{"not an object"}} {
		chart := MigrateOrgChart(raw)
		assert.NotNil(t, chart.Roles, "input %v", raw)
		assert.Empty(t, chart.Roles, "input %v", raw)
	}
}

func TestMigrateOrgChartIsIdempotent(t *testing.T) {
	raw := []any{
		map[string]any{"name": "Dana Ortiz", "photoUrl": "https://example.com/dana.png"},
	}
	once := MigrateOrgChart(raw)
	twice := MigrateOrgChart(any(once))
	assert.Equal(t, once, twice)
}

func TestOrgChartSchemaRequiresRoles(t *testing.T) {
	schema := OrgChartSchema()

	_, err := schema.Parse(map[string]any{})
	var fieldErrs docstate.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{"roles"}, fieldErrs.Fields())

	chart, err := schema.Parse(map[string]any{"roles": []any{}})
	require.NoError(t, err)
	assert.Empty(t, chart.Roles)
}

func TestOrgChartLegacyRecordLoadsThroughBinding(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	legacy := []byte(`[{"name": "Dana Ortiz", "title": "CEO", "photoUrl": "https://example.com/dana.png"}]`)
	_, err := store.Save(ctx, KeyOrgChart, legacy, storage.Meta{})
	require.NoError(t, err)

	binding, err := docstate.Open(ctx, store, KeyOrgChart,
		DefaultOrgChart(), OrgChartSchema(),
		docstate.WithMigration(MigrateOrgChart))
	require.NoError(t, err)
	defer binding.Close()

	chart := binding.Value()
	require.Len(t, chart.Roles, 1)
	assert.Equal(t, "url:https://example.com/dana.png", chart.Roles[0].PhotoAssetID)
}

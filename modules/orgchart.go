package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// Role is one person in the org chart. PhotoAssetID references the asset
// store rather than embedding an image URL.
type Role struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	PhotoAssetID string `json:"photoAssetId"`
	Bio          string `json:"bio"`
	LinkedInURL  string `json:"linkedinUrl"`
	ReportsTo    string `json:"reportsTo"`
}

// OrgChart is the org-chart document.
type OrgChart struct {
	Roles []Role `json:"roles"`
}

// DefaultOrgChart returns an org chart with no roles.
func DefaultOrgChart() OrgChart {
	return OrgChart{Roles: []Role{}}
}

// OrgChartSchema requires the roles field and the per-role identifiers.
func OrgChartSchema() docstate.Schema[OrgChart] {
	return docstate.NewStructSchema[OrgChart](
		docstate.StructRequired[OrgChart]("roles"),
	)
}

// MigrateOrgChart upgrades legacy org-chart records. Two legacy conventions
// are recognised structurally:
//
//   - the record is a bare array of role objects instead of {"roles": [...]}
//   - roles carry a photoUrl string instead of a photoAssetId reference, and
//     lack the bio and linkedinUrl fields added later
//
// Legacy photoUrl values become url-scheme asset references
// ("url:<original>") so the asset layer can ingest them lazily; they are
// never copied raw into photoAssetId. The migration is total (any input,
// including nil and empty arrays, yields a valid OrgChart) and idempotent.
func MigrateOrgChart(raw any) OrgChart {
	chart := OrgChart{Roles: []Role{}}

	var items []any
	switch typed := raw.(type) {
	case OrgChart:
		// Already current shape; migrations are idempotent.
		if typed.Roles == nil {
			typed.Roles = []Role{}
		}
		return typed
	case []any:
		items = typed
	case map[string]any:
		if roles, ok := typed["roles"].([]any); ok {
			items = roles
		}
	default:
		return chart
	}

	for _, item := range items {
		legacy, ok := item.(map[string]any)
		if !ok {
			continue
		}
		role := Role{
			ID:           stringField(legacy, "id"),
			Name:         stringField(legacy, "name"),
			Title:        stringField(legacy, "title"),
			PhotoAssetID: stringField(legacy, "photoAssetId"),
			Bio:          stringField(legacy, "bio"),
			LinkedInURL:  stringField(legacy, "linkedinUrl"),
			ReportsTo:    stringField(legacy, "reportsTo"),
		}
		if role.PhotoAssetID == "" {
			if photoURL := stringField(legacy, "photoUrl"); photoURL != "" {
				role.PhotoAssetID = "url:" + photoURL
			}
		}
		chart.Roles = append(chart.Roles, role)
	}
	return chart
}

func stringField(m map[string]any, key string) string {
	value, _ := m[key].(string)
	return value
}

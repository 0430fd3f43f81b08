package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSWOTLegacySingleLetterKeys(t *testing.T) {
	raw := map[string]any{
		"s": []any{"fast team"},
		"w": []any{"no runway"},
		"o": []any{"open market"},
		"t": []any{"incumbents", 42}, // non-strings are dropped
	}

	analysis := MigrateSWOT(raw)
	assert.Equal(t, []string{"fast team"}, analysis.Strengths)
	assert.Equal(t, []string{"no runway"}, analysis.Weaknesses)
	assert.Equal(t, []string{"open market"}, analysis.Opportunities)
	assert.Equal(t, []string{"incumbents"}, analysis.Threats)
}

func TestMigrateSWOTPrefersModernKeys(t *testing.T) {
	raw := map[string]any{
		"strengths": []any{"modern"},
		"s":         []any{"legacy"},
	}
	analysis := MigrateSWOT(raw)
	assert.Equal(t, []string{"modern"}, analysis.Strengths)
}

func TestMigrateSWOTIsTotalAndIdempotent(t *testing.T) {
	for _, raw := range []any{nil, "text", []any{1, 2}} {
		analysis := MigrateSWOT(raw)
		assert.Equal(t, DefaultSWOT(), analysis, "input %v", raw)
	}

	once := MigrateSWOT(map[string]any{"s": []any{"fast team"}})
	twice := MigrateSWOT(any(once))
	assert.Equal(t, once, twice)
}

func TestSWOTSchemaAcceptsPartialRecords(t *testing.T) {
	analysis, err := SWOTSchema().Parse(map[string]any{"strengths": []any{"fast team"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"fast team"}, analysis.Strengths)
	assert.Nil(t, analysis.Threats)
}

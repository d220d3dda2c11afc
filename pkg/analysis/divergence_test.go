package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/mirror/pkg/analysis"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/reconcile"
	"github.com/agentstation/mirror/pkg/schema"
	"github.com/agentstation/mirror/pkg/score"
)

func TestInspectDivergenceExample(t *testing.T) {
	ground, mirror := people()
	v, err := analysis.InspectDivergence(build(t, ground, mirror, nil), "name")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name_ground", "name_mirror", "name:exact-match"}, v.ColumnNames())
	assert.Equal(t, [][]string{{"2", "bob", "bobby", "0"}}, v.Strings())
}

func TestInspectDivergenceOptions(t *testing.T) {
	ground, mirror := contacts()
	m := build(t, ground, mirror, schema.Assignment{
		"city": {score.CaseInsensitive, score.ExactMatch},
		"name": {score.SimilarityRatio},
	})

	t.Run("defaults to exact-match when assigned", func(t *testing.T) {
		v, err := analysis.InspectDivergence(m, "city")
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "city_ground", "city_mirror", "city:case-insensitive", "city:exact-match"}, v.ColumnNames())
		assert.Equal(t, 3, v.Len(), "lima/LIMA, kyiv/kiev, rome/roma")
	})

	t.Run("explicit strategy", func(t *testing.T) {
		v, err := analysis.InspectDivergence(m, "city", analysis.WithStrategy(score.CaseInsensitive))
		require.NoError(t, err)
		assert.Equal(t, 2, v.Len())
	})

	t.Run("first strategy otherwise", func(t *testing.T) {
		v, err := analysis.InspectDivergence(m, "name", analysis.HideKeys())
		require.NoError(t, err)
		assert.Equal(t, []string{"name_ground", "name_mirror", "name:similarity-ratio"}, v.ColumnNames())
		assert.Equal(t, 3, v.Len())
	})

	t.Run("alias", func(t *testing.T) {
		v, err := analysis.InspectDivergence(m, "name", analysis.WithStrategy("sequence-matcher"))
		require.NoError(t, err)
		assert.Equal(t, 3, v.Len())
	})

	t.Run("extra fields", func(t *testing.T) {
		v, err := analysis.InspectDivergence(m, "name",
			analysis.WithExtraFields("zip_ground", "_mean", "id"))
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "zip_ground", "_mean", "name_ground", "name_mirror", "name:similarity-ratio"}, v.ColumnNames())
	})
}

func TestInspectDivergenceMatchesScores(t *testing.T) {
	ground, mirror := contacts()
	m := build(t, ground, mirror, nil)
	v, err := analysis.InspectDivergence(m, "name")
	require.NoError(t, err)

	idx, ok := m.ScoreIndex("name", score.ExactMatch)
	require.True(t, ok)
	want := 0
	for _, r := range m.Rows() {
		if r.Status == reconcile.StatusBoth && r.Scores[idx] < 1 {
			want++
		}
	}
	assert.Equal(t, want, v.Len())
}

func TestInspectDivergenceErrors(t *testing.T) {
	ground, mirror := people()
	m := build(t, ground, mirror, nil)

	tests := []struct {
		name  string
		field string
		opts  []analysis.DivergenceOption
	}{
		{"unknown field", "age", nil},
		{"key field", "id", nil},
		{"unassigned strategy", "name", []analysis.DivergenceOption{analysis.WithStrategy(score.SimilarityRatio)}},
		{"unknown strategy", "name", []analysis.DivergenceOption{analysis.WithStrategy("levenshtein")}},
		{"unknown extra", "name", []analysis.DivergenceOption{analysis.WithExtraFields("nope")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analysis.InspectDivergence(m, tt.field, tt.opts...)
			assert.ErrorIs(t, err, errors.ErrConfiguration, "got %v", err)
		})
	}
}

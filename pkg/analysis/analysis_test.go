package analysis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/mirror/pkg/dataset"
	"github.com/agentstation/mirror/pkg/reconcile"
	"github.com/agentstation/mirror/pkg/schema"
)

func build(t *testing.T, ground, mirror *dataset.Dataset, a schema.Assignment) *reconcile.Map {
	t.Helper()
	ref, err := schema.NewReference(ground.Columns(), []string{"id"})
	require.NoError(t, err)
	cl, err := schema.Classify(ref, mirror.Columns(), a)
	require.NoError(t, err)
	rc, err := reconcile.New(cl, ground, mirror)
	require.NoError(t, err)
	m, err := rc.Build(context.Background())
	require.NoError(t, err)
	return m
}

func people() (*dataset.Dataset, *dataset.Dataset) {
	return dataset.MustNew([]string{"id", "name"}, []any{1, "ann"}, []any{2, "bob"}),
		dataset.MustNew([]string{"id", "name"}, []any{1, "ann"}, []any{2, "bobby"}, []any{3, "cid"})
}

// contacts has rows failing on name only, on city only, on both, and none.
func contacts() (*dataset.Dataset, *dataset.Dataset) {
	cols := []string{"id", "name", "city", "zip"}
	ground := dataset.MustNew(cols,
		[]any{1, "ann", "rome", "001"},
		[]any{2, "bob", "oslo", "002"},
		[]any{3, "cid", "lima", "003"},
		[]any{4, "dan", "kyiv", "004"},
		[]any{5, "eve", "bern", "005"},
		[]any{6, "fay", "rome", "006"},
	)
	mirror := dataset.MustNew(cols,
		[]any{1, "ann", "rome", "001"},
		[]any{2, "bobby", "oslo", "002"},
		[]any{3, "cid", "LIMA", "003"},
		[]any{4, "dan", "kiev", "004"},
		[]any{5, "eva", "bern", "005"},
		[]any{6, "fae", "roma", "006"},
		[]any{7, "gus", "nice", "007"},
	)
	return ground, mirror
}

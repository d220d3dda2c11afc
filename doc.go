// Package mirror compares a ground truth dataset with one or more mirror
// datasets that are supposed to reproduce it, and measures how faithfully
// each mirror does.
//
// A Ground declares the key columns that identify a record. Each Mirror
// is joined with its Ground on those keys, every shared non-key attribute
// is scored under one or more strategies from the score registry, and the
// result is kept as a reconciliation map from which statistics, error
// frequencies and divergences are derived.
//
//	ground, err := mirror.NewGround(groundData, []string{"id"})
//	if err != nil {
//		return err
//	}
//	m, err := mirror.New(ctx, ground, mirrorData,
//		mirror.WithScoring(schema.Assignment{"name": {"exact-match", "similarity-ratio"}}))
//	if err != nil {
//		return err
//	}
//	fmt.Println(m.Stats().KeyMatching.Matched)
package mirror

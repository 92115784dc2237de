// Package testkit provides shared dataset fixtures for tests.
package testkit

import "segscore/domain/dataset"

// CompleteAgreement builds a dataset where four coders segment two items
// identically.
func CompleteAgreement() *dataset.Dataset {
	ds := dataset.New()
	for _, coder := range []dataset.Coder{"c1", "c2", "c3", "c4"} {
		ds.Add("item1", coder, dataset.Masses{2, 3, 6})
		ds.Add("item2", coder, dataset.Masses{5, 5})
	}
	return ds
}

// LargeDisagreement builds a dataset where two coders disagree on every
// placement: one fully segments each item, the other never segments.
func LargeDisagreement() *dataset.Dataset {
	ds := dataset.New()
	ds.Add("item1", "c1", dataset.Masses{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	ds.Add("item1", "c2", dataset.Masses{11})
	ds.Add("item2", "c1", dataset.Masses{1, 1, 1, 1, 1, 1, 1, 1})
	ds.Add("item2", "c2", dataset.Masses{8})
	return ds
}

// NearMiss builds a two-coder dataset with perfect agreement on one item
// and an off-by-one boundary on the other.
func NearMiss() *dataset.Dataset {
	ds := dataset.New()
	ds.Add("item1", "c1", dataset.Masses{2, 8})
	ds.Add("item1", "c2", dataset.Masses{2, 8})
	ds.Add("item2", "c1", dataset.Masses{5, 5})
	ds.Add("item2", "c2", dataset.Masses{4, 6})
	return ds
}

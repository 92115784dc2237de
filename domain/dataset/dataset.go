// Package dataset models a multiply-coded segmentation dataset: for each
// item, the segment masses produced by each coder.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"segscore/domain/boundary"
	"segscore/domain/core"
)

// Coder identifies one annotator.
type Coder string

// ItemID identifies one segmented item (a document, a transcript, ...).
type ItemID string

// Masses is a coder's segmentation of one item as segment lengths in
// minimal units.
type Masses []int

// Units returns the number of units the segmentation covers.
func (m Masses) Units() int { return boundary.Units(m) }

// Dataset holds every coding of every item plus the boundary types in
// play. Items need not share coders, but agreement coefficients require
// that they do.
type Dataset struct {
	SegmentationType string
	BoundaryTypes    boundary.Set
	Items            map[ItemID]map[Coder]Masses
}

// New creates an empty linear dataset with the default boundary type.
func New() *Dataset {
	return &Dataset{
		SegmentationType: "linear",
		BoundaryTypes:    boundary.NewSet(boundary.DefaultLabel),
		Items:            make(map[ItemID]map[Coder]Masses),
	}
}

// Add records one coder's masses for one item, replacing any previous
// coding by the same coder.
func (d *Dataset) Add(item ItemID, coder Coder, masses Masses) {
	if d.Items == nil {
		d.Items = make(map[ItemID]map[Coder]Masses)
	}
	codings, ok := d.Items[item]
	if !ok {
		codings = make(map[Coder]Masses)
		d.Items[item] = codings
	}
	codings[coder] = masses
}

// ItemIDs returns all item identifiers in ascending order.
func (d *Dataset) ItemIDs() []ItemID {
	out := make([]ItemID, 0, len(d.Items))
	for id := range d.Items {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Coders returns the union of coders across all items in ascending order.
func (d *Dataset) Coders() []Coder {
	seen := make(map[Coder]bool)
	for _, codings := range d.Items {
		for c := range codings {
			seen[c] = true
		}
	}
	out := make([]Coder, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CodersFor returns the coders of one item in ascending order.
func (d *Dataset) CodersFor(item ItemID) []Coder {
	codings := d.Items[item]
	out := make([]Coder, 0, len(codings))
	for c := range codings {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Pair is one coder pair on one item.
type Pair struct {
	Item    ItemID
	CoderA  Coder
	CoderB  Coder
	MassesA Masses
	MassesB Masses
}

// Pairs enumerates every coder pair of every item in a fixed order:
// ascending item, then ascending coder pair. Downstream aggregation
// depends on this order being stable.
func (d *Dataset) Pairs() []Pair {
	var out []Pair
	for _, item := range d.ItemIDs() {
		coders := d.CodersFor(item)
		for i := 0; i < len(coders); i++ {
			for j := i + 1; j < len(coders); j++ {
				out = append(out, Pair{
					Item:    item,
					CoderA:  coders[i],
					CoderB:  coders[j],
					MassesA: d.Items[item][coders[i]],
					MassesB: d.Items[item][coders[j]],
				})
			}
		}
	}
	return out
}

// Merge copies every coding of other into d. Conflicting boundary-type
// sets are unioned.
func (d *Dataset) Merge(other *Dataset) {
	if other == nil {
		return
	}
	for item, codings := range other.Items {
		for coder, masses := range codings {
			d.Add(item, coder, masses)
		}
	}
	for l := range other.BoundaryTypes {
		d.BoundaryTypes[l] = struct{}{}
	}
}

// Validate checks that the dataset supports pairwise comparison: at least
// one item, positive masses, and equal unit counts among the coders of
// each item.
func (d *Dataset) Validate() error {
	if len(d.Items) == 0 {
		return core.ErrEmptyDataset
	}
	for _, item := range d.ItemIDs() {
		units := -1
		for _, coder := range d.CodersFor(item) {
			masses := d.Items[item][coder]
			for i, m := range masses {
				if m < 1 {
					return fmt.Errorf("item %s coder %s: %w", item, coder, core.NewInvalidMassError(i, m))
				}
			}
			u := masses.Units()
			if units == -1 {
				units = u
			} else if u != units {
				return fmt.Errorf("item %s coder %s: %w", item, coder, core.NewUnitCountMismatchError(units, u))
			}
		}
	}
	return nil
}

// RequireSharedItems checks that every coder codes every item, which the
// chance-corrected agreement coefficients assume.
func (d *Dataset) RequireSharedItems() error {
	coders := d.Coders()
	if len(coders) < 2 {
		return core.ErrTooFewCoders
	}
	for _, item := range d.ItemIDs() {
		if len(d.CodersFor(item)) != len(coders) {
			return fmt.Errorf("item %s: %w", item, core.ErrItemMismatch)
		}
	}
	return nil
}

// Hash returns a deterministic content hash of the dataset, used to tie
// stored results back to their input.
func (d *Dataset) Hash() core.Hash {
	var sb strings.Builder
	sb.WriteString(d.SegmentationType)
	for _, l := range d.BoundaryTypes.Labels() {
		fmt.Fprintf(&sb, "|t%d", l)
	}
	for _, item := range d.ItemIDs() {
		fmt.Fprintf(&sb, "|%s", item)
		for _, coder := range d.CodersFor(item) {
			fmt.Fprintf(&sb, ";%s=%v", coder, d.Items[item][coder])
		}
	}
	return core.NewHash([]byte(sb.String()))
}

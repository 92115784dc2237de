package editdist

import (
	"segscore/domain/boundary"
	"segscore/domain/core"
)

// positionDiff is the working difference record for one position: the
// symmetric difference d and the one-sided residues a and b. Transposition
// resolution removes claimed labels from all three sets in place; the
// substitution matcher must observe only what remains.
type positionDiff struct {
	d boundary.Set
	a boundary.Set
	b boundary.Set
}

// discard removes a label from all three sets.
func (p *positionDiff) discard(l boundary.Label) {
	delete(p.d, l)
	delete(p.a, l)
	delete(p.b, l)
}

// editCounts returns the closed-form addition and substitution counts the
// residual sets would yield if matched now. Used by the transposition
// guard to detect when a transposition would destroy two otherwise-valid
// substitutions.
func (p *positionDiff) editCounts() (additions, substitutions int) {
	additions = p.a.Len() - p.b.Len()
	if additions < 0 {
		additions = -additions
	}
	substitutions = (p.d.Len() - additions) / 2
	return additions, substitutions
}

// differenceTable maps position index to its difference record, restricted
// to positions with a non-empty symmetric difference. Records emptied by
// transposition resolution stay in the table; later stages simply find
// nothing left to match there. A table belongs to exactly one comparison.
type differenceTable struct {
	byPos     map[int]*positionDiff
	positions []int // ascending, fixed at construction
}

// newDifferenceTable computes per-position differences between two
// equal-length boundary strings.
func newDifferenceTable(a, b boundary.String) (*differenceTable, error) {
	if len(a) != len(b) {
		return nil, core.NewLengthMismatchError(len(a), len(b))
	}
	t := &differenceTable{byPos: make(map[int]*positionDiff)}
	for i := range a {
		d := boundary.SymmetricDiff(a[i], b[i])
		if d.Len() == 0 {
			continue
		}
		t.byPos[i] = &positionDiff{
			d: d,
			a: boundary.Minus(a[i], b[i]),
			b: boundary.Minus(b[i], a[i]),
		}
		t.positions = append(t.positions, i)
	}
	return t, nil
}

// at returns the record for a position, if any.
func (t *differenceTable) at(i int) (*positionDiff, bool) {
	p, ok := t.byPos[i]
	return p, ok
}

package editdist

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"segscore/domain/boundary"
	"segscore/domain/core"
)

func bs(sets ...boundary.Set) boundary.String { return boundary.String(sets) }

func set(labels ...boundary.Label) boundary.Set { return boundary.NewSet(labels...) }

// symmetricDiffTotal counts differing label occurrences across all
// positions of the original inputs.
func symmetricDiffTotal(a, b boundary.String) int {
	total := 0
	for i := range a {
		total += boundary.SymmetricDiff(a[i], b[i]).Len()
	}
	return total
}

func TestDistanceIdentity(t *testing.T) {
	s := bs(set(1), set(), set(1, 2), set(3), set())
	d, err := Distance(s, s, DefaultMaxSpan)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Empty() {
		t.Errorf("self-comparison should be empty, got %+v", d)
	}
}

func TestDistanceIdenticalContent(t *testing.T) {
	// Two distinct strings with identical label sets at every position.
	a := bs(set(1), set(2), set(1, 3), set(), set(2))
	b := bs(set(1), set(2), set(1, 3), set(), set(2))
	d, err := Distance(a, b, DefaultMaxSpan)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Empty() {
		t.Errorf("identical codings should be empty, got %+v", d)
	}
}

func TestDistanceZeroLength(t *testing.T) {
	d, err := Distance(boundary.String{}, boundary.String{}, DefaultMaxSpan)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Empty() {
		t.Errorf("zero-length comparison should be empty, got %+v", d)
	}
}

func TestDistanceLengthMismatch(t *testing.T) {
	_, err := Distance(bs(set(1)), bs(set(1), set()), DefaultMaxSpan)
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Fatalf("error = %v, want ErrLengthMismatch", err)
	}
}

func TestDistanceSinglePositionMatching(t *testing.T) {
	// A = {1,2,3,4}, B = {1,6}: the singleton 6 pairs with 4 (distance 2,
	// minimal over all pairings); 2 and 3 are left as A-side additions.
	a := bs(set(1, 2, 3, 4))
	b := bs(set(1, 6))

	d, err := Distance(a, b, DefaultMaxSpan)
	if err != nil {
		t.Fatal(err)
	}

	wantAdds := []Addition{{Label: 2, Side: SideA}, {Label: 3, Side: SideA}}
	if !reflect.DeepEqual(d.Additions, wantAdds) {
		t.Errorf("additions = %v, want %v", d.Additions, wantAdds)
	}
	wantSubs := []Substitution{{A: 4, B: 6}}
	if !reflect.DeepEqual(d.Substitutions, wantSubs) {
		t.Errorf("substitutions = %v, want %v", d.Substitutions, wantSubs)
	}
	if len(d.Transpositions) != 0 {
		t.Errorf("transpositions = %v, want none", d.Transpositions)
	}
}

func TestDistancePureTransposition(t *testing.T) {
	// The label exists in A at position 0 and in B at position 1 only.
	a := bs(set(1), set())
	b := bs(set(), set(1))

	d, err := Distance(a, b, DefaultMaxSpan)
	if err != nil {
		t.Fatal(err)
	}

	want := []Transposition{{Start: 0, End: 1, Label: 1}}
	if !reflect.DeepEqual(d.Transpositions, want) {
		t.Errorf("transpositions = %v, want %v", d.Transpositions, want)
	}
	if len(d.Additions) != 0 || len(d.Substitutions) != 0 {
		t.Errorf("expected pure transposition, got %+v", d)
	}
}

func TestDistanceSpanBound(t *testing.T) {
	// Label shifted by two positions: span 3 is required to see it.
	a := bs(set(1), set(), set())
	b := bs(set(), set(), set(1))

	d, err := Distance(a, b, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Transpositions) != 0 {
		t.Errorf("span 3 shift found with maxSpan 2: %v", d.Transpositions)
	}
	wantAdds := []Addition{{Label: 1, Side: SideA}, {Label: 1, Side: SideB}}
	if !reflect.DeepEqual(d.Additions, wantAdds) {
		t.Errorf("additions = %v, want %v", d.Additions, wantAdds)
	}

	d, err = Distance(a, b, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []Transposition{{Start: 0, End: 2, Label: 1}}
	if !reflect.DeepEqual(d.Transpositions, want) {
		t.Errorf("transpositions = %v, want %v", d.Transpositions, want)
	}
	for _, tr := range d.Transpositions {
		if tr.Span() > 3 {
			t.Errorf("transposition %v exceeds max span", tr)
		}
	}
}

func TestDistanceTranspositionsDisabled(t *testing.T) {
	a := bs(set(1), set())
	b := bs(set(), set(1))

	for _, maxSpan := range []int{1, 0, -3} {
		d, err := Distance(a, b, maxSpan)
		if err != nil {
			t.Fatal(err)
		}
		if len(d.Transpositions) != 0 {
			t.Errorf("maxSpan %d: transpositions = %v, want none", maxSpan, d.Transpositions)
		}
		wantAdds := []Addition{{Label: 1, Side: SideA}, {Label: 1, Side: SideB}}
		if !reflect.DeepEqual(d.Additions, wantAdds) {
			t.Errorf("maxSpan %d: additions = %v, want %v", maxSpan, d.Additions, wantAdds)
		}
	}
}

func TestDistanceShorterSpansResolveFirst(t *testing.T) {
	// An adjacent shift must be claimed at span 2 even when a wider span
	// could also explain it.
	a := bs(set(1), set(), set())
	b := bs(set(), set(1), set())

	d, err := Distance(a, b, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []Transposition{{Start: 0, End: 1, Label: 1}}
	if !reflect.DeepEqual(d.Transpositions, want) {
		t.Errorf("transpositions = %v, want %v", d.Transpositions, want)
	}
}

func TestDistanceNoOverlappingClaims(t *testing.T) {
	// Position 1 can complete a transposition with position 0 or with
	// position 2; first-found-wins keeps (0,1) and leaves the label at
	// position 2 as an addition.
	a := bs(set(1), set(), set(1))
	b := bs(set(), set(1), set())

	d, err := Distance(a, b, 2)
	if err != nil {
		t.Fatal(err)
	}
	wantTr := []Transposition{{Start: 0, End: 1, Label: 1}}
	if !reflect.DeepEqual(d.Transpositions, wantTr) {
		t.Errorf("transpositions = %v, want %v", d.Transpositions, wantTr)
	}
	wantAdds := []Addition{{Label: 1, Side: SideA}}
	if !reflect.DeepEqual(d.Additions, wantAdds) {
		t.Errorf("additions = %v, want %v", d.Additions, wantAdds)
	}
}

func TestDistanceKeepsSubstitutionPairs(t *testing.T) {
	// Labels 1 and 2 both look transposed between the two positions, but
	// each position still supports a genuine substitution; the
	// transposition must not destroy two valid substitutions.
	a := bs(set(1), set(2))
	b := bs(set(2), set(1))

	d, err := Distance(a, b, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Transpositions) != 0 {
		t.Errorf("transpositions = %v, want none", d.Transpositions)
	}
	wantSubs := []Substitution{{A: 1, B: 2}, {A: 2, B: 1}}
	if !reflect.DeepEqual(d.Substitutions, wantSubs) {
		t.Errorf("substitutions = %v, want %v", d.Substitutions, wantSubs)
	}
	if len(d.Additions) != 0 {
		t.Errorf("additions = %v, want none", d.Additions)
	}
}

func TestDistanceConservation(t *testing.T) {
	// |Additions| + 2*|Substitutions| + 2*|Transpositions| must equal the
	// differing label occurrences of the original inputs.
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		length := 1 + rng.Intn(12)
		a := make(boundary.String, length)
		b := make(boundary.String, length)
		for i := 0; i < length; i++ {
			a[i] = randomSet(rng)
			b[i] = randomSet(rng)
		}
		maxSpan := rng.Intn(4)

		d, err := Distance(a, b, maxSpan)
		if err != nil {
			t.Fatal(err)
		}
		got := len(d.Additions) + 2*len(d.Substitutions) + 2*len(d.Transpositions)
		want := symmetricDiffTotal(a, b)
		if got != want {
			t.Fatalf("trial %d: accounted %d occurrences, want %d (decomposition %+v)",
				trial, got, want, d)
		}
		for _, tr := range d.Transpositions {
			if tr.Span() > maxSpan {
				t.Fatalf("trial %d: transposition %v exceeds max span %d", trial, tr, maxSpan)
			}
		}
	}
}

func TestDistanceDeterminism(t *testing.T) {
	a := bs(set(1, 3), set(), set(2), set(1), set(), set(2, 3))
	b := bs(set(2), set(1), set(), set(3), set(1), set(3))

	first, err := Distance(a, b, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Distance(a, b, 3)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestDistanceDoesNotMutateInputs(t *testing.T) {
	a := bs(set(1), set(2))
	b := bs(set(), set(1))
	aCopy := bs(a[0].Clone(), a[1].Clone())
	bCopy := bs(b[0].Clone(), b[1].Clone())

	if _, err := Distance(a, b, 2); err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if !a[i].Equal(aCopy[i]) || !b[i].Equal(bCopy[i]) {
			t.Fatal("Distance mutated its inputs")
		}
	}
}

func randomSet(rng *rand.Rand) boundary.Set {
	s := boundary.NewSet()
	for l := boundary.Label(1); l <= 3; l++ {
		if rng.Intn(3) == 0 {
			s[l] = struct{}{}
		}
	}
	return s
}

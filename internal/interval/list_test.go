package interval

import (
	"testing"
)

func mkList(t *testing.T, pairs [][2]string) List {
	t.Helper()
	var ds []Date
	for _, p := range pairs {
		ds = append(ds, mustDate(t, p[0], p[1]))
	}
	return From(ds...)
}

func TestFromMergesOverlappingAndAbutting(t *testing.T) {
	l := mkList(t, [][2]string{
		{"2022-08-05T00:00:00Z", "2022-08-05T01:00:00Z"},
		{"2022-08-05T01:00:00Z", "2022-08-05T02:00:00Z"},
		{"2022-08-05T03:00:00Z", "2022-08-05T04:00:00Z"},
	})
	if len(l) != 2 {
		t.Fatalf("expected 2 merged intervals, got %d (%v)", len(l), l)
	}
	for i := 1; i < len(l); i++ {
		if !l[i-1].Stop.Before(l[i].Start) {
			t.Fatalf("invariant violated: %v not strictly before %v", l[i-1], l[i])
		}
	}
}

func TestFromIsIdempotent(t *testing.T) {
	l := mkList(t, [][2]string{
		{"2022-08-05T00:00:00Z", "2022-08-05T01:00:00Z"},
		{"2022-08-05T02:00:00Z", "2022-08-05T03:00:00Z"},
	})
	again := From(l...)
	if len(l) != len(again) {
		t.Fatalf("expected idempotent construction, got %v vs %v", l, again)
	}
	for i := range l {
		if !l[i].Equal(again[i]) {
			t.Fatalf("expected idempotent construction at %d: %v vs %v", i, l[i], again[i])
		}
	}
}

func TestIntersectionCommutes(t *testing.T) {
	a := mkList(t, [][2]string{{"2022-08-05T00:00:00Z", "2022-08-05T01:00:00Z"}})
	b := mkList(t, [][2]string{{"2022-08-05T00:30:00Z", "2022-08-05T02:00:00Z"}})

	ab := Intersection(a, b)
	ba := Intersection(b, a)
	if len(ab) != len(ba) {
		t.Fatalf("intersection should commute: %v vs %v", ab, ba)
	}
	for i := range ab {
		if !ab[i].Equal(ba[i]) {
			t.Fatalf("intersection should commute at %d: %v vs %v", i, ab[i], ba[i])
		}
	}
}

func TestSubtractDisjointFromB(t *testing.T) {
	a := mkList(t, [][2]string{{"2022-08-05T00:00:00Z", "2022-08-05T02:00:00Z"}})
	b := mkList(t, [][2]string{{"2022-08-05T00:30:00Z", "2022-08-05T01:00:00Z"}})

	sub, err := Subtract(a, b)
	if err != nil {
		t.Fatalf("subtract: %v", err)
	}
	if len(Intersection(sub, b)) != 0 {
		t.Fatalf("subtract(A,B) must not intersect B, got %v", Intersection(sub, b))
	}
}

func TestUnionOfComplementRestoresSpan(t *testing.T) {
	a := mkList(t, [][2]string{
		{"2022-08-05T00:10:00Z", "2022-08-05T00:20:00Z"},
		{"2022-08-05T00:40:00Z", "2022-08-05T00:50:00Z"},
	})
	span := mustDate(t, "2022-08-05T00:00:00Z", "2022-08-05T01:00:00Z")

	comp := Complement(a, span)
	full := Union(a, comp)
	if len(full) != 1 {
		t.Fatalf("expected single covering interval, got %v", full)
	}
	if !full[0].Equal(span) {
		t.Fatalf("expected %v, got %v", span, full[0])
	}
}

func TestComplementOfComplementRestoresOriginal(t *testing.T) {
	span := mustDate(t, "2022-08-05T00:00:00Z", "2022-08-05T01:00:00Z")
	a := mkList(t, [][2]string{
		{"2022-08-05T00:10:00Z", "2022-08-05T00:20:00Z"},
		{"2022-08-05T00:40:00Z", "2022-08-05T00:50:00Z"},
	})

	once := Complement(a, span)
	twice := Complement(once, span)
	if len(twice) != len(a) {
		t.Fatalf("expected %v, got %v", a, twice)
	}
	for i := range a {
		if !a[i].Equal(twice[i]) {
			t.Fatalf("expected %v, got %v", a, twice)
		}
	}
}

func TestSpanOfEmptyListFails(t *testing.T) {
	var l List
	if _, err := l.Span(); err != ErrEmptyList {
		t.Fatalf("expected ErrEmptyList, got %v", err)
	}
}

func TestSeedScenarioFive(t *testing.T) {
	a := mkList(t, [][2]string{
		{"2022-08-05T00:00:00Z", "2022-08-05T00:00:10Z"},
		{"2022-08-05T00:00:20Z", "2022-08-05T00:00:30Z"},
	})
	b := mkList(t, [][2]string{{"2022-08-05T00:00:05Z", "2022-08-05T00:00:25Z"}})

	union := Union(a, b)
	if len(union) != 1 {
		t.Fatalf("expected single union interval, got %v", union)
	}
	want := mustDate(t, "2022-08-05T00:00:00Z", "2022-08-05T00:00:30Z")
	if !union[0].Equal(want) {
		t.Fatalf("expected %v, got %v", want, union[0])
	}

	inter := Intersection(a, b)
	if len(inter) != 2 {
		t.Fatalf("expected two intersection intervals, got %v", inter)
	}

	sub, err := Subtract(a, b)
	if err != nil {
		t.Fatalf("subtract: %v", err)
	}
	wantSub := mkList(t, [][2]string{
		{"2022-08-05T00:00:00Z", "2022-08-05T00:00:05Z"},
		{"2022-08-05T00:00:25Z", "2022-08-05T00:00:30Z"},
	})
	if len(sub) != len(wantSub) {
		t.Fatalf("expected %v, got %v", wantSub, sub)
	}

	span := mustDate(t, "2022-08-05T00:00:00Z", "2022-08-05T00:00:30Z")
	comp := Complement(b, span)
	if len(comp) != len(wantSub) {
		t.Fatalf("expected %v, got %v", wantSub, comp)
	}
}

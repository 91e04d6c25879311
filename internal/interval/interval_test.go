package interval

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, start, stop string) Date {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	e, err := time.Parse(time.RFC3339, stop)
	if err != nil {
		t.Fatalf("parse stop: %v", err)
	}
	return New(s, e)
}

func TestDateContains(t *testing.T) {
	d := mustDate(t, "2022-08-05T00:00:00Z", "2022-08-05T01:00:00Z")
	if !d.Contains(d.Start) {
		t.Fatal("expected start to be contained")
	}
	if d.Contains(d.Stop) {
		t.Fatal("expected stop to be excluded")
	}
}

func TestDateCanonicalizesSwappedEndpoints(t *testing.T) {
	start, _ := time.Parse(time.RFC3339, "2022-08-05T01:00:00Z")
	stop, _ := time.Parse(time.RFC3339, "2022-08-05T00:00:00Z")
	d := New(start, stop)
	if d.Start.After(d.Stop) {
		t.Fatalf("expected canonicalized order, got %v..%v", d.Start, d.Stop)
	}
}

func TestOverlapsDefaultSemantics(t *testing.T) {
	a := mustDate(t, "2022-08-05T00:00:00Z", "2022-08-05T01:00:00Z")
	b := mustDate(t, "2022-08-05T00:30:00Z", "2022-08-05T02:00:00Z")
	if !a.Overlaps(b, true, false) {
		t.Fatal("expected overlap")
	}
	c := mustDate(t, "2022-08-05T01:00:00Z", "2022-08-05T02:00:00Z")
	if a.Overlaps(c, true, false) {
		t.Fatal("touching half-open intervals must not overlap")
	}
}

func TestIntersectAndUnion(t *testing.T) {
	a := mustDate(t, "2022-08-05T00:00:00Z", "2022-08-05T01:00:00Z")
	b := mustDate(t, "2022-08-05T00:30:00Z", "2022-08-05T02:00:00Z")

	iv, ok := a.Intersect(b)
	if !ok {
		t.Fatal("expected intersection")
	}
	if !iv.Start.Equal(b.Start) || !iv.Stop.Equal(a.Stop) {
		t.Fatalf("unexpected intersection: %v", iv)
	}

	un, ok := a.Union(b)
	if !ok {
		t.Fatal("expected union")
	}
	if !un.Start.Equal(a.Start) || !un.Stop.Equal(b.Stop) {
		t.Fatalf("unexpected union: %v", un)
	}
}

package interval

import "sort"

// List is a sorted sequence of pairwise non-overlapping,
// non-touching-or-merged Date intervals. Every exported constructor
// restores this invariant; List values should not be mutated
// element-wise outside this package.
type List []Date

// From builds a List from an arbitrary (possibly unsorted, possibly
// overlapping or abutting) sequence of Date intervals, merging as
// needed. Construction is idempotent: From(From(xs)...) == From(xs).
func From(ds ...Date) List {
	if len(ds) == 0 {
		return nil
	}
	cp := make([]Date, len(ds))
	copy(cp, ds)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Less(cp[j]) })

	out := make(List, 0, len(cp))
	curr := cp[0]
	for _, d := range cp[1:] {
		if !d.Start.After(curr.Stop) {
			if d.Stop.After(curr.Stop) {
				curr.Stop = d.Stop
			}
			continue
		}
		out = append(out, curr)
		curr = d
	}
	out = append(out, curr)
	return out
}

// Span returns the interval from the earliest Start to the latest
// Stop. It fails with ErrEmptyList on an empty List.
func (l List) Span() (Date, error) {
	if len(l) == 0 {
		return Date{}, ErrEmptyList
	}
	start, stop := l[0].Start, l[0].Stop
	for _, d := range l[1:] {
		if d.Start.Before(start) {
			start = d.Start
		}
		if d.Stop.After(stop) {
			stop = d.Stop
		}
	}
	return Date{Start: start, Stop: stop}, nil
}

// Len, used by callers that index directly rather than ranging.
func (l List) Len() int { return len(l) }

// At returns the i-th interval.
func (l List) At(i int) Date { return l[i] }

// Union returns the minimal List covering every instant in a or b.
func Union(a, b List) List {
	all := make([]Date, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return From(all...)
}

// Intersection returns every maximal sub-interval present in both a
// and b, via a two-pointer merge over the sorted inputs. O(|a|+|b|).
func Intersection(a, b List) List {
	var out List
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if iv, ok := a[i].Intersect(b[j]); ok {
			out = append(out, iv)
		}
		switch {
		case a[i].Stop.Equal(b[j].Stop):
			i++
			j++
		case a[i].Stop.Before(b[j].Stop):
			i++
		default:
			j++
		}
	}
	return out
}

// Complement returns the intervals of span not covered by a. Edges of
// a that coincide with span's edges are trimmed rather than emitted
// as zero-length intervals.
func Complement(a List, span Date) List {
	var out List
	cursor := span.Start
	for _, d := range a {
		start, stop := d.Start, d.Stop
		if start.Before(span.Start) {
			start = span.Start
		}
		if stop.After(span.Stop) {
			stop = span.Stop
		}
		if !start.Before(stop) {
			continue
		}
		if cursor.Before(start) {
			out = append(out, Date{Start: cursor, Stop: start})
		}
		if stop.After(cursor) {
			cursor = stop
		}
	}
	if cursor.Before(span.Stop) {
		out = append(out, Date{Start: cursor, Stop: span.Stop})
	}
	return out
}

// Subtract returns the parts of a not covered by b:
// subtract(A, B) = intersection(A, complement(intersection(A,B), span=A.span)).
func Subtract(a, b List) (List, error) {
	if len(a) == 0 {
		return nil, nil
	}
	span, err := a.Span()
	if err != nil {
		return nil, err
	}
	ab := Intersection(a, b)
	comp := Complement(ab, span)
	return Intersection(a, comp), nil
}

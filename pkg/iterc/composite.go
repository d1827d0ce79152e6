package iterc

import (
	"go/types"

	"github.com/funvibe/traitkit/pkg/concepts"
)

// Composite constraint gates: named conjunctions of concept queries that
// admit types to generic algorithms. They add no evaluation rules of their
// own; each is a short-circuit AND over the concept table.
//
// Comparator arguments (c) and projection arguments (p) are function-typed
// candidates, or nil. A nil projection means identity; a nil comparator
// means the natural relation for the gate: ordering for the sorting and
// merging gates, equality for the comparison gates.

func orIdent(p types.Type) types.Type {
	if p == nil {
		return concepts.Ident
	}
	return p
}

// projected computes the three projected access types of a readable
// cursor: projection over the value, reference and common-reference types.
func (s *Set) projected(i, p types.Type) (x, y, z types.Type, ok bool) {
	p = orIdent(p)
	val, okV := ValueType(i)
	ref, okR := ReferenceType(i)
	cref, okC := CommonReferenceType(i)
	if !okV || !okR || !okC {
		return nil, nil, nil, false
	}
	if x, ok = concepts.InvokeResult(p, val); !ok {
		return nil, nil, nil, false
	}
	if y, ok = concepts.InvokeResult(p, ref); !ok {
		return nil, nil, nil, false
	}
	if z, ok = concepts.InvokeResult(p, cref); !ok {
		return nil, nil, nil, false
	}
	return x, y, z, true
}

func (s *Set) relationHolds(c types.Type, a, b types.Type, natural *concepts.Concept) bool {
	if c == nil {
		return s.Registry.Models(natural, a, b)
	}
	return concepts.InvokableRelation(c, a, b)
}

func (s *Set) predicateHolds(c types.Type, a, b types.Type, natural *concepts.Concept) bool {
	if c == nil {
		return s.Registry.Models(natural, a, b)
	}
	return concepts.InvokablePredicate(c, a, b)
}

// IndirectInvokable1 reports whether fn is invokable with every projected
// access type of cursor i, with results sharing a common type.
func (s *Set) IndirectInvokable1(fn, i, p types.Type) bool {
	x, y, z, ok := s.projected(i, p)
	if !ok {
		return false
	}
	fn = orIdent(fn)
	rx, okX := concepts.InvokeResult(fn, x)
	ry, okY := concepts.InvokeResult(fn, y)
	rz, okZ := concepts.InvokeResult(fn, z)
	if !okX || !okY || !okZ {
		return false
	}
	_, ok = concepts.CommonTypeAll(rx, ry, rz)
	return ok
}

// IndirectInvokable2 is the two-cursor form: fn must be invokable with
// every pairing of the projected access types, results sharing a common
// type.
func (s *Set) IndirectInvokable2(fn, i0, i1, p0, p1 types.Type) bool {
	x0, y0, z0, ok := s.projected(i0, p0)
	if !ok {
		return false
	}
	x1, y1, z1, ok := s.projected(i1, p1)
	if !ok {
		return false
	}
	fn = orIdent(fn)
	pairs := [][2]types.Type{{x0, x1}, {y0, y1}, {z0, z1}, {x0, y1}, {y0, x1}}
	results := make([]types.Type, 0, len(pairs))
	for _, pr := range pairs {
		res, ok := concepts.InvokeResult(fn, pr[0], pr[1])
		if !ok {
			return false
		}
		results = append(results, res)
	}
	_, ok = concepts.CommonTypeAll(results...)
	return ok
}

// IndirectInvokablePredicate1 reports whether c is a predicate over every
// projected access type of i.
func (s *Set) IndirectInvokablePredicate1(c, i, p types.Type) bool {
	if !s.IndirectInvokable1(p, i, nil) {
		return false
	}
	x, y, z, ok := s.projected(i, p)
	if !ok {
		return false
	}
	for _, t := range []types.Type{x, y, z} {
		if c == nil {
			if !s.Registry.Models(s.Base.EqualityComparable, t) {
				return false
			}
		} else if !concepts.InvokablePredicate(c, t) {
			return false
		}
	}
	return true
}

// IndirectInvokablePredicate2 reports whether c is a predicate over every
// pairing of the two cursors' projected access types.
func (s *Set) IndirectInvokablePredicate2(c, i0, i1, p0, p1 types.Type) bool {
	if !s.IndirectInvokable1(p0, i0, nil) || !s.IndirectInvokable1(p1, i1, nil) {
		return false
	}
	x0, y0, z0, ok := s.projected(i0, p0)
	if !ok {
		return false
	}
	x1, y1, z1, ok := s.projected(i1, p1)
	if !ok {
		return false
	}
	pairs := [][2]types.Type{{x0, x1}, {y0, y1}, {z0, z1}, {x0, y1}, {y0, x1}}
	for _, pr := range pairs {
		if !s.predicateHolds(c, pr[0], pr[1], s.Base.EqualityComparable2) {
			return false
		}
	}
	return true
}

// IndirectInvokableRelation reports whether c is a relation over every
// pairing of the two cursors' projected access types. A nil c means the
// natural ordering relation.
func (s *Set) IndirectInvokableRelation(c, i0, i1, p0, p1 types.Type) bool {
	return s.indirectRelation(c, i0, i1, p0, p1, s.Base.TotallyOrdered2)
}

func (s *Set) indirectRelation(c, i0, i1, p0, p1 types.Type, natural *concepts.Concept) bool {
	if !s.IndirectInvokable1(p0, i0, nil) || !s.IndirectInvokable1(p1, i1, nil) {
		return false
	}
	x0, y0, z0, ok := s.projected(i0, p0)
	if !ok {
		return false
	}
	x1, y1, z1, ok := s.projected(i1, p1)
	if !ok {
		return false
	}
	pairs := [][2]types.Type{{x0, x1}, {y0, y1}, {z0, z1}, {x0, y1}, {y0, x1}}
	for _, pr := range pairs {
		if !s.relationHolds(c, pr[0], pr[1], natural) {
			return false
		}
	}
	return true
}

// Permutable gates algorithms that reorder elements in place.
func (s *Set) Permutable(i types.Type) bool {
	if !s.Models(s.ForwardIterator, i) {
		return false
	}
	val, ok := ValueType(i)
	if !ok {
		return false
	}
	return s.Models(s.Base.SemiRegular, val) &&
		s.Models(s.IndirectlyMovable, i, i, concepts.Ident)
}

// Mergeable gates copying merges of two sorted inputs into an output.
func (s *Set) Mergeable(i0, i1, out, c, p0, p1 types.Type) bool {
	return s.Models(s.InputIterator, i0) &&
		s.Models(s.InputIterator, i1) &&
		s.Models(s.WeaklyIncrementable, out) &&
		s.IndirectInvokableRelation(c, i0, i1, p0, p1) &&
		s.Models(s.IndirectlyCopyable, i0, out, concepts.Ident) &&
		s.Models(s.IndirectlyCopyable, i1, out, concepts.Ident)
}

// MergeMovable gates moving merges of two sorted inputs into an output.
func (s *Set) MergeMovable(i0, i1, out, c, p0, p1 types.Type) bool {
	return s.Models(s.InputIterator, i0) &&
		s.Models(s.InputIterator, i1) &&
		s.Models(s.WeaklyIncrementable, out) &&
		s.IndirectInvokableRelation(c, i0, i1, p0, p1) &&
		s.Models(s.IndirectlyMovable, i0, out, concepts.Ident) &&
		s.Models(s.IndirectlyMovable, i1, out, concepts.Ident)
}

// Sortable gates in-place sorting.
func (s *Set) Sortable(i, c, p types.Type) bool {
	return s.Models(s.ForwardIterator, i) &&
		s.IndirectInvokableRelation(c, i, i, p, p) &&
		s.Permutable(i)
}

// BinarySearchable gates ordered searches for a value of type v in a
// sorted sequence. The value participates through a pointer cursor over
// it, the read-only view a search needs.
func (s *Set) BinarySearchable(i, v, c, p types.Type) bool {
	return s.Models(s.ForwardIterator, i) &&
		s.Models(s.Base.TotallyOrdered, v) &&
		s.IndirectInvokableRelation(c, i, types.NewPointer(v), p, nil)
}

// WeaklyAsymmetricallyComparable gates one-directional comparison where
// the second sequence may be single-pass.
func (s *Set) WeaklyAsymmetricallyComparable(i1, i2, c, p1, p2 types.Type) bool {
	return s.Models(s.InputIterator, i1) &&
		s.Models(s.WeakInputIterator, i2) &&
		s.IndirectInvokablePredicate2(c, i1, i2, p1, p2)
}

// AsymmetricallyComparable additionally requires the second sequence to
// be a real input iterator.
func (s *Set) AsymmetricallyComparable(i1, i2, c, p1, p2 types.Type) bool {
	return s.WeaklyAsymmetricallyComparable(i1, i2, c, p1, p2) &&
		s.Models(s.InputIterator, i2)
}

// WeaklyComparable strengthens the predicate to a full relation.
func (s *Set) WeaklyComparable(i1, i2, c, p1, p2 types.Type) bool {
	return s.WeaklyAsymmetricallyComparable(i1, i2, c, p1, p2) &&
		s.indirectRelation(c, i1, i2, p1, p2, s.Base.EqualityComparable2)
}

// Comparable gates symmetric element-wise comparison of two sequences.
func (s *Set) Comparable(i1, i2, c, p1, p2 types.Type) bool {
	return s.WeaklyComparable(i1, i2, c, p1, p2) &&
		s.Models(s.InputIterator, i2)
}

// Package-level gates over the Default set.

// Sortable reports whether i admits in-place sorting under comparator c
// and projection p (nil for the natural ordering / identity).
func Sortable(i, c, p types.Type) bool { return Default.Sortable(i, c, p) }

// Permutable reports whether i admits in-place element reordering.
func Permutable(i types.Type) bool { return Default.Permutable(i) }

// Mergeable reports whether two sorted inputs can be merged into out.
func Mergeable(i0, i1, out, c, p0, p1 types.Type) bool {
	return Default.Mergeable(i0, i1, out, c, p0, p1)
}

// Comparable reports whether two sequences admit element-wise comparison.
func Comparable(i1, i2, c, p1, p2 types.Type) bool {
	return Default.Comparable(i1, i2, c, p1, p2)
}

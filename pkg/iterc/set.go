package iterc

import (
	"go/types"

	"github.com/funvibe/traitkit/pkg/concepts"
)

// Set is the full iterator-concept table: one registry holding the base
// concepts, the capability hierarchy, the range concepts and the two
// resolution lists. A Set is immutable after construction and safe for
// concurrent queries.
type Set struct {
	Registry *concepts.Registry
	Base     *concepts.Base

	Readable            *concepts.Concept
	MoveWritable        *concepts.Concept
	Writable            *concepts.Concept
	IndirectlyMovable   *concepts.Concept
	IndirectlyCopyable  *concepts.Concept
	IndirectlySwappable *concepts.Concept

	WeaklyIncrementable *concepts.Concept
	Incrementable       *concepts.Concept
	WeakIterator        *concepts.Concept
	Iterator            *concepts.Concept
	WeakOutputIterator  *concepts.Concept
	OutputIterator      *concepts.Concept

	WeakInputIterator     *concepts.Concept
	InputIterator         *concepts.Concept
	ForwardIterator       *concepts.Concept
	BidirectionalIterator *concepts.Concept
	RandomAccessIterator  *concepts.Concept

	IteratorRange          *concepts.Concept
	SizedIteratorRangeLike *concepts.Concept
	SizedIteratorRange     *concepts.Concept

	iteratorList   []*concepts.Concept
	sizedRangeList []*concepts.Concept
}

// Default is the shared concept table used by the package-level queries.
var Default = NewSet()

// NewSet builds the registry and defines every concept. It panics on a
// malformed definition (duplicate name, cycle, bad remap); those are
// construction bugs, not data-dependent conditions.
func NewSet() *Set {
	r := concepts.NewRegistry()
	b := concepts.DefineBase(r)
	s := &Set{Registry: r, Base: b}

	s.Readable = r.MustDefine(concepts.Def{
		Name:    "Readable",
		Arity:   1,
		Refines: []concepts.Refinement{{Parent: b.SemiRegular}},
		Requires: func(ctx *concepts.Ctx) bool {
			i := ctx.Arg(0)
			ref, ok := ReferenceType(i)
			if !ok {
				return false
			}
			val, ok := ValueType(i)
			if !ok {
				return false
			}
			rv, ok := RvalueReferenceType(i)
			if !ok {
				return false
			}
			// The reference, value and rvalue-reference types must be
			// pairwise related through a common reference type.
			return ctx.Models(b.CommonReference, ref, val) &&
				ctx.Models(b.CommonReference, ref, rv) &&
				ctx.Models(b.CommonReference, rv, val)
		},
	})

	s.MoveWritable = r.MustDefine(concepts.Def{
		Name:    "MoveWritable",
		Arity:   2,
		Refines: []concepts.Refinement{{Parent: b.SemiRegular, Args: []int{0}}},
		Requires: func(ctx *concepts.Ctx) bool {
			return writeAccepts(ctx.Arg(0), ctx.Arg(1))
		},
	})

	// Go assignment has no move/copy split; Writable adds nothing beyond
	// MoveWritable but keeps its place in the hierarchy.
	s.Writable = r.MustDefine(concepts.Def{
		Name:    "Writable",
		Arity:   2,
		Refines: []concepts.Refinement{{Parent: s.MoveWritable}},
	})

	s.IndirectlyMovable = r.MustDefine(concepts.Def{
		Name:  "IndirectlyMovable",
		Arity: 3, // in, out, projection
		Requires: func(ctx *concepts.Ctx) bool {
			i, o, p := ctx.Arg(0), ctx.Arg(1), ctx.Arg(2)
			if !ctx.Models(s.Readable, i) || !ctx.Models(b.SemiRegular, o) {
				return false
			}
			rv, ok := RvalueReferenceType(i)
			if !ok {
				return false
			}
			val, ok := ValueType(i)
			if !ok {
				return false
			}
			if !ctx.Models(b.Convertible, rv, val) {
				return false
			}
			x, ok := concepts.InvokeResult(p, rv)
			if !ok {
				return false
			}
			y, ok := concepts.InvokeResult(p, val)
			if !ok {
				return false
			}
			return ctx.Models(s.MoveWritable, o, x) && ctx.Models(s.MoveWritable, o, y)
		},
	})

	s.IndirectlyCopyable = r.MustDefine(concepts.Def{
		Name:    "IndirectlyCopyable",
		Arity:   3,
		Refines: []concepts.Refinement{{Parent: s.IndirectlyMovable}},
		Requires: func(ctx *concepts.Ctx) bool {
			i, o, p := ctx.Arg(0), ctx.Arg(1), ctx.Arg(2)
			ref, ok := ReferenceType(i)
			if !ok {
				return false
			}
			val, ok := ValueType(i)
			if !ok {
				return false
			}
			cref, ok := CommonReferenceType(i)
			if !ok {
				return false
			}
			if !ctx.Models(b.Convertible, ref, val) {
				return false
			}
			for _, src := range []types.Type{ref, cref, val} {
				res, ok := concepts.InvokeResult(p, src)
				if !ok {
					return false
				}
				if !ctx.Models(s.Writable, o, res) {
					return false
				}
			}
			return true
		},
	})

	s.IndirectlySwappable = r.MustDefine(concepts.Def{
		Name:  "IndirectlySwappable",
		Arity: 2,
		Requires: func(ctx *concepts.Ctx) bool {
			i1, i2 := ctx.Arg(0), ctx.Arg(1)
			if !ctx.Models(s.Readable, i1) || !ctx.Models(s.Readable, i2) {
				return false
			}
			rv1, ok := RvalueReferenceType(i1)
			if !ok {
				return false
			}
			rv2, ok := RvalueReferenceType(i2)
			if !ok {
				return false
			}
			// Swapping needs every cross and self write to be possible.
			return ctx.Models(s.MoveWritable, i1, rv2) &&
				ctx.Models(s.MoveWritable, i2, rv1) &&
				ctx.Models(s.MoveWritable, i1, rv1) &&
				ctx.Models(s.MoveWritable, i2, rv2)
		},
	})

	s.WeaklyIncrementable = r.MustDefine(concepts.Def{
		Name:    "WeaklyIncrementable",
		Arity:   1,
		Refines: []concepts.Refinement{{Parent: b.SemiRegular}},
		Requires: func(ctx *concepts.Ctx) bool {
			i := ctx.Arg(0)
			d, ok := DifferenceType(i)
			if !ok {
				return false
			}
			return ctx.Models(b.SignedIntegral, d) && canAdvance(i)
		},
	})

	s.Incrementable = r.MustDefine(concepts.Def{
		Name:  "Incrementable",
		Arity: 1,
		Refines: []concepts.Refinement{
			{Parent: b.Regular},
			{Parent: s.WeaklyIncrementable},
		},
	})

	s.WeakIterator = r.MustDefine(concepts.Def{
		Name:    "WeakIterator",
		Arity:   1,
		Refines: []concepts.Refinement{{Parent: s.WeaklyIncrementable}},
		Requires: func(ctx *concepts.Ctx) bool {
			// Some dereference surface must exist, readable or writable.
			i := ctx.Arg(0)
			return canRead(i) || canWrite(i)
		},
	})

	s.Iterator = r.MustDefine(concepts.Def{
		Name:  "Iterator",
		Arity: 1,
		Refines: []concepts.Refinement{
			{Parent: s.WeakIterator},
			{Parent: b.EqualityComparable},
		},
	})

	s.WeakOutputIterator = r.MustDefine(concepts.Def{
		Name:  "WeakOutputIterator",
		Arity: 2, // out, written value
		Refines: []concepts.Refinement{
			{Parent: s.WeakIterator, Args: []int{0}},
			{Parent: s.Writable},
		},
	})

	s.OutputIterator = r.MustDefine(concepts.Def{
		Name:  "OutputIterator",
		Arity: 2,
		Refines: []concepts.Refinement{
			{Parent: s.WeakOutputIterator},
			{Parent: s.Iterator, Args: []int{0}},
		},
	})

	s.WeakInputIterator = r.MustDefine(concepts.Def{
		Name:  "WeakInputIterator",
		Arity: 1,
		Refines: []concepts.Refinement{
			{Parent: s.WeakIterator},
			{Parent: s.Readable},
		},
		Requires: categoryAtLeast(CategoryWeakInput),
	})

	s.InputIterator = r.MustDefine(concepts.Def{
		Name:  "InputIterator",
		Arity: 1,
		Refines: []concepts.Refinement{
			{Parent: s.WeakInputIterator},
			{Parent: s.Iterator},
		},
		Requires: categoryAtLeast(CategoryInput),
	})

	s.ForwardIterator = r.MustDefine(concepts.Def{
		Name:  "ForwardIterator",
		Arity: 1,
		Refines: []concepts.Refinement{
			{Parent: s.InputIterator},
			{Parent: s.Incrementable},
		},
		Requires: categoryAtLeast(CategoryForward),
	})

	s.BidirectionalIterator = r.MustDefine(concepts.Def{
		Name:    "BidirectionalIterator",
		Arity:   1,
		Refines: []concepts.Refinement{{Parent: s.ForwardIterator}},
		Requires: func(ctx *concepts.Ctx) bool {
			i := ctx.Arg(0)
			cat, ok := CategoryOf(i)
			return ok && cat.DerivesFrom(CategoryBidirectional) && canRetreat(i)
		},
	})

	s.RandomAccessIterator = r.MustDefine(concepts.Def{
		Name:  "RandomAccessIterator",
		Arity: 1,
		Refines: []concepts.Refinement{
			{Parent: s.BidirectionalIterator},
			{Parent: b.TotallyOrdered},
		},
		Requires: func(ctx *concepts.Ctx) bool {
			i := ctx.Arg(0)
			cat, ok := CategoryOf(i)
			if !ok || !cat.DerivesFrom(CategoryRandomAccess) {
				return false
			}
			d, ok := differenceBetween(i, i)
			if !ok || !ctx.Models(b.SignedIntegral, d) {
				return false
			}
			dt, ok := DifferenceType(i)
			if !ok || !ctx.Same(d, dt) {
				return false
			}
			if !canSeek(i, d) {
				return false
			}
			idx, ok := indexResult(i)
			if !ok {
				return false
			}
			cref, ok := CommonReferenceType(i)
			return ok && ctx.ConvertibleTo(idx, cref)
		},
	})

	s.IteratorRange = r.MustDefine(concepts.Def{
		Name:  "IteratorRange",
		Arity: 2, // iterator, sentinel
		Requires: func(ctx *concepts.Ctx) bool {
			i, sent := ctx.Arg(0), ctx.Arg(1)
			return ctx.Models(s.Iterator, i) &&
				ctx.Models(b.Regular, sent) &&
				ctx.Models(b.EqualityComparable2, i, sent)
		},
	})

	s.SizedIteratorRangeLike = r.MustDefine(concepts.Def{
		Name:    "SizedIteratorRangeLike",
		Arity:   2,
		Refines: []concepts.Refinement{{Parent: s.IteratorRange}},
		Requires: func(ctx *concepts.Ctx) bool {
			i, sent := ctx.Arg(0), ctx.Arg(1)
			d, ok := differenceBetween(sent, i)
			if !ok || !ctx.Models(b.Integral, d) {
				return false
			}
			back, ok := differenceBetween(i, sent)
			return ok && ctx.Same(d, back)
		},
	})

	// The body recurses through the registry on (I, I) and on the common
	// type, so the concept variable must exist before the closure runs.
	var sized *concepts.Concept
	sized = r.MustDefine(concepts.Def{
		Name:    "SizedIteratorRange",
		Arity:   2,
		Refines: []concepts.Refinement{{Parent: s.IteratorRange}},
		Requires: func(ctx *concepts.Ctx) bool {
			i, sent := ctx.Arg(0), ctx.Arg(1)
			if ctx.Same(i, sent) {
				d, ok := differenceBetween(sent, i)
				return ok && ctx.Models(b.Integral, d)
			}
			if !ctx.Models(sized, i, i) {
				return false
			}
			if !ctx.Models(b.Common, i, sent) {
				return false
			}
			c, ok := concepts.CommonType(i, sent)
			if !ok || !ctx.Models(sized, c, c) {
				return false
			}
			d, ok := differenceBetween(sent, i)
			if !ok || !ctx.Models(b.Integral, d) {
				return false
			}
			back, ok := differenceBetween(i, sent)
			return ok && ctx.Same(d, back)
		},
	})
	s.SizedIteratorRange = sized

	s.iteratorList = []*concepts.Concept{
		s.RandomAccessIterator,
		s.BidirectionalIterator,
		s.ForwardIterator,
		s.InputIterator,
		s.WeakInputIterator,
	}
	s.sizedRangeList = []*concepts.Concept{
		s.SizedIteratorRange,
		s.IteratorRange,
	}
	// Resolution order is a correctness invariant: an out-of-order list
	// silently under-classifies.
	if err := r.StrictlyOrdered(s.iteratorList); err != nil {
		panic(err)
	}
	if err := r.StrictlyOrdered(s.sizedRangeList); err != nil {
		panic(err)
	}
	return s
}

// categoryAtLeast builds the requirement that a cursor's declared or
// inferred category derives from the given tier.
func categoryAtLeast(min Category) concepts.RequiresFunc {
	return func(ctx *concepts.Ctx) bool {
		cat, ok := CategoryOf(ctx.Arg(0))
		return ok && cat.DerivesFrom(min)
	}
}

// Models evaluates a concept from this set.
func (s *Set) Models(c *concepts.Concept, ts ...types.Type) bool {
	return s.Registry.Models(c, ts...)
}

// IteratorConcept resolves the most refined iterator concept the type
// satisfies, or nil if it is not an iterator at all.
func (s *Set) IteratorConcept(t types.Type) *concepts.Concept {
	return s.Registry.MostRefined(s.iteratorList, t)
}

// ResolvedCategory maps the most refined iterator concept onto its
// category tag: the strongest classification the type supports, which may
// exceed a weaker declared tag's tier requirements but never fall below
// weak-input for a classified type.
func (s *Set) ResolvedCategory(t types.Type) Category {
	switch s.IteratorConcept(t) {
	case s.RandomAccessIterator:
		return CategoryRandomAccess
	case s.BidirectionalIterator:
		return CategoryBidirectional
	case s.ForwardIterator:
		return CategoryForward
	case s.InputIterator:
		return CategoryInput
	case s.WeakInputIterator:
		return CategoryWeakInput
	default:
		return CategoryNone
	}
}

// SinglePass reports whether the type is an iterator that can only be
// traversed once: weak-input but not forward.
func (s *Set) SinglePass(t types.Type) bool {
	return s.Models(s.WeakInputIterator, t) && !s.Models(s.ForwardIterator, t)
}

// SizedIteratorRangeConcept resolves the strongest range classification
// for an iterator/sentinel pair, or nil for no range at all.
func (s *Set) SizedIteratorRangeConcept(i, sent types.Type) *concepts.Concept {
	return s.Registry.MostRefined(s.sizedRangeList, i, sent)
}

// Package-level queries against the Default set.

// Models evaluates a concept from the Default set.
func Models(c *concepts.Concept, ts ...types.Type) bool {
	return Default.Models(c, ts...)
}

// IteratorConcept resolves t's iterator classification in the Default set.
func IteratorConcept(t types.Type) *concepts.Concept {
	return Default.IteratorConcept(t)
}

// SinglePass reports single-pass iterators in the Default set.
func SinglePass(t types.Type) bool {
	return Default.SinglePass(t)
}

// SizedIteratorRangeConcept resolves the range classification of a pair
// in the Default set.
func SizedIteratorRangeConcept(i, sent types.Type) *concepts.Concept {
	return Default.SizedIteratorRangeConcept(i, sent)
}

// Package iterc classifies Go types by iterator-like capability.
//
// It applies the concept engine in pkg/concepts to a fixed cursor
// convention over go/types. A cursor is any type that exposes positional
// operations either structurally (pointer types model the full
// random-access surface, integer basics model bare incrementability) or
// through methods:
//
//	Get() R            read the current element (reference type R)
//	Set(V)             write the current element
//	Next()             advance in place
//	Prev()             retreat in place
//	Distance(U) D      signed distance to another cursor or sentinel
//	Advance(D)         seek by a distance
//	At(D) R            indexed read
//	Equal(U) bool      equality with another cursor or sentinel
//	Less(U) bool       ordering
//	Value() V          declared value type (defaults to R, pointer-stripped)
//	Move() R'          declared move-read type (defaults to R)
//	Ptr() P            declared member-access type
//	IterCategory() Tag declared category (WeakInputTag .. RandomAccessTag)
//
// Every lookup tolerates absence: a cursor missing an operation simply
// fails the concepts that need it. The package exposes the capability
// hierarchy from Readable up to RandomAccessIterator, range concepts,
// associated-type projections, most-refined classification, and the
// composite gates (Sortable, Mergeable, Permutable, Comparable, ...) that
// admit types to generic algorithms.
package iterc

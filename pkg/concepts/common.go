package concepts

import "go/types"

// basicRank orders the basic numeric kinds so that mutually convertible
// numerics have a deterministic "wider" choice. Same-size signed pairs
// (int/int64) rank the explicit-width kind higher.
var basicRank = map[types.BasicKind]int{
	types.Int8:    10,
	types.Uint8:   11,
	types.Int16:   20,
	types.Uint16:  21,
	types.Int32:   30,
	types.Uint32:  31,
	types.Int:     40,
	types.Uint:    41,
	types.Uintptr: 42,
	types.Int64:   50,
	types.Uint64:  51,
	types.Float32: 60,
	types.Float64: 70,
}

// CommonType computes the deterministic common type of a and b: the type
// both can convert to. The rules are applied in order:
//
//  1. identical types → a
//  2. one assignable to the other → the target
//  3. both basic numerics → the wider kind
//  4. identical underlying types → a
//  5. convertible in exactly one direction → the target
//
// Anything else is undefined, reported through ok=false. Undefined never
// errors; concepts depending on a common type simply fail.
func CommonType(a, b types.Type) (types.Type, bool) {
	if !IsValid(a) || !IsValid(b) {
		return nil, false
	}
	if types.Identical(a, b) {
		return a, true
	}
	aToB := types.AssignableTo(a, b)
	bToA := types.AssignableTo(b, a)
	switch {
	case aToB && bToA:
		return a, true
	case aToB:
		return b, true
	case bToA:
		return a, true
	}
	if ab, ok := a.Underlying().(*types.Basic); ok {
		if bb, ok := b.Underlying().(*types.Basic); ok {
			ra, okA := basicRank[ab.Kind()]
			rb, okB := basicRank[bb.Kind()]
			if okA && okB && types.ConvertibleTo(a, b) && types.ConvertibleTo(b, a) {
				if rb > ra {
					return b, true
				}
				return a, true
			}
		}
	}
	if types.Identical(a.Underlying(), b.Underlying()) {
		return a, true
	}
	aConv := types.ConvertibleTo(a, b)
	bConv := types.ConvertibleTo(b, a)
	switch {
	case aConv && !bConv:
		return b, true
	case bConv && !aConv:
		return a, true
	}
	return nil, false
}

// CommonTypeAll folds CommonType over all given types.
func CommonTypeAll(ts ...types.Type) (types.Type, bool) {
	if len(ts) == 0 {
		return nil, false
	}
	cur := ts[0]
	for _, t := range ts[1:] {
		next, ok := CommonType(cur, t)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, IsValid(cur)
}

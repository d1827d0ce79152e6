package iterc

import (
	"go/types"

	"github.com/funvibe/traitkit/pkg/concepts"
)

// Category is an iterator-category tag. Categories form a single
// refinement chain, weakest first, so ordinal comparison is the
// derives-from relation.
type Category int

const (
	CategoryNone Category = iota
	CategoryWeakInput
	CategoryInput
	CategoryForward
	CategoryBidirectional
	CategoryRandomAccess
)

func (c Category) String() string {
	switch c {
	case CategoryWeakInput:
		return "weak-input"
	case CategoryInput:
		return "input"
	case CategoryForward:
		return "forward"
	case CategoryBidirectional:
		return "bidirectional"
	case CategoryRandomAccess:
		return "random-access"
	default:
		return "none"
	}
}

// DerivesFrom reports whether c refines parent: a bidirectional tag
// derives from forward, input and weak-input. CategoryNone derives from
// nothing and nothing derives from it.
func (c Category) DerivesFrom(parent Category) bool {
	return c != CategoryNone && parent != CategoryNone && c >= parent
}

// Marker types for declared categories. A cursor declares its category
// with a method such as
//
//	func (c Cursor) IterCategory() iterc.ForwardTag { return iterc.ForwardTag{} }
//
// The declaration is matched by the result type's name, so equivalent
// marker types defined elsewhere (including synthetic go/types test
// fixtures) are recognized too.
type (
	WeakInputTag     struct{}
	InputTag         struct{}
	ForwardTag       struct{}
	BidirectionalTag struct{}
	RandomAccessTag  struct{}
)

var tagCategories = map[string]Category{
	"WeakInputTag":     CategoryWeakInput,
	"InputTag":         CategoryInput,
	"ForwardTag":       CategoryForward,
	"BidirectionalTag": CategoryBidirectional,
	"RandomAccessTag":  CategoryRandomAccess,
}

// declaredCategory returns the category a type declares: pointers are
// random-access by definition, named cursors declare through IterCategory.
func declaredCategory(t types.Type) (Category, bool) {
	if _, ok := pointerElem(t); ok {
		return CategoryRandomAccess, true
	}
	sig, ok := concepts.MethodSig(t, "IterCategory")
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return CategoryNone, false
	}
	named, ok := sig.Results().At(0).Type().(*types.Named)
	if !ok {
		return CategoryNone, false
	}
	cat, ok := tagCategories[named.Obj().Name()]
	return cat, ok
}

// inferredCategory derives a category from a cursor's operations alone.
// Input and forward are never inferred: the single-pass/multi-pass
// distinction is semantic, not structural, so promoting past weak-input
// requires either a declared tag or an operation (Prev, random access)
// that only a multi-pass cursor can have.
func inferredCategory(t types.Type) Category {
	if _, ok := pointerElem(t); ok {
		return CategoryRandomAccess
	}
	if !canRead(t) || !canAdvance(t) {
		return CategoryNone
	}
	if d, ok := differenceBetween(t, t); ok {
		if _, idx := indexResult(t); idx && canSeek(t, d) {
			return CategoryRandomAccess
		}
	}
	if canRetreat(t) {
		return CategoryBidirectional
	}
	return CategoryWeakInput
}

package iterc

import (
	"go/types"

	"github.com/funvibe/traitkit/pkg/concepts"
)

// The cursor operation model. Each helper answers "does this type support
// this operation, and with what result type". Absence is reported through
// a false ok, never an error, so the concepts built on top stay total.

// pointerElem returns the element type of a pointer-shaped type. Pointers
// model the full random-access cursor surface, the way raw addresses do.
func pointerElem(t types.Type) (types.Type, bool) {
	if t == nil {
		return nil, false
	}
	p, ok := t.Underlying().(*types.Pointer)
	if !ok {
		return nil, false
	}
	return p.Elem(), true
}

func isIntegerBasic(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsInteger != 0
}

// readResult returns the cursor's reference type: the pointer element, or
// the result of a niladic Get method.
func readResult(t types.Type) (types.Type, bool) {
	if e, ok := pointerElem(t); ok {
		return e, true
	}
	sig, ok := concepts.MethodSig(t, "Get")
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil, false
	}
	return sig.Results().At(0).Type(), true
}

func canRead(t types.Type) bool {
	_, ok := readResult(t)
	return ok
}

// writeAccepts reports whether the cursor accepts a written value of type
// v, through the pointer element or a Set method.
func writeAccepts(t, v types.Type) bool {
	if v == nil {
		return false
	}
	if e, ok := pointerElem(t); ok {
		return types.AssignableTo(v, e)
	}
	sig, ok := concepts.MethodSig(t, "Set")
	if !ok || sig.Params().Len() != 1 || sig.Results().Len() != 0 {
		return false
	}
	return types.AssignableTo(v, sig.Params().At(0).Type())
}

// canWrite reports whether the cursor has any write surface at all.
func canWrite(t types.Type) bool {
	if _, ok := pointerElem(t); ok {
		return true
	}
	sig, ok := concepts.MethodSig(t, "Set")
	return ok && sig.Params().Len() == 1 && sig.Results().Len() == 0
}

// canAdvance reports in-place forward motion: pointers and integer basics
// structurally, named cursors through a niladic Next method.
func canAdvance(t types.Type) bool {
	if _, ok := pointerElem(t); ok {
		return true
	}
	if isIntegerBasic(t) {
		return true
	}
	sig, ok := concepts.MethodSig(t, "Next")
	return ok && sig.Params().Len() == 0 && sig.Results().Len() == 0
}

func canRetreat(t types.Type) bool {
	if _, ok := pointerElem(t); ok {
		return true
	}
	if isIntegerBasic(t) {
		return true
	}
	sig, ok := concepts.MethodSig(t, "Prev")
	return ok && sig.Params().Len() == 0 && sig.Results().Len() == 0
}

// differenceBetween returns the type of a-b. Pointers with identical
// element types subtract to int; identical integer basics subtract to
// themselves; otherwise a Distance method on a that accepts b decides.
// The result being undefined is what separates sized from unsized ranges.
func differenceBetween(a, b types.Type) (types.Type, bool) {
	if ae, ok := pointerElem(a); ok {
		if be, ok := pointerElem(b); ok && types.Identical(ae, be) {
			return types.Typ[types.Int], true
		}
	}
	if a != nil && b != nil && types.Identical(a, b) && isIntegerBasic(a) {
		return a, true
	}
	sig, ok := concepts.MethodSig(a, "Distance")
	if !ok || sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return nil, false
	}
	if b == nil || !types.AssignableTo(b, sig.Params().At(0).Type()) {
		return nil, false
	}
	return sig.Results().At(0).Type(), true
}

// canSeek reports whether the cursor can move by a distance of type d.
func canSeek(t, d types.Type) bool {
	if _, ok := pointerElem(t); ok {
		return true
	}
	sig, ok := concepts.MethodSig(t, "Advance")
	if !ok || sig.Params().Len() != 1 || sig.Results().Len() != 0 {
		return false
	}
	return d != nil && types.AssignableTo(d, sig.Params().At(0).Type())
}

// indexResult returns the type produced by indexed access at a distance.
func indexResult(t types.Type) (types.Type, bool) {
	if e, ok := pointerElem(t); ok {
		return e, true
	}
	sig, ok := concepts.MethodSig(t, "At")
	if !ok || sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return nil, false
	}
	if !isIntegerBasic(sig.Params().At(0).Type()) {
		return nil, false
	}
	return sig.Results().At(0).Type(), true
}

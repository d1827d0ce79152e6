package iterc

import (
	"go/types"

	"github.com/funvibe/traitkit/pkg/concepts"
)

// Associated-type projections. Each is a partial function of the cursor
// type: ok=false means the type is not defined for this candidate, which
// makes any concept depending on it fail rather than error. The results
// are only meaningful for types that model the owning concept.

// ReferenceType returns what reading the cursor yields.
func ReferenceType(t types.Type) (types.Type, bool) {
	return readResult(t)
}

// ValueType returns the logical element type: a declared Value type if
// present, otherwise the reference type with one level of pointer
// indirection stripped.
func ValueType(t types.Type) (types.Type, bool) {
	if sig, ok := concepts.MethodSig(t, "Value"); ok &&
		sig.Params().Len() == 0 && sig.Results().Len() == 1 {
		return sig.Results().At(0).Type(), true
	}
	ref, ok := readResult(t)
	if !ok {
		return nil, false
	}
	if p, ok := ref.Underlying().(*types.Pointer); ok {
		return p.Elem(), true
	}
	return ref, true
}

// RvalueReferenceType returns what a move-read yields: a declared Move
// type if present, otherwise the reference type (Go values move by copy).
func RvalueReferenceType(t types.Type) (types.Type, bool) {
	if sig, ok := concepts.MethodSig(t, "Move"); ok &&
		sig.Params().Len() == 0 && sig.Results().Len() == 1 {
		return sig.Results().At(0).Type(), true
	}
	return readResult(t)
}

// CommonReferenceType returns the type the reference, value and
// rvalue-reference types all convert to. Readable requires it to exist.
func CommonReferenceType(t types.Type) (types.Type, bool) {
	ref, ok := ReferenceType(t)
	if !ok {
		return nil, false
	}
	val, ok := ValueType(t)
	if !ok {
		return nil, false
	}
	rv, ok := RvalueReferenceType(t)
	if !ok {
		return nil, false
	}
	return concepts.CommonTypeAll(ref, val, rv)
}

// WriteType returns the type the cursor accepts for writes: the pointer
// element, or the parameter of a Set method.
func WriteType(t types.Type) (types.Type, bool) {
	if e, ok := pointerElem(t); ok {
		return e, true
	}
	if sig, ok := concepts.MethodSig(t, "Set"); ok &&
		sig.Params().Len() == 1 && sig.Results().Len() == 0 {
		return sig.Params().At(0).Type(), true
	}
	return nil, false
}

// PointerType returns the member-access type: the pointer itself for
// pointer cursors, or a declared Ptr type.
func PointerType(t types.Type) (types.Type, bool) {
	if t != nil {
		if _, ok := pointerElem(t); ok {
			return t, true
		}
	}
	if sig, ok := concepts.MethodSig(t, "Ptr"); ok &&
		sig.Params().Len() == 0 && sig.Results().Len() == 1 {
		return sig.Results().At(0).Type(), true
	}
	return nil, false
}

// DifferenceType returns the cursor's distance type: the result of
// subtracting two cursors when that is defined, otherwise int for any
// cursor that can advance (every Go cursor can measure its steps in int).
func DifferenceType(t types.Type) (types.Type, bool) {
	if d, ok := differenceBetween(t, t); ok {
		return d, true
	}
	if canAdvance(t) {
		return types.Typ[types.Int], true
	}
	return nil, false
}

// CategoryOf returns the cursor's category: the declared tag when present,
// otherwise the structurally inferred one.
func CategoryOf(t types.Type) (Category, bool) {
	if cat, ok := declaredCategory(t); ok {
		return cat, true
	}
	cat := inferredCategory(t)
	return cat, cat != CategoryNone
}

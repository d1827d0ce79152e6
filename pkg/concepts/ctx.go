package concepts

import "go/types"

// Ctx is the evaluation context handed to a concept's requirement body.
// All checks are soft: anything undefined or inapplicable is reported as
// false so requirement bodies stay total.
type Ctx struct {
	reg  *Registry
	args []types.Type
}

// Arg returns the i-th candidate type.
func (c *Ctx) Arg(i int) types.Type { return c.args[i] }

// Models evaluates another concept against the given types, with the same
// memoization as Registry.Models.
func (c *Ctx) Models(con *Concept, ts ...types.Type) bool {
	return c.reg.Models(con, ts...)
}

// WellFormed reports whether a derived type is defined and valid. Use it
// to guard checks on associated-type projections.
func (c *Ctx) WellFormed(t types.Type) bool {
	return IsValid(t)
}

// Same reports type identity. Undefined operands compare as not-same.
func (c *Ctx) Same(a, b types.Type) bool {
	return a != nil && b != nil && types.Identical(a, b)
}

// ConvertibleTo reports whether a value of type v can be used where type t
// is required, by assignment or conversion.
func (c *Ctx) ConvertibleTo(v, t types.Type) bool {
	if v == nil || t == nil {
		return false
	}
	return types.AssignableTo(v, t) || types.ConvertibleTo(v, t)
}

// IsValid reports whether t is a usable type: non-nil and not the invalid
// marker type.
func IsValid(t types.Type) bool {
	if t == nil {
		return false
	}
	if b, ok := t.Underlying().(*types.Basic); ok && b.Kind() == types.Invalid {
		return false
	}
	return true
}

// MethodSig looks up an exported method by name on t (through embedding and
// pointer receivers) and returns its signature. The lookup tolerates any
// type; absence is reported, never an error.
func MethodSig(t types.Type, name string) (*types.Signature, bool) {
	if t == nil {
		return nil, false
	}
	obj, _, _ := types.LookupFieldOrMethod(t, true, nil, name)
	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, false
	}
	sig, ok := fn.Type().(*types.Signature)
	return sig, ok
}

package concepts

import "go/types"

// Base holds the foundational concepts the capability hierarchies build
// on. They mirror the regularity/comparability/conversion primitives of
// the iterator layer's contract and are installed into a registry with
// DefineBase.
type Base struct {
	SemiRegular         *Concept
	Regular             *Concept
	EqualityComparable  *Concept // unary: T with itself
	EqualityComparable2 *Concept // binary: T with U
	TotallyOrdered      *Concept
	TotallyOrdered2     *Concept
	Integral            *Concept
	SignedIntegral      *Concept
	Convertible         *Concept
	Common              *Concept
	CommonReference     *Concept
}

// DefineBase installs the base concepts into r. The returned Base is the
// lookup table the application layer wires its refinements to.
func DefineBase(r *Registry) *Base {
	b := &Base{}

	b.SemiRegular = r.MustDefine(Def{
		Name:  "SemiRegular",
		Arity: 1,
		Requires: func(ctx *Ctx) bool {
			// Every valid Go type is copyable and zero-constructible.
			return IsValid(ctx.Arg(0))
		},
	})

	b.EqualityComparable = r.MustDefine(Def{
		Name:  "EqualityComparable",
		Arity: 1,
		Requires: func(ctx *Ctx) bool {
			t := ctx.Arg(0)
			if !IsValid(t) {
				return false
			}
			return types.Comparable(t) || equalAccepts(t, t)
		},
	})

	b.EqualityComparable2 = r.MustDefine(Def{
		Name:  "EqualityComparable2",
		Arity: 2,
		Requires: func(ctx *Ctx) bool {
			t, u := ctx.Arg(0), ctx.Arg(1)
			if ctx.Same(t, u) {
				return ctx.Models(b.EqualityComparable, t)
			}
			if equalAccepts(t, u) || equalAccepts(u, t) {
				return true
			}
			// Heterogeneous == needs both sides comparable and a common
			// type to compare through.
			if !ctx.Models(b.EqualityComparable, t) || !ctx.Models(b.EqualityComparable, u) {
				return false
			}
			_, ok := CommonType(t, u)
			return ok
		},
	})

	b.Regular = r.MustDefine(Def{
		Name:  "Regular",
		Arity: 1,
		Refines: []Refinement{
			{Parent: b.SemiRegular},
			{Parent: b.EqualityComparable},
		},
	})

	b.TotallyOrdered = r.MustDefine(Def{
		Name:    "TotallyOrdered",
		Arity:   1,
		Refines: []Refinement{{Parent: b.EqualityComparable}},
		Requires: func(ctx *Ctx) bool {
			// Pointers are ordered by address, the way raw cursors are.
			t := ctx.Arg(0)
			return isOrderedBasic(t) || isPointer(t) || lessAccepts(t, t)
		},
	})

	b.TotallyOrdered2 = r.MustDefine(Def{
		Name:    "TotallyOrdered2",
		Arity:   2,
		Refines: []Refinement{{Parent: b.EqualityComparable2}},
		Requires: func(ctx *Ctx) bool {
			t, u := ctx.Arg(0), ctx.Arg(1)
			if ctx.Same(t, u) {
				return ctx.Models(b.TotallyOrdered, t)
			}
			if lessAccepts(t, u) || lessAccepts(u, t) {
				return true
			}
			if !ctx.Models(b.TotallyOrdered, t) || !ctx.Models(b.TotallyOrdered, u) {
				return false
			}
			_, ok := CommonType(t, u)
			return ok
		},
	})

	b.Integral = r.MustDefine(Def{
		Name:  "Integral",
		Arity: 1,
		Requires: func(ctx *Ctx) bool {
			basic, ok := basicOf(ctx.Arg(0))
			return ok && basic.Info()&types.IsInteger != 0
		},
	})

	b.SignedIntegral = r.MustDefine(Def{
		Name:    "SignedIntegral",
		Arity:   1,
		Refines: []Refinement{{Parent: b.Integral}},
		Requires: func(ctx *Ctx) bool {
			basic, ok := basicOf(ctx.Arg(0))
			return ok && basic.Info()&types.IsUnsigned == 0
		},
	})

	b.Convertible = r.MustDefine(Def{
		Name:  "Convertible",
		Arity: 2,
		Requires: func(ctx *Ctx) bool {
			return ctx.ConvertibleTo(ctx.Arg(0), ctx.Arg(1))
		},
	})

	b.Common = r.MustDefine(Def{
		Name:  "Common",
		Arity: 2,
		Requires: func(ctx *Ctx) bool {
			_, ok := CommonType(ctx.Arg(0), ctx.Arg(1))
			return ok
		},
	})

	// Go draws no value/reference distinction, so the common reference of
	// two types is the same computation as their common type. The concept
	// stays separate: the readable capabilities are stated in terms of it.
	b.CommonReference = r.MustDefine(Def{
		Name:  "CommonReference",
		Arity: 2,
		Requires: func(ctx *Ctx) bool {
			_, ok := CommonType(ctx.Arg(0), ctx.Arg(1))
			return ok
		},
	})

	return b
}

func basicOf(t types.Type) (*types.Basic, bool) {
	if t == nil {
		return nil, false
	}
	b, ok := t.Underlying().(*types.Basic)
	if !ok || b.Kind() == types.Invalid {
		return nil, false
	}
	return b, true
}

func isOrderedBasic(t types.Type) bool {
	b, ok := basicOf(t)
	return ok && b.Info()&types.IsOrdered != 0
}

func isPointer(t types.Type) bool {
	if t == nil {
		return false
	}
	_, ok := t.Underlying().(*types.Pointer)
	return ok
}

// equalAccepts reports whether t has an Equal method taking a u and
// returning bool.
func equalAccepts(t, u types.Type) bool {
	return boolMethodAccepts(t, "Equal", u)
}

// lessAccepts reports whether t has a Less method taking a u and
// returning bool.
func lessAccepts(t, u types.Type) bool {
	return boolMethodAccepts(t, "Less", u)
}

func boolMethodAccepts(t types.Type, name string, arg types.Type) bool {
	sig, ok := MethodSig(t, name)
	if !ok || arg == nil {
		return false
	}
	if sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return false
	}
	if !types.AssignableTo(arg, sig.Params().At(0).Type()) {
		return false
	}
	res, ok := sig.Results().At(0).Type().Underlying().(*types.Basic)
	return ok && res.Info()&types.IsBoolean != 0
}

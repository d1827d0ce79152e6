package concepts

import "go/types"

// Ident is the identity projection: invoking it with a single argument
// yields that argument's type unchanged. It stands in for "no projection"
// wherever a projection parameter is optional.
var Ident types.Type

var identPkg *types.Package

func init() {
	identPkg = types.NewPackage("github.com/funvibe/traitkit/pkg/concepts", "concepts")
	obj := types.NewTypeName(0, identPkg, "ident", nil)
	Ident = types.NewNamed(obj, types.NewStruct(nil, nil), nil)
}

// IsIdent reports whether t is the identity projection.
func IsIdent(t types.Type) bool {
	return t != nil && types.Identical(t, Ident)
}

// InvokeResult computes the result type of invoking f with arguments of
// the given types. f may be Ident (one argument, result is the argument),
// or any type whose underlying type is a function signature with a single
// result. Undefined whenever the arity does not fit, an argument is not
// acceptable for its parameter, or any operand is undefined.
func InvokeResult(f types.Type, args ...types.Type) (types.Type, bool) {
	if f == nil {
		return nil, false
	}
	for _, a := range args {
		if !IsValid(a) {
			return nil, false
		}
	}
	if IsIdent(f) {
		if len(args) != 1 {
			return nil, false
		}
		return args[0], true
	}
	sig, ok := f.Underlying().(*types.Signature)
	if !ok {
		return nil, false
	}
	if sig.Variadic() || sig.Params().Len() != len(args) {
		return nil, false
	}
	for i, a := range args {
		// Call compatibility is assignability, exactly as in a Go call
		// expression.
		if !types.AssignableTo(a, sig.Params().At(i).Type()) {
			return nil, false
		}
	}
	if sig.Results().Len() != 1 {
		return nil, false
	}
	return sig.Results().At(0).Type(), true
}

// Invokable reports whether f can be invoked with the given argument types.
func Invokable(f types.Type, args ...types.Type) bool {
	_, ok := InvokeResult(f, args...)
	return ok
}

// InvokablePredicate reports whether f invoked with the given argument
// types yields a boolean result.
func InvokablePredicate(f types.Type, args ...types.Type) bool {
	res, ok := InvokeResult(f, args...)
	if !ok {
		return false
	}
	b, ok := res.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsBoolean != 0
}

// InvokableRelation reports whether f is a binary predicate applicable in
// every combination of the two argument types: (a,a), (b,b), (a,b), (b,a).
func InvokableRelation(f, a, b types.Type) bool {
	return InvokablePredicate(f, a, a) &&
		InvokablePredicate(f, b, b) &&
		InvokablePredicate(f, a, b) &&
		InvokablePredicate(f, b, a)
}

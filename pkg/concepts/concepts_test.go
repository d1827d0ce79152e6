package concepts

import (
	"go/token"
	"go/types"
	"testing"
)

func integralConcept(r *Registry) *Concept {
	return r.MustDefine(Def{
		Name:  "TestIntegral",
		Arity: 1,
		Requires: func(ctx *Ctx) bool {
			b, ok := ctx.Arg(0).Underlying().(*types.Basic)
			return ok && b.Info()&types.IsInteger != 0
		},
	})
}

func signedConcept(r *Registry, parent *Concept) *Concept {
	return r.MustDefine(Def{
		Name:    "TestSigned",
		Arity:   1,
		Refines: []Refinement{{Parent: parent}},
		Requires: func(ctx *Ctx) bool {
			b, ok := ctx.Arg(0).Underlying().(*types.Basic)
			return ok && b.Info()&types.IsUnsigned == 0
		},
	})
}

func TestDefineErrors(t *testing.T) {
	r := NewRegistry()
	integral := integralConcept(r)

	other := NewRegistry()
	foreign := integralConcept(other)

	tests := []struct {
		name string
		def  Def
	}{
		{"empty name", Def{Arity: 1}},
		{"zero arity", Def{Name: "X", Arity: 0}},
		{"duplicate", Def{Name: "TestIntegral", Arity: 1}},
		{"nil parent", Def{Name: "X", Arity: 1, Refines: []Refinement{{}}}},
		{"foreign parent", Def{Name: "X", Arity: 1, Refines: []Refinement{{Parent: foreign}}}},
		{"arity too small without remap", Def{Name: "X", Arity: 1, Refines: []Refinement{
			{Parent: r.MustDefine(Def{Name: "Binary", Arity: 2})},
		}}},
		{"remap wrong length", Def{Name: "X", Arity: 2, Refines: []Refinement{
			{Parent: integral, Args: []int{0, 1}},
		}}},
		{"remap out of range", Def{Name: "X", Arity: 1, Refines: []Refinement{
			{Parent: integral, Args: []int{3}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Define(tt.def); err == nil {
				t.Errorf("Define(%s) succeeded, want error", tt.name)
			}
		})
	}
}

func TestModelsMonotonicity(t *testing.T) {
	r := NewRegistry()
	integral := integralConcept(r)
	signed := signedConcept(r, integral)

	tests := []struct {
		name         string
		typ          types.Type
		wantIntegral bool
		wantSigned   bool
	}{
		{"int", types.Typ[types.Int], true, true},
		{"uint", types.Typ[types.Uint], true, false},
		{"string", types.Typ[types.String], false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Models(integral, tt.typ); got != tt.wantIntegral {
				t.Errorf("Models(TestIntegral, %s) = %v, want %v", tt.name, got, tt.wantIntegral)
			}
			if got := r.Models(signed, tt.typ); got != tt.wantSigned {
				t.Errorf("Models(TestSigned, %s) = %v, want %v", tt.name, got, tt.wantSigned)
			}
			// Refinement narrows: child implies parent.
			if r.Models(signed, tt.typ) && !r.Models(integral, tt.typ) {
				t.Errorf("%s satisfies the child but not the parent", tt.name)
			}
		})
	}
}

func TestModelsTotality(t *testing.T) {
	r := NewRegistry()
	integral := integralConcept(r)

	if r.Models(nil, types.Typ[types.Int]) {
		t.Error("Models(nil concept) should be false")
	}
	if r.Models(integral) {
		t.Error("Models with arity mismatch should be false")
	}
	if r.Models(integral, nil) {
		t.Error("Models with nil type should be false")
	}
	if r.Models(integral, types.Typ[types.Invalid]) {
		t.Error("Models with the invalid type should be false")
	}
}

func TestModelsDeterminism(t *testing.T) {
	r := NewRegistry()
	integral := integralConcept(r)
	for i := 0; i < 3; i++ {
		if !r.Models(integral, types.Typ[types.Int]) {
			t.Fatalf("evaluation %d flipped", i)
		}
	}
}

func TestMostRefined(t *testing.T) {
	r := NewRegistry()
	integral := integralConcept(r)
	signed := signedConcept(r, integral)
	list := []*Concept{signed, integral}

	tests := []struct {
		name string
		typ  types.Type
		want *Concept
	}{
		{"int resolves to the refined concept", types.Typ[types.Int], signed},
		{"uint falls through to the parent", types.Typ[types.Uint], integral},
		{"string resolves to none", types.Typ[types.String], nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.MostRefined(list, tt.typ); got != tt.want {
				t.Errorf("MostRefined = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrictlyOrdered(t *testing.T) {
	r := NewRegistry()
	integral := integralConcept(r)
	signed := signedConcept(r, integral)

	if err := r.StrictlyOrdered([]*Concept{signed, integral}); err != nil {
		t.Errorf("ordered list rejected: %v", err)
	}
	if err := r.StrictlyOrdered([]*Concept{integral, signed}); err == nil {
		t.Error("reversed list accepted")
	}
	if err := r.StrictlyOrdered([]*Concept{signed, nil}); err == nil {
		t.Error("nil entry accepted")
	}
}

func TestVerifyAcyclic(t *testing.T) {
	r := NewRegistry()
	integral := integralConcept(r)
	signedConcept(r, integral)
	if err := r.VerifyAcyclic(); err != nil {
		t.Errorf("VerifyAcyclic: %v", err)
	}
}

func TestRemappedRefinement(t *testing.T) {
	r := NewRegistry()
	integral := integralConcept(r)
	// A binary concept refining a unary one by fixing the second argument.
	secondIntegral := r.MustDefine(Def{
		Name:    "SecondIntegral",
		Arity:   2,
		Refines: []Refinement{{Parent: integral, Args: []int{1}}},
	})

	if !r.Models(secondIntegral, types.Typ[types.String], types.Typ[types.Int]) {
		t.Error("remap should check the second argument")
	}
	if r.Models(secondIntegral, types.Typ[types.Int], types.Typ[types.String]) {
		t.Error("remap should not check the first argument")
	}
}

func sliceStruct(pkg *types.Package) types.Type {
	return types.NewStruct([]*types.Var{
		types.NewVar(token.NoPos, pkg, "buf", types.NewSlice(types.Typ[types.Byte])),
	}, nil)
}

func TestBaseConcepts(t *testing.T) {
	r := NewRegistry()
	b := DefineBase(r)
	pkg := types.NewPackage("example.com/base", "base")
	nonComparable := sliceStruct(pkg)

	// A non-comparable type that provides equality through a method.
	eqObj := types.NewTypeName(token.NoPos, pkg, "EqByMethod", nil)
	eqNamed := types.NewNamed(eqObj, sliceStruct(pkg), nil)
	recv := types.NewVar(token.NoPos, pkg, "e", eqNamed)
	eqSig := types.NewSignatureType(recv, nil, nil,
		types.NewTuple(types.NewVar(token.NoPos, pkg, "o", eqNamed)),
		types.NewTuple(types.NewVar(token.NoPos, pkg, "", types.Typ[types.Bool])),
		false)
	eqNamed.AddMethod(types.NewFunc(token.NoPos, pkg, "Equal", eqSig))

	tests := []struct {
		name    string
		concept *Concept
		args    []types.Type
		want    bool
	}{
		{"int is equality comparable", b.EqualityComparable, []types.Type{types.Typ[types.Int]}, true},
		{"slice struct is not", b.EqualityComparable, []types.Type{nonComparable}, false},
		{"Equal method counts", b.EqualityComparable, []types.Type{eqNamed}, true},
		{"string is ordered", b.TotallyOrdered, []types.Type{types.Typ[types.String]}, true},
		{"pointer is ordered", b.TotallyOrdered, []types.Type{types.NewPointer(types.Typ[types.Int])}, true},
		{"struct is not ordered", b.TotallyOrdered, []types.Type{types.NewStruct(nil, nil)}, false},
		{"int32 converts to int64", b.Convertible, []types.Type{types.Typ[types.Int32], types.Typ[types.Int64]}, true},
		{"int and int share a common type", b.Common, []types.Type{types.Typ[types.Int], types.Typ[types.Int]}, true},
		{"int and struct do not", b.Common, []types.Type{types.Typ[types.Int], types.NewStruct(nil, nil)}, false},
		{"regular needs equality", b.Regular, []types.Type{nonComparable}, false},
		{"signed excludes uint", b.SignedIntegral, []types.Type{types.Typ[types.Uint]}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Models(tt.concept, tt.args...); got != tt.want {
				t.Errorf("Models(%s) = %v, want %v", tt.concept.Name(), got, tt.want)
			}
		})
	}
}

func TestCommonType(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Type
		want types.Type
		ok   bool
	}{
		{"identical", types.Typ[types.Int], types.Typ[types.Int], types.Typ[types.Int], true},
		{"wider numeric wins", types.Typ[types.Int32], types.Typ[types.Int64], types.Typ[types.Int64], true},
		{"float beats int", types.Typ[types.Int32], types.Typ[types.Float64], types.Typ[types.Float64], true},
		{"unrelated", types.Typ[types.Bool], types.NewStruct(nil, nil), nil, false},
		{"nil operand", nil, types.Typ[types.Int], nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CommonType(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("CommonType ok = %v, want %v", ok, tt.ok)
			}
			if ok && !types.Identical(got, tt.want) {
				t.Errorf("CommonType = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInvokeResult(t *testing.T) {
	lessSig := types.NewSignatureType(nil, nil, nil,
		types.NewTuple(
			types.NewVar(token.NoPos, nil, "a", types.Typ[types.Int]),
			types.NewVar(token.NoPos, nil, "b", types.Typ[types.Int]),
		),
		types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.Bool])),
		false)

	t.Run("identity", func(t *testing.T) {
		got, ok := InvokeResult(Ident, types.Typ[types.String])
		if !ok || !types.Identical(got, types.Typ[types.String]) {
			t.Errorf("Ident projection = %v, %v", got, ok)
		}
		if _, ok := InvokeResult(Ident, types.Typ[types.Int], types.Typ[types.Int]); ok {
			t.Error("Ident should reject two arguments")
		}
	})

	t.Run("signature", func(t *testing.T) {
		got, ok := InvokeResult(lessSig, types.Typ[types.Int], types.Typ[types.Int])
		if !ok || !types.Identical(got, types.Typ[types.Bool]) {
			t.Errorf("InvokeResult = %v, %v", got, ok)
		}
		if _, ok := InvokeResult(lessSig, types.Typ[types.String], types.Typ[types.Int]); ok {
			t.Error("string argument should not fit an int parameter")
		}
		if _, ok := InvokeResult(lessSig, types.Typ[types.Int]); ok {
			t.Error("arity mismatch should be rejected")
		}
	})

	t.Run("relation", func(t *testing.T) {
		if !InvokableRelation(lessSig, types.Typ[types.Int], types.Typ[types.Int]) {
			t.Error("int relation rejected")
		}
		if InvokableRelation(lessSig, types.Typ[types.Int], types.Typ[types.String]) {
			t.Error("mixed relation accepted")
		}
	})
}

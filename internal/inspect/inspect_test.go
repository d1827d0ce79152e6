package inspect

import (
	"go/token"
	"go/types"
	"testing"
)

func buildPackage(t *testing.T) *types.Package {
	t.Helper()
	pkg := types.NewPackage("example.com/fixture", "fixture")
	scope := pkg.Scope()

	named := func(name string) *types.Named {
		obj := types.NewTypeName(token.NoPos, pkg, name, nil)
		n := types.NewNamed(obj, types.NewStruct(nil, nil), nil)
		scope.Insert(obj)
		return n
	}
	method := func(recv *types.Named, name string, params, results []types.Type) {
		rv := types.NewVar(token.NoPos, pkg, "c", recv)
		ps := make([]*types.Var, len(params))
		for i, p := range params {
			ps[i] = types.NewVar(token.NoPos, pkg, "", p)
		}
		rs := make([]*types.Var, len(results))
		for i, r := range results {
			rs[i] = types.NewVar(token.NoPos, pkg, "", r)
		}
		sig := types.NewSignatureType(rv, nil, nil, types.NewTuple(ps...), types.NewTuple(rs...), false)
		recv.AddMethod(types.NewFunc(token.NoPos, pkg, name, sig))
	}

	// A single-pass readable stream.
	stream := named("Stream")
	method(stream, "Get", nil, []types.Type{types.Typ[types.Byte]})
	method(stream, "Next", nil, nil)

	// A full random access cursor with its own sized-range surface.
	cursor := named("Cursor")
	method(cursor, "Get", nil, []types.Type{types.Typ[types.Int]})
	method(cursor, "Set", []types.Type{types.Typ[types.Int]}, nil)
	method(cursor, "Next", nil, nil)
	method(cursor, "Prev", nil, nil)
	method(cursor, "Distance", []types.Type{cursor}, []types.Type{types.Typ[types.Int]})
	method(cursor, "Advance", []types.Type{types.Typ[types.Int]}, nil)
	method(cursor, "At", []types.Type{types.Typ[types.Int]}, []types.Type{types.Typ[types.Int]})
	method(cursor, "Less", []types.Type{cursor}, []types.Type{types.Typ[types.Bool]})

	// Not an iterator at all.
	named("Plain")

	// Unexported types are skipped.
	unexp := types.NewTypeName(token.NoPos, pkg, "hidden", nil)
	types.NewNamed(unexp, types.NewStruct(nil, nil), nil)
	scope.Insert(unexp)

	// Non-type objects are skipped too.
	scope.Insert(types.NewConst(token.NoPos, pkg, "Version", types.Typ[types.String], nil))

	return pkg
}

func TestClassify(t *testing.T) {
	rep := Classify(buildPackage(t))

	want := []Row{
		{
			Package:  "example.com/fixture",
			Type:     "Cursor",
			Concept:  "RandomAccessIterator",
			Category: "random-access",
			Readable: true,
			Writable: true,
			Sized:    true,
		},
		{
			Package:  "example.com/fixture",
			Type:     "Plain",
			Category: "none",
		},
		{
			Package:    "example.com/fixture",
			Type:       "Stream",
			Concept:    "WeakInputIterator",
			Category:   "weak-input",
			SinglePass: true,
			Readable:   true,
		},
	}
	if len(rep.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rep.Rows), len(want), rep.Rows)
	}
	for i, w := range want {
		if rep.Rows[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, rep.Rows[i], w)
		}
	}
}

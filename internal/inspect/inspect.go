// Package inspect loads Go packages and classifies their exported types
// by iterator capability.
package inspect

import (
	"fmt"
	"go/types"
	"os"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/funvibe/traitkit/pkg/iterc"
)

// Row is the classification result for a single exported type.
type Row struct {
	// Package is the import path of the type's package.
	Package string `json:"package"`

	// Type is the unqualified type name.
	Type string `json:"type"`

	// Concept is the most refined iterator concept the type satisfies,
	// empty when the type is not an iterator.
	Concept string `json:"concept,omitempty"`

	// Category is the resolved category tag ("none" for non-iterators).
	Category string `json:"category"`

	// SinglePass is true for iterators that can only be traversed once.
	SinglePass bool `json:"single_pass,omitempty"`

	// Readable and Writable report the dereference surface. Writable is
	// checked against the type's own value type.
	Readable bool `json:"readable,omitempty"`
	Writable bool `json:"writable,omitempty"`

	// Sized reports whether the type forms a sized range with itself.
	Sized bool `json:"sized,omitempty"`
}

// Report is the classification of one package.
type Report struct {
	Rows []Row `json:"rows"`
}

// Load loads the packages matching the given patterns, rooted at dir.
// Package loading errors are collected into a single error.
func Load(dir string, patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedDeps,
		Dir: dir,
		Env: append(os.Environ(), "GOWORK=off"),
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}
	return pkgs, nil
}

// Classify builds the classification report for every exported named type
// in pkg, in name order.
func Classify(pkg *types.Package) *Report {
	set := iterc.Default
	scope := pkg.Scope()
	names := scope.Names()
	sort.Strings(names)

	rep := &Report{}
	for _, name := range names {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() || obj.IsAlias() {
			continue
		}
		rep.Rows = append(rep.Rows, classifyType(set, pkg.Path(), name, obj.Type()))
	}
	return rep
}

func classifyType(set *iterc.Set, pkgPath, name string, t types.Type) Row {
	row := Row{
		Package:  pkgPath,
		Type:     name,
		Category: set.ResolvedCategory(t).String(),
	}
	if c := set.IteratorConcept(t); c != nil {
		row.Concept = c.Name()
	}
	row.SinglePass = set.SinglePass(t)
	row.Readable = set.Models(set.Readable, t)
	if w, ok := iterc.WriteType(t); ok {
		row.Writable = set.Models(set.Writable, t, w)
	}
	row.Sized = set.Models(set.SizedIteratorRange, t, t)
	return row
}

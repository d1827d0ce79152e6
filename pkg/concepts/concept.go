package concepts

import (
	"fmt"
	"go/types"
	"strings"
	"sync"
)

// RequiresFunc is a concept's own requirement body. It is evaluated after
// all refined concepts have been satisfied and must be a pure function of
// the candidate types reachable through ctx.
type RequiresFunc func(ctx *Ctx) bool

// Refinement declares that a concept requires a parent concept to hold.
type Refinement struct {
	// Parent is the refined concept. It must already be defined in the
	// same registry.
	Parent *Concept

	// Args remaps the child's parameters onto the parent's. Entry i is the
	// child argument index passed as the parent's i-th argument, so a
	// binary concept can refine a unary one by fixing a single argument
	// (Args: []int{0}). nil means the identity prefix [0 .. parent arity).
	Args []int
}

// Concept is a named capability predicate over a fixed number of candidate
// types. Concepts are immutable once defined.
type Concept struct {
	name     string
	arity    int
	refines  []Refinement
	requires RequiresFunc
}

// Name returns the concept's registered name.
func (c *Concept) Name() string { return c.name }

// Arity returns the number of candidate types the concept takes.
func (c *Concept) Arity() int { return c.arity }

// Refines returns a copy of the concept's direct refinement edges.
func (c *Concept) Refines() []Refinement {
	out := make([]Refinement, len(c.refines))
	copy(out, c.refines)
	return out
}

// Def describes a concept to be registered.
type Def struct {
	Name     string
	Arity    int
	Refines  []Refinement
	Requires RequiresFunc
}

// Registry holds a set of concepts and the memoized results of evaluating
// them. A registry is safe for concurrent queries; definitions are expected
// to happen up front, before evaluation starts.
type Registry struct {
	mu       sync.Mutex
	concepts map[string]*Concept
	memo     map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		concepts: make(map[string]*Concept),
		memo:     make(map[string]bool),
	}
}

// Define registers a new concept. It fails if the name is taken, the arity
// is not positive, a refinement references a concept outside this registry,
// a parameter remap is out of range, or the refinement would introduce a
// cycle. A failed Define leaves the registry unchanged.
func (r *Registry) Define(d Def) (*Concept, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("concepts: define: empty name")
	}
	if d.Arity < 1 {
		return nil, fmt.Errorf("concepts: define %s: arity must be at least 1, got %d", d.Name, d.Arity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.concepts[d.Name]; ok {
		return nil, fmt.Errorf("concepts: define %s: already defined", d.Name)
	}
	for _, ref := range d.Refines {
		if ref.Parent == nil {
			return nil, fmt.Errorf("concepts: define %s: nil refinement parent", d.Name)
		}
		if got, ok := r.concepts[ref.Parent.name]; !ok || got != ref.Parent {
			return nil, fmt.Errorf("concepts: define %s: refines %s, which is not defined in this registry", d.Name, ref.Parent.name)
		}
		if ref.Args == nil {
			if d.Arity < ref.Parent.arity {
				return nil, fmt.Errorf("concepts: define %s (arity %d): refines %s (arity %d) without a parameter remap",
					d.Name, d.Arity, ref.Parent.name, ref.Parent.arity)
			}
		} else {
			if len(ref.Args) != ref.Parent.arity {
				return nil, fmt.Errorf("concepts: define %s: remap onto %s has %d entries, want %d",
					d.Name, ref.Parent.name, len(ref.Args), ref.Parent.arity)
			}
			for _, idx := range ref.Args {
				if idx < 0 || idx >= d.Arity {
					return nil, fmt.Errorf("concepts: define %s: remap index %d out of range [0, %d)", d.Name, idx, d.Arity)
				}
			}
		}
		// A cycle would make evaluation non-terminating, so it is the one
		// definition-time fatal condition.
		if r.reachableLocked(ref.Parent, d.Name, make(map[string]bool)) {
			return nil, fmt.Errorf("concepts: define %s: refinement cycle through %s", d.Name, ref.Parent.name)
		}
	}
	c := &Concept{
		name:     d.Name,
		arity:    d.Arity,
		refines:  append([]Refinement(nil), d.Refines...),
		requires: d.Requires,
	}
	r.concepts[d.Name] = c
	return c, nil
}

// MustDefine is Define, panicking on error. Intended for package-level
// concept tables assembled at startup.
func (r *Registry) MustDefine(d Def) *Concept {
	c, err := r.Define(d)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the concept registered under name, or nil.
func (r *Registry) Lookup(name string) *Concept {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.concepts[name]
}

// reachableLocked reports whether target is reachable from c through
// refinement edges. Caller holds r.mu.
func (r *Registry) reachableLocked(c *Concept, target string, seen map[string]bool) bool {
	if c.name == target {
		return true
	}
	if seen[c.name] {
		return false
	}
	seen[c.name] = true
	for _, ref := range c.refines {
		if r.reachableLocked(ref.Parent, target, seen) {
			return true
		}
	}
	return false
}

// VerifyAcyclic re-checks the whole refinement graph for cycles. Define
// already rejects cycles edge by edge; this is the registry-wide invariant
// check for tests and diagnostics.
func (r *Registry) VerifyAcyclic() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	done := make(map[string]bool)
	var visit func(c *Concept, path map[string]bool) error
	visit = func(c *Concept, path map[string]bool) error {
		if done[c.name] {
			return nil
		}
		if path[c.name] {
			return fmt.Errorf("concepts: refinement cycle through %s", c.name)
		}
		path[c.name] = true
		for _, ref := range c.refines {
			if err := visit(ref.Parent, path); err != nil {
				return err
			}
		}
		delete(path, c.name)
		done[c.name] = true
		return nil
	}
	for _, c := range r.concepts {
		if err := visit(c, make(map[string]bool)); err != nil {
			return err
		}
	}
	return nil
}

// Models reports whether the candidate types satisfy the concept. The
// result is memoized per (concept, type tuple). Models always returns a
// boolean: a nil concept, an arity mismatch, or an undefined (nil)
// candidate type all evaluate to "not satisfied", never to an error.
func (r *Registry) Models(c *Concept, ts ...types.Type) bool {
	if c == nil || len(ts) != c.arity {
		return false
	}
	for _, t := range ts {
		if t == nil {
			return false
		}
	}
	key := memoKey(c.name, ts)
	r.mu.Lock()
	if v, ok := r.memo[key]; ok {
		r.mu.Unlock()
		return v
	}
	r.mu.Unlock()

	v := r.eval(c, ts)

	r.mu.Lock()
	r.memo[key] = v
	r.mu.Unlock()
	return v
}

// eval checks the refined concepts first (short-circuit AND), then the
// concept's own requirement body. The refinement graph is acyclic by
// construction, so the recursion terminates.
func (r *Registry) eval(c *Concept, ts []types.Type) bool {
	for _, ref := range c.refines {
		var pargs []types.Type
		if ref.Args == nil {
			pargs = ts[:ref.Parent.arity]
		} else {
			pargs = make([]types.Type, len(ref.Args))
			for i, idx := range ref.Args {
				pargs[i] = ts[idx]
			}
		}
		if !r.Models(ref.Parent, pargs...) {
			return false
		}
	}
	if c.requires != nil {
		return c.requires(&Ctx{reg: r, args: ts})
	}
	return true
}

// MostRefined returns the first concept in list that the candidate types
// satisfy, or nil if none match. The list must be ordered most-refined
// first; resolution is strictly first-match. Concepts whose arity does not
// match the tuple are skipped.
func (r *Registry) MostRefined(list []*Concept, ts ...types.Type) *Concept {
	for _, c := range list {
		if c == nil || c.arity != len(ts) {
			continue
		}
		if r.Models(c, ts...) {
			return c
		}
	}
	return nil
}

// StrictlyOrdered verifies that list is ordered most-to-least refined:
// every concept must transitively refine every concept after it. Call
// sites of MostRefined should validate their lists with this; an
// out-of-order list silently under-classifies candidates.
func (r *Registry) StrictlyOrdered(list []*Concept) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range list {
		if c == nil {
			return fmt.Errorf("concepts: resolution list entry %d is nil", i)
		}
		for j := i + 1; j < len(list); j++ {
			if !r.reachableLocked(c, list[j].name, make(map[string]bool)) {
				return fmt.Errorf("concepts: resolution list out of order: %s does not refine %s", c.name, list[j].name)
			}
		}
	}
	return nil
}

func memoKey(name string, ts []types.Type) string {
	var b strings.Builder
	b.WriteString(name)
	for _, t := range ts {
		b.WriteByte('|')
		b.WriteString(types.TypeString(t, nil))
	}
	return b.String()
}

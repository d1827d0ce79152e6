// Package concepts implements a capability-predicate engine over go/types.
//
// A Concept is a named compile-time rule that checks whether one or more
// candidate types support a required set of operations and type relations.
// Concepts refine other concepts: a refined concept holds only if every
// concept it refines holds, plus its own requirement body. Refinement forms
// a DAG that is validated when concepts are defined; evaluation is a pure,
// memoized function of (concept, type tuple).
//
// The engine provides:
//   - Registry.Define / MustDefine: declare concepts and refinement edges,
//     with definition-time rejection of cycles and bad parameter remaps
//   - Registry.Models: the boolean "does this type tuple satisfy P" query
//   - Registry.MostRefined: first match over a most-refined-first list
//   - Registry.StrictlyOrdered: validates that a resolution list really is
//     ordered most-to-least refined
//
// Requirement bodies are short-circuiting conjunctions of soft checks:
// a missing method, an undefined derived type, or an inapplicable relation
// makes the requirement evaluate to false, never to a hard error. The only
// fatal condition in the package is a malformed definition.
//
// The package also defines the base concepts the iterator layer builds on
// (SemiRegular, Regular, EqualityComparable, TotallyOrdered, Convertible,
// Common, CommonReference, Integral, SignedIntegral) together with the
// invocation-result machinery for projection and comparator types.
package concepts

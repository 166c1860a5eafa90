// Package collector provides the accumulator a decode call writes extracted
// values into.
//
// A Result is a nested mapping addressed by target paths. Every path may be
// written once: a second write to the same location is a parser error, which
// keeps two extractors from silently racing on one value. A Result belongs to
// a single decode call and is not safe for concurrent writes.
package collector

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/specialistvlad/qccodec/internal/target"
)

// Result is the nested accumulator of one decode call.
type Result struct {
	root map[string]any
}

// New creates an empty Result.
func New() *Result {
	return &Result{root: make(map[string]any)}
}

// Set writes value at path.
func (r *Result) Set(path target.Path, value any) error {
	if path.Len() == 0 {
		return qcerr.Parserf("cannot write to the empty target path")
	}
	node := r.root
	for i, seg := range path.Segments[:path.Len()-1] {
		next, ok := node[seg]
		if !ok {
			child := make(map[string]any)
			node[seg] = child
			node = child
			continue
		}
		child, isMap := next.(map[string]any)
		if !isMap {
			prefix := target.Path{Segments: path.Segments[:i+1]}
			return qcerr.Parserf("cannot write %s: %s already holds a value", path, prefix)
		}
		node = child
	}

	leaf := path.Leaf()
	if _, exists := node[leaf]; exists {
		return qcerr.Parserf("target %s written more than once", path)
	}
	node[leaf] = value
	return nil
}

// Get returns the value stored at path.
func (r *Result) Get(path target.Path) (any, bool) {
	var cur any = r.root
	for _, seg := range path.Segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether a value or a subtree exists at path.
func (r *Result) Has(path target.Path) bool {
	_, ok := r.Get(path)
	return ok
}

// Float returns the float64 stored at path.
func (r *Result) Float(path target.Path) (float64, error) {
	return typed[float64](r, path)
}

// Int returns the int stored at path.
func (r *Result) Int(path target.Path) (int, error) {
	return typed[int](r, path)
}

// String returns the string stored at path.
func (r *Result) String(path target.Path) (string, error) {
	return typed[string](r, path)
}

// Matrix returns the row-major matrix stored at path (a gradient or Hessian).
func (r *Result) Matrix(path target.Path) ([][]float64, error) {
	return typed[[][]float64](r, path)
}

// Trajectory returns the optimization steps stored at path.
func (r *Result) Trajectory(path target.Path) ([]model.ProgramOutput, error) {
	return typed[[]model.ProgramOutput](r, path)
}

func typed[T any](r *Result, path target.Path) (T, error) {
	var zero T
	v, ok := r.Get(path)
	if !ok {
		return zero, fmt.Errorf("no value at %s", path)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("value at %s is %T, not %T", path, v, zero)
	}
	return t, nil
}

// Paths returns the target path of every stored leaf value, sorted.
func (r *Result) Paths() []string {
	var out []string
	var walk func(prefix []string, m map[string]any)
	walk = func(prefix []string, m map[string]any) {
		for k, v := range m {
			p := append(append([]string(nil), prefix...), k)
			if child, ok := v.(map[string]any); ok {
				walk(p, child)
				continue
			}
			out = append(out, target.Path{Segments: p}.String())
		}
	}
	walk(nil, r.root)
	sort.Strings(out)
	return out
}

// Map returns a copy of the nested mapping. Leaf values are shared.
func (r *Result) Map() map[string]any {
	return copyTree(r.root)
}

func copyTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if child, ok := v.(map[string]any); ok {
			out[k] = copyTree(child)
			continue
		}
		out[k] = v
	}
	return out
}

// Equal reports whether both results hold deeply equal values at the same paths.
func (r *Result) Equal(other *Result) bool {
	if r == nil || other == nil {
		return r == other
	}
	return reflect.DeepEqual(r.root, other.root)
}

// MarshalJSON encodes the nested mapping. Object keys are sorted, so equal
// results encode to identical bytes.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.root)
}

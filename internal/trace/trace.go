// Package trace resolves call-site names against the index and computes the
// set of functions reachable from a root.
package trace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rustscope/rustscope/internal/calls"
	"github.com/rustscope/rustscope/internal/model"
)

// Resolve finds the indexed function a bare or qualified name refers to.
// An exact qualified-name match wins; otherwise the name is treated as the
// final path segment and the lexicographically smallest qualified suffix
// match is chosen, so resolution is deterministic under collisions.
func Resolve(name string, funcs map[string]*model.Function) (*model.Function, bool) {
	if f, ok := funcs[name]; ok {
		return f, true
	}

	suffix := model.Separator + name
	best := ""
	for qn := range funcs {
		if !strings.HasSuffix(qn, suffix) {
			continue
		}
		if best == "" || qn < best {
			best = qn
		}
	}
	if best == "" {
		return nil, false
	}
	return funcs[best], true
}

// Result is the outcome of one reachability pass.
type Result struct {
	Root    *model.Function
	Visited map[string]*model.Function
	Types   map[string]struct{}
}

// Trace walks the call graph from rootName across funcs. Every visited
// function contributes the type names referenced by its signature. Callees
// that do not resolve within funcs are skipped; they still appear as leaves
// when the graph is rendered, but contribute nothing further.
func Trace(rootName string, funcs map[string]*model.Function) (*Result, error) {
	root, ok := Resolve(rootName, funcs)
	if !ok {
		return nil, fmt.Errorf("function %q: %w", rootName, model.ErrNotFound)
	}

	res := &Result{
		Root:    root,
		Visited: make(map[string]*model.Function),
		Types:   make(map[string]struct{}),
	}

	stack := []*model.Function{root}
	for len(stack) > 0 {
		fn := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := res.Visited[fn.QualifiedName]; seen {
			continue
		}
		res.Visited[fn.QualifiedName] = fn

		for _, ref := range fn.Sig.TypeRefs {
			res.Types[ref] = struct{}{}
		}

		for _, site := range calls.Extract(fn.Body, fn.Source) {
			if callee, ok := Resolve(site.Name, funcs); ok {
				stack = append(stack, callee)
			}
		}
	}

	return res, nil
}

// SortedVisited returns the visited functions ordered by qualified name.
func (r *Result) SortedVisited() []*model.Function {
	out := make([]*model.Function, 0, len(r.Visited))
	for _, f := range r.Visited {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].QualifiedName < out[j].QualifiedName
	})
	return out
}

// Package render turns resolved functions and type declarations into the
// text fragments the report formatters assemble.
package render

import (
	"strings"

	"github.com/rustscope/rustscope/internal/calls"
	"github.com/rustscope/rustscope/internal/model"
	"github.com/rustscope/rustscope/internal/trace"
)

const (
	branchTee    = "├── "
	branchCorner = "└── "
	prefixPipe   = "│   "
	prefixBlank  = "    "
)

// Tree writes one call tree rooted at fn. Callees resolve against funcs
// only; a callee outside that subset is printed as a bare leaf. The visited
// set is local to this tree, so a function already expanded here is printed
// with an "(already shown)" marker instead of recursing.
func Tree(b *strings.Builder, fn *model.Function, funcs map[string]*model.Function) {
	b.WriteString(fn.SignatureLine())
	b.WriteString("\n")
	subtree(b, fn, funcs, map[string]struct{}{}, "")
}

func subtree(b *strings.Builder, fn *model.Function, funcs map[string]*model.Function, seen map[string]struct{}, prefix string) {
	seen[fn.QualifiedName] = struct{}{}

	sites := calls.Extract(fn.Body, fn.Source)
	for i, site := range sites {
		last := i == len(sites)-1
		branch, extension := branchTee, prefixPipe
		if last {
			branch, extension = branchCorner, prefixBlank
		}

		callee, resolved := trace.Resolve(site.Name, funcs)

		b.WriteString(prefix)
		b.WriteString(branch)
		if resolved {
			b.WriteString(model.LocalName(callee.QualifiedName))
		} else {
			b.WriteString(site.Name)
		}
		if site.Context != "" {
			b.WriteString(" [in: ")
			b.WriteString(site.Context)
			b.WriteString("]")
		}

		if !resolved {
			b.WriteString("\n")
			continue
		}
		if _, shown := seen[callee.QualifiedName]; shown {
			b.WriteString(" (already shown)\n")
			continue
		}
		b.WriteString("\n")
		subtree(b, callee, funcs, seen, prefix+extension)
	}
}

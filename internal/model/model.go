// Package model defines core data structures for rustscope.
package model

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Separator joins the components of a qualified name:
// "<file>::<name>" for free functions, "<file>::<Type>::<name>" for methods.
const Separator = "::"

// VisibilityFilter selects which declarations a report includes.
type VisibilityFilter string

const (
	AllItems   VisibilityFilter = "all"
	PublicOnly VisibilityFilter = "public"
)

// Includes reports whether an item with the given visibility passes the filter.
func (f VisibilityFilter) Includes(public bool) bool {
	return f != PublicOnly || public
}

// Mode selects which report Generate produces.
type Mode interface {
	mode()
}

// ListAll lists every indexed declaration, grouped by file.
type ListAll struct {
	Visibility VisibilityFilter
}

// CallGraph renders the call tree reachable from Root. An empty Root renders
// every function in the filtered index as its own tree.
type CallGraph struct {
	Root       string
	Visibility VisibilityFilter
}

// SourceOf reconstructs the signature and literal body of one function.
type SourceOf struct {
	Function string
}

func (ListAll) mode()   {}
func (CallGraph) mode() {}
func (SourceOf) mode()  {}

// Signature describes a function's parsed signature. Parameter and return
// types are kept as collapsed source text; TypeRefs holds the bare type
// names they mention, unwrapped through references and arrays, for
// reachability reporting.
type Signature struct {
	Async  bool
	Const  bool
	Unsafe bool

	Params   []string // formatted parameter types; receivers appear as "self"
	Return   string   // "" when the function returns unit
	TypeRefs []string
}

// Function is one analyzable routine: a free function or a public
// type-scoped method. Functions are immutable once parsed.
type Function struct {
	QualifiedName string
	File          string // originating file path, always the key's prefix
	Name          string // local name
	Receiver      string // enclosing type for methods, "" for free functions
	Public        bool
	Sig           Signature

	// Body is the function's block node, nil for declarations without an
	// implementation. Source is the file content backing it.
	Body   *sitter.Node
	Source []byte
}

// SignatureLine renders the full signature with the qualified name, as
// printed in listings and at the root of a call tree. The unit return type
// is spelled out as "()".
func (f *Function) SignatureLine() string {
	ret := f.Sig.Return
	if ret == "" {
		ret = "()"
	}
	return fmt.Sprintf("%sfn %s(%s) -> %s",
		f.qualifiers(), f.QualifiedName, strings.Join(f.Sig.Params, ", "), ret)
}

// DisplayName is the qualified name without its file prefix, e.g.
// "MyType::new" or "main".
func (f *Function) DisplayName() string {
	if i := strings.Index(f.QualifiedName, Separator); i >= 0 {
		return f.QualifiedName[i+len(Separator):]
	}
	return f.QualifiedName
}

// BodyText returns the literal source text of the function body, or "" when
// the function has none.
func (f *Function) BodyText() string {
	if f.Body == nil {
		return ""
	}
	return f.Body.Content(f.Source)
}

func (f *Function) qualifiers() string {
	var b strings.Builder
	if f.Public {
		b.WriteString("pub ")
	}
	if f.Sig.Async {
		b.WriteString("async ")
	}
	if f.Sig.Const {
		b.WriteString("const ")
	}
	if f.Sig.Unsafe {
		b.WriteString("unsafe ")
	}
	return b.String()
}

// CallSite is one syntactic call occurrence inside a function body. Context,
// when non-empty, describes the nearest enclosing control construct.
type CallSite struct {
	Name    string
	Context string
}

// LocalName returns the last Separator-delimited segment of a qualified
// name: the bare function name used for tree display.
func LocalName(qualified string) string {
	if i := strings.LastIndex(qualified, Separator); i >= 0 {
		return qualified[i+len(Separator):]
	}
	return qualified
}

// FileForQualified recovers the originating file path from a qualified name.
// Every indexed key carries the file prefix; a key without one violates an
// internal invariant and yields ErrMalformedKey.
func FileForQualified(qualified string) (string, error) {
	if i := strings.Index(qualified, Separator); i >= 0 {
		return qualified[:i], nil
	}
	return "", fmt.Errorf("%w: %q", ErrMalformedKey, qualified)
}

// TypeEntry pairs a type declaration with its originating file.
type TypeEntry struct {
	File string
	Decl TypeDecl
}

// Index is the in-memory project index for one analysis run: qualified
// name to function, and bare type name to declaration. Built once by
// ingestion, read-only afterward. Both maps resolve name collisions by
// last write wins under the ingestion walk order.
type Index struct {
	Functions map[string]*Function
	Types     map[string]TypeEntry
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Functions: make(map[string]*Function),
		Types:     make(map[string]TypeEntry),
	}
}

// AddFunction inserts f keyed by its qualified name.
func (ix *Index) AddFunction(f *Function) {
	ix.Functions[f.QualifiedName] = f
}

// AddType inserts a declaration keyed by its bare name, overwriting any
// earlier declaration of the same name.
func (ix *Index) AddType(file string, decl TypeDecl) {
	ix.Types[decl.DeclName()] = TypeEntry{File: file, Decl: decl}
}

// FileForType returns the originating file of a type by bare name.
func (ix *Index) FileForType(name string) (string, error) {
	if e, ok := ix.Types[name]; ok {
		return e.File, nil
	}
	return "", fmt.Errorf("%w: type %q", ErrNotFound, name)
}

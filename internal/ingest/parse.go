package ingest

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rustscope/rustscope/internal/model"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// parseFile parses one source file and indexes its top-level declarations.
// Free functions are indexed regardless of visibility; type-scoped methods
// only when public. Errors are swallowed: a bad file never fails the run.
func (l *loader) parseFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		l.debug("skipping unreadable file", logrus.Fields{"file": path, "error": err})
		return
	}

	tree, err := l.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		l.debug("skipping unparseable file", logrus.Fields{"file": path, "error": err})
		return
	}

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		item := root.NamedChild(i)
		switch item.Type() {
		case "function_item":
			if f := functionFromItem(item, source, path, ""); f != nil {
				l.index.AddFunction(f)
			}
		case "impl_item":
			l.indexImpl(item, source, path)
		case "struct_item":
			if d := recordFromItem(item, source); d != nil {
				l.index.AddType(path, d)
			}
		case "enum_item":
			if d := sumFromItem(item, source); d != nil {
				l.index.AddType(path, d)
			}
		case "trait_item":
			if d := interfaceFromItem(item, source); d != nil {
				l.index.AddType(path, d)
			}
		case "type_item":
			if d := aliasFromItem(item, source); d != nil {
				l.index.AddType(path, d)
			}
		}
	}
}

// indexImpl indexes the public methods of one impl block. Non-public
// methods are intentionally invisible to the rest of the pipeline, unlike
// non-public free functions.
func (l *loader) indexImpl(item *sitter.Node, source []byte, path string) {
	typeNode := item.ChildByFieldName("type")
	body := item.ChildByFieldName("body")
	if typeNode == nil || body == nil {
		return
	}
	receiver := formatType(typeNode, source)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		method := body.NamedChild(i)
		if method.Type() != "function_item" || !isPublic(method, source) {
			continue
		}
		if f := functionFromItem(method, source, path, receiver); f != nil {
			l.index.AddFunction(f)
		}
	}
}

// functionFromItem builds a Function from a function_item node. receiver is
// the enclosing impl target for methods, "" for free functions.
func functionFromItem(item *sitter.Node, source []byte, path, receiver string) *model.Function {
	nameNode := item.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(source)

	qualified := path + model.Separator + name
	if receiver != "" {
		qualified = path + model.Separator + receiver + model.Separator + name
	}

	return &model.Function{
		QualifiedName: qualified,
		File:          path,
		Name:          name,
		Receiver:      receiver,
		Public:        isPublic(item, source),
		Sig:           signatureFrom(item, source),
		Body:          item.ChildByFieldName("body"),
		Source:        source,
	}
}

// signatureFrom reads qualifiers, parameter types, the return type, and the
// referenced type names off a function_item or function_signature_item.
func signatureFrom(item *sitter.Node, source []byte) model.Signature {
	var sig model.Signature

	if mods := childOfType(item, "function_modifiers"); mods != nil {
		for i := 0; i < int(mods.ChildCount()); i++ {
			switch mods.Child(i).Type() {
			case "async":
				sig.Async = true
			case "const":
				sig.Const = true
			case "unsafe":
				sig.Unsafe = true
			}
		}
	}

	if params := item.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			switch p.Type() {
			case "self_parameter":
				sig.Params = append(sig.Params, "self")
			case "parameter":
				if ty := p.ChildByFieldName("type"); ty != nil {
					sig.Params = append(sig.Params, formatType(ty, source))
					collectTypeRefs(ty, source, &sig.TypeRefs)
				}
			}
		}
	}

	if ret := item.ChildByFieldName("return_type"); ret != nil {
		sig.Return = formatType(ret, source)
		collectTypeRefs(ret, source, &sig.TypeRefs)
	}

	return sig
}

// collectTypeRefs appends the bare names of named types appearing in ty,
// unwrapped through references and arrays. Generic arguments, tuples, and
// function types are not descended into; this mirrors the approximate
// signature scan used for reachability reporting.
func collectTypeRefs(ty *sitter.Node, source []byte, out *[]string) {
	switch ty.Type() {
	case "type_identifier", "primitive_type":
		*out = append(*out, ty.Content(source))
	case "scoped_type_identifier":
		if name := ty.ChildByFieldName("name"); name != nil {
			*out = append(*out, name.Content(source))
		}
	case "generic_type":
		if base := ty.ChildByFieldName("type"); base != nil {
			collectTypeRefs(base, source, out)
		}
	case "reference_type":
		if inner := ty.ChildByFieldName("type"); inner != nil {
			collectTypeRefs(inner, source, out)
		}
	case "array_type":
		if elem := ty.ChildByFieldName("element"); elem != nil {
			collectTypeRefs(elem, source, out)
		}
	}
}

// isPublic reports whether a declaration carries a bare `pub` modifier.
// Restricted visibility such as pub(crate) does not count.
func isPublic(item *sitter.Node, source []byte) bool {
	vis := childOfType(item, "visibility_modifier")
	return vis != nil && vis.Content(source) == "pub"
}

func childOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == nodeType {
			return c
		}
	}
	return nil
}

// formatType renders a type node as collapsed source text.
func formatType(ty *sitter.Node, source []byte) string {
	return collapseWhitespace(ty.Content(source))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Package calls extracts approximate call sites from Rust function bodies.
//
// Extraction is syntactic. It records the bare callee name of call
// expressions, method calls, and macro invocations, in source order, and
// tags each site with the innermost enclosing control-flow construct.
// Arguments, method receivers, and let initializers are not descended into,
// so calls appearing only there are not reported.
package calls

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rustscope/rustscope/internal/model"
)

// Extract returns the call sites of one function body in source order.
func Extract(body *sitter.Node, source []byte) []model.CallSite {
	if body == nil {
		return nil
	}
	e := &extractor{source: source}
	e.fromBlock(body)
	return e.sites
}

type extractor struct {
	source []byte
	sites  []model.CallSite
}

// tagSince fills the context of every site appended at or after mark that
// does not already carry one. A site inside nested constructs therefore
// keeps its innermost context.
func (e *extractor) tagSince(mark int, context string) {
	for i := mark; i < len(e.sites); i++ {
		if e.sites[i].Context == "" {
			e.sites[i].Context = context
		}
	}
}

func (e *extractor) fromBlock(block *sitter.Node) {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmt := block.NamedChild(i)
		switch stmt.Type() {
		case "expression_statement":
			if inner := stmt.NamedChild(0); inner != nil {
				e.fromExpr(inner)
			}
		case "let_declaration":
			// Initializer calls are out of scope for the approximation.
		default:
			if strings.HasSuffix(stmt.Type(), "_item") {
				continue
			}
			e.fromExpr(stmt)
		}
	}
}

func (e *extractor) fromExpr(expr *sitter.Node) {
	switch expr.Type() {
	case "call_expression":
		e.fromCallee(expr.ChildByFieldName("function"))

	case "macro_invocation":
		if mac := expr.ChildByFieldName("macro"); mac != nil {
			e.push(lastSegment(mac, e.source))
		}

	case "unary_expression", "try_expression", "parenthesized_expression":
		if inner := expr.NamedChild(0); inner != nil {
			e.fromExpr(inner)
		}

	case "binary_expression":
		if left := expr.ChildByFieldName("left"); left != nil {
			e.fromExpr(left)
		}
		if right := expr.ChildByFieldName("right"); right != nil {
			e.fromExpr(right)
		}

	case "block", "unsafe_block":
		e.fromBlock(expr)

	case "async_block":
		if inner := childOfType(expr, "block"); inner != nil {
			e.fromBlock(inner)
		}

	case "if_expression":
		e.fromIf(expr)

	case "match_expression":
		e.fromMatch(expr)

	case "while_expression":
		cond := expr.ChildByFieldName("condition")
		if cond != nil {
			e.fromExpr(cond)
		}
		mark := len(e.sites)
		if body := expr.ChildByFieldName("body"); body != nil {
			e.fromBlock(body)
		}
		e.tagSince(mark, fmt.Sprintf("while (%s)", text(cond, e.source)))

	case "for_expression":
		iterable := expr.ChildByFieldName("value")
		if iterable != nil {
			e.fromExpr(iterable)
		}
		mark := len(e.sites)
		if body := expr.ChildByFieldName("body"); body != nil {
			e.fromBlock(body)
		}
		e.tagSince(mark, fmt.Sprintf("for %s", text(iterable, e.source)))

	case "loop_expression":
		if body := expr.ChildByFieldName("body"); body != nil {
			e.fromBlock(body)
		}
	}
}

func (e *extractor) fromIf(expr *sitter.Node) {
	cond := expr.ChildByFieldName("condition")
	if cond != nil {
		e.fromExpr(cond)
	}

	mark := len(e.sites)
	if then := expr.ChildByFieldName("consequence"); then != nil {
		e.fromBlock(then)
	}
	e.tagSince(mark, fmt.Sprintf("if (%s)", text(cond, e.source)))

	alt := expr.ChildByFieldName("alternative")
	if alt == nil {
		return
	}
	mark = len(e.sites)
	if branch := alt.NamedChild(0); branch != nil {
		if branch.Type() == "block" {
			e.fromBlock(branch)
		} else {
			e.fromExpr(branch)
		}
	}
	e.tagSince(mark, "else")
}

func (e *extractor) fromMatch(expr *sitter.Node) {
	if value := expr.ChildByFieldName("value"); value != nil {
		e.fromExpr(value)
	}
	body := expr.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		arm := body.NamedChild(i)
		if arm.Type() != "match_arm" {
			continue
		}
		mark := len(e.sites)
		if armValue := arm.ChildByFieldName("value"); armValue != nil {
			e.fromExpr(armValue)
		}
		e.tagSince(mark, fmt.Sprintf("match %s", patternText(arm, e.source)))
	}
}

// fromCallee records the bare name of a call target. Callees that are not
// name-shaped, such as the result of another call, are ignored.
func (e *extractor) fromCallee(fn *sitter.Node) {
	if fn == nil {
		return
	}
	switch fn.Type() {
	case "identifier":
		e.push(fn.Content(e.source))
	case "scoped_identifier":
		e.push(lastSegment(fn, e.source))
	case "field_expression":
		if field := fn.ChildByFieldName("field"); field != nil {
			e.push(field.Content(e.source))
		}
	case "generic_function":
		e.fromCallee(fn.ChildByFieldName("function"))
	}
}

func (e *extractor) push(name string) {
	if name != "" {
		e.sites = append(e.sites, model.CallSite{Name: name})
	}
}

// lastSegment returns the final path segment of an identifier path.
func lastSegment(node *sitter.Node, source []byte) string {
	if node.Type() == "scoped_identifier" {
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Content(source)
		}
	}
	content := node.Content(source)
	if i := strings.LastIndex(content, "::"); i >= 0 {
		return content[i+len("::"):]
	}
	return content
}

// patternText renders a match arm's pattern without its guard.
func patternText(arm *sitter.Node, source []byte) string {
	pattern := arm.ChildByFieldName("pattern")
	if pattern == nil {
		return ""
	}
	if pattern.Type() == "match_pattern" {
		if inner := pattern.NamedChild(0); inner != nil {
			return text(inner, source)
		}
	}
	return text(pattern, source)
}

func text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return collapseWhitespace(node.Content(source))
}

func childOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == nodeType {
			return c
		}
	}
	return nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

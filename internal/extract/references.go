package extract

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/parser/queries"
)

var declarationNodeTypes = map[string]bool{
	"function_declaration":   true,
	"method_definition":      true,
	"class_declaration":      true,
	"interface_declaration":  true,
	"type_alias_declaration": true,
}

func extractReferences(matches []queries.Match, tree *ts.Tree, source []byte, path string) ([]RawReference, []RawDynamicPattern, bool) {
	var refs []RawReference
	var patterns []RawDynamicPattern
	hasDynamicEval := false

	for _, match := range matches {
		if len(match.Captures) == 0 {
			continue
		}
		root := rootCapture(match.Captures)
		if root == nil {
			continue
		}

		switch root.Category {
		case "reference":
			refs = append(refs, buildReference(match.Captures, root, source))
		case "dynamic":
			kind, isEval := dynamicKind(root)
			if isEval {
				hasDynamicEval = true
			}
			affectsName := ""
			if root.Node != nil {
				affectsName = findEnclosingName(root.Node, source)
			}
			patterns = append(patterns, RawDynamicPattern{
				Kind:        kind,
				Location:    toGraphLocation(root.Location),
				AffectsName: affectsName,
			})
		}
	}

	return refs, patterns, hasDynamicEval
}

// rootCapture returns the capture with no field suffix (the whole-match
// capture), falling back to the first capture when every one carries a
// field.
func rootCapture(captures []queries.Capture) *queries.Capture {
	for i := range captures {
		if captures[i].Field == "" {
			return &captures[i]
		}
	}
	return &captures[0]
}

func buildReference(captures []queries.Capture, root *queries.Capture, source []byte) RawReference {
	target := findCaptureByField(captures, "target")
	toName := ""
	if target != nil {
		toName = target.Text
	}

	kind := graph.RefCall
	switch {
	case root.Name == "reference.call":
		kind = graph.RefCall
	case root.Name == "reference.call.member":
		kind = graph.RefCall
	case root.Name == "reference.new":
		kind = graph.RefInstantiation
	case root.Name == "reference.property":
		kind = graph.RefPropertyAccess
	case root.Name == "reference.extends":
		kind = graph.RefExtends
	case root.Name == "reference.implements":
		kind = graph.RefImplements
	case root.Name == "reference.type":
		kind = graph.RefTypeReference
	case root.Name == "reference.decorator":
		kind = graph.RefDecorator
	case root.Name == "reference.jsx":
		kind = graph.RefJSXElement
	}

	fromName := ""
	if root.Node != nil {
		fromName = findEnclosingName(root.Node, source)
	}

	return RawReference{
		FromName: fromName,
		ToName:   toName,
		Kind:     kind,
		Location: toGraphLocation(root.Location),
	}
}

func dynamicKind(root *queries.Capture) (graph.DynamicPatternKind, bool) {
	switch root.Name {
	case "dynamic.eval":
		return graph.PatternEval, true
	case "dynamic.function_ctor":
		return graph.PatternFunctionConstructor, true
	case "dynamic.reflect":
		return graph.PatternReflect, true
	case "dynamic.bracket_access.dynamic":
		return graph.PatternBracketAccess, false
	case "dynamic.bracket_access.static":
		return graph.PatternStringPropertyAccess, false
	case "dynamic.iteration":
		return graph.PatternObjectIteration, false
	default:
		return graph.PatternBracketAccess, false
	}
}

// findEnclosingName walks from node up to the nearest declaration and
// returns the name it declares, or "" at module scope.
func findEnclosingName(node *ts.Node, source []byte) string {
	current := node.Parent()
	depth := 0
	for current != nil && depth < 64 {
		if declarationNodeTypes[current.GrammarName()] {
			if n := current.ChildByFieldName("name"); n != nil {
				return string(n.Utf8Text(source))
			}
		}
		if current.GrammarName() == "variable_declarator" {
			value := current.ChildByFieldName("value")
			if value != nil {
				vt := value.GrammarName()
				if vt == "arrow_function" || vt == "function_expression" || vt == "class" {
					if n := current.ChildByFieldName("name"); n != nil {
						return string(n.Utf8Text(source))
					}
				}
			}
		}
		current = current.Parent()
		depth++
	}
	return ""
}

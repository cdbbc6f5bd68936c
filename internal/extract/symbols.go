package extract

import (
	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/parser/queries"
)

func extractSymbols(matches []queries.Match) []RawSymbol {
	var decoratorSites []queries.NodeLocation
	var out []RawSymbol

	for _, match := range matches {
		nameCapture := findCaptureByField(match.Captures, "name")
		if nameCapture == nil {
			if isDecoratorSite(match.Captures) {
				decoratorSites = append(decoratorSites, match.Captures[0].Location)
			}
			continue
		}

		kind := inferKind(nameCapture.Category)
		defCapture := findCaptureByField(match.Captures, "definition")
		loc := nameCapture.Location
		if defCapture != nil {
			loc = defCapture.Location
		}

		exported := anyCaptureHasCategory(match.Captures, "export")

		out = append(out, RawSymbol{
			Name:      nameCapture.Text,
			Kind:      kind,
			Location:  toGraphLocation(loc),
			Exported:  exported,
			SpanStart: loc.StartByte,
			SpanEnd:   loc.EndByte,
		})
	}

	for i := range out {
		for _, site := range decoratorSites {
			if site.EndByte <= out[i].SpanEnd+2048 && site.StartByte < out[i].SpanStart && out[i].SpanStart-site.EndByte < 256 {
				out[i].HasDecorators = true
			}
		}
	}

	return out
}

func isDecoratorSite(captures []queries.Capture) bool {
	for _, c := range captures {
		if c.Category == "decorator" {
			return true
		}
	}
	return false
}

func findCaptureByField(captures []queries.Capture, field string) *queries.Capture {
	for i := range captures {
		if captures[i].Field == field {
			return &captures[i]
		}
	}
	return nil
}

func anyCaptureHasCategory(captures []queries.Capture, category string) bool {
	for _, c := range captures {
		if c.Category == category {
			return true
		}
	}
	return false
}

func inferKind(category string) graph.SymbolKind {
	switch category {
	case "function", "func":
		return graph.KindFunction
	case "class":
		return graph.KindClass
	case "interface":
		return graph.KindInterface
	case "type":
		return graph.KindType
	case "variable", "var", "let", "const":
		return graph.KindVariable
	case "constant":
		return graph.KindConstant
	case "enum":
		return graph.KindEnum
	case "method":
		return graph.KindMethod
	default:
		return graph.KindVariable
	}
}

func toGraphLocation(l queries.NodeLocation) graph.Location {
	return graph.Location{
		StartLine:   l.StartLine,
		StartColumn: l.StartColumn,
		EndLine:     l.EndLine,
		EndColumn:   l.EndColumn,
		StartByte:   l.StartByte,
		EndByte:     l.EndByte,
	}
}

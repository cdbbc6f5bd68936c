package extract

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/ddcheck/ddcheck/internal/parser/queries"
)

// extractImportsExports groups import/export query captures by their
// enclosing statement node and turns each group into zero or more
// RawImport/RawExport entries. Captures from the same tree-sitter query
// execution never carry statement-level grouping on their own (each
// pattern is matched independently), so the enclosing-node walk is what
// recovers "these captures belong to the same import" identity.
func extractImportsExports(matches []queries.Match, source []byte) ([]RawImport, []RawExport) {
	type group struct {
		captures []queries.Capture
	}
	groups := make(map[uint32]*group)
	order := make([]uint32, 0)

	keyFor := func(c *queries.Capture) uint32 {
		if c.Node == nil {
			return c.Location.StartByte
		}
		if n := ancestorOfType(c.Node, "import_statement", "export_statement"); n != nil {
			return n.StartByte()
		}
		if n := ancestorOfType(c.Node, "variable_declarator"); n != nil {
			return n.StartByte()
		}
		if n := ancestorOfType(c.Node, "assignment_expression"); n != nil {
			return n.StartByte()
		}
		return c.Location.StartByte
	}

	for _, match := range matches {
		for i := range match.Captures {
			c := &match.Captures[i]
			key := keyFor(c)
			g, ok := groups[key]
			if !ok {
				g = &group{}
				groups[key] = g
				order = append(order, key)
			}
			g.captures = append(g.captures, *c)
		}
	}

	var imports []RawImport
	var exports []RawExport

	for _, key := range order {
		g := groups[key]
		if isImportGroup(g.captures) {
			if im := buildImport(g.captures, source); im != nil {
				imports = append(imports, *im)
			}
		}
		if isExportGroup(g.captures) {
			exports = append(exports, buildExports(g.captures)...)
		}
	}

	return imports, exports
}

func isImportGroup(captures []queries.Capture) bool {
	for _, c := range captures {
		if strings.HasPrefix(c.Category, "import") || c.Category == "commonjs" {
			return true
		}
	}
	return false
}

func isExportGroup(captures []queries.Capture) bool {
	for _, c := range captures {
		if strings.HasPrefix(c.Category, "export") {
			return true
		}
	}
	return false
}

func buildImport(captures []queries.Capture, source []byte) *RawImport {
	var sourceCap, defaultCap, namespaceCap, requireSourceCap, requireNameCap *queries.Capture
	var named, aliases []queries.Capture
	isTypeOnly := false
	isDynamic := false

	for i := range captures {
		c := &captures[i]
		switch c.Name {
		case "import.source":
			sourceCap = c
		case "import.type.source":
			sourceCap = c
			isTypeOnly = true
		case "import.default":
			defaultCap = c
		case "import.namespace":
			namespaceCap = c
		case "import.named", "import.type.specifier.named":
			named = append(named, *c)
		case "import.alias", "import.type.specifier.alias":
			aliases = append(aliases, *c)
		case "import.dynamic.source":
			sourceCap = c
			isDynamic = true
		case "commonjs.require.source":
			requireSourceCap = c
		case "commonjs.require.fn":
			requireNameCap = c
		}
	}

	if requireSourceCap != nil {
		localName := ""
		if requireNameCap != nil && requireNameCap.Node != nil {
			if decl := ancestorOfType(requireNameCap.Node, "variable_declarator"); decl != nil {
				if n := decl.ChildByFieldName("name"); n != nil {
					localName = string(n.Utf8Text(source))
				}
			}
		}
		return &RawImport{
			LocalName: localName,
			Source:    unquote(requireSourceCap.Text),
			Kind:      ImportNamespace,
			Location:  toGraphLocation(requireSourceCap.Location),
		}
	}

	if sourceCap == nil {
		return nil
	}

	src := unquote(sourceCap.Text)
	loc := toGraphLocation(sourceCap.Location)

	switch {
	case namespaceCap != nil:
		return &RawImport{LocalName: namespaceCap.Text, Source: src, Kind: ImportNamespace, IsTypeOnly: isTypeOnly, Location: loc}
	case defaultCap != nil:
		return &RawImport{LocalName: defaultCap.Text, ImportedName: "default", Source: src, Kind: ImportDefault, IsTypeOnly: isTypeOnly, Location: loc}
	case len(named) > 0:
		local := named[0].Text
		imported := local
		if len(aliases) > 0 {
			local = aliases[0].Text
		}
		return &RawImport{LocalName: local, ImportedName: imported, Source: src, Kind: ImportNamed, IsTypeOnly: isTypeOnly, Location: loc}
	case isDynamic:
		return &RawImport{Source: src, Kind: ImportSideEffect, IsDynamic: true, Location: loc}
	default:
		return &RawImport{Source: src, Kind: ImportSideEffect, IsTypeOnly: isTypeOnly, Location: loc}
	}
}

func buildExports(captures []queries.Capture) []RawExport {
	var out []RawExport
	reexportSource := ""
	isReexport := false

	for i := range captures {
		c := &captures[i]
		switch c.Name {
		case "export.reexport.source":
			reexportSource = unquote(c.Text)
			isReexport = true
		case "export.reexport.name":
			out = append(out, RawExport{LocalName: c.Text, Source: reexportSource})
		case "export.name":
			out = append(out, RawExport{LocalName: c.Text})
		case "export.default":
			out = append(out, RawExport{LocalName: c.Text, IsDefault: true})
		case "commonjs.exports.value":
			out = append(out, RawExport{LocalName: c.Text})
		}
	}

	if isReexport && len(out) == 0 {
		out = append(out, RawExport{Source: reexportSource})
	}

	return out
}

func ancestorOfType(node *ts.Node, types ...string) *ts.Node {
	current := node.Parent()
	depth := 0
	for current != nil && depth < 64 {
		t := current.GrammarName()
		for _, want := range types {
			if t == want {
				return current
			}
		}
		current = current.Parent()
		depth++
	}
	return nil
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}

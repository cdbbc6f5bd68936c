// Package assemble turns a set of per-file extraction results into a
// single graph.CallGraph, in two passes: first every file and symbol is
// registered and assigned a dense id, then cross-file imports and
// reference edges are resolved now that every id exists.
package assemble

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ddcheck/ddcheck/internal/extract"
	"github.com/ddcheck/ddcheck/internal/graph"
)

// resolutionExtensions lists the extensions tried, in order, when a
// relative import specifier has none of its own.
var resolutionExtensions = []string{"ts", "tsx", "js", "jsx", "mts", "cts"}

// Assembler builds a graph.CallGraph from extraction results.
type Assembler struct{}

// New returns an Assembler.
func New() *Assembler { return &Assembler{} }

// Result is the assembled graph plus any warnings worth surfacing (e.g.
// import specifiers that could not be resolved to a file in the project).
type Result struct {
	Graph               *graph.CallGraph
	UnresolvedImports    int
	FirstUnresolvedImport string
}

// Build assembles files into a CallGraph. Files must be given in any
// order; cross-file references are resolved by matching import specifiers
// against every file's absolute path.
func (a *Assembler) Build(files []extract.FileResult) Result {
	g := graph.New()

	pathIndex := make(map[string]graph.FileId, len(files))
	fileSymbolIDs := make([][]graph.SymbolId, len(files))
	// nameIndex[fileID][name] = symbol id, last declaration wins (matches
	// how a later re-declaration shadows an earlier one in scope).
	nameIndex := make([]map[string]graph.SymbolId, len(files))
	exportIndex := make([]map[string]graph.SymbolId, len(files))
	defaultExport := make([]graph.SymbolId, len(files))
	hasDefaultExport := make([]bool, len(files))

	var nextSymbolID graph.SymbolId

	// Pass 1: register files and symbols.
	for i := range files {
		f := &files[i]
		fileID := graph.FileId(i)
		pathIndex[filepath.Clean(f.Path)] = fileID

		g.AddFile(&graph.FileInfo{
			ID:             fileID,
			Path:           f.Path,
			HasSideEffects: f.HasSideEffects,
			HasDynamicEval: f.HasDynamicEval,
		})

		names := make(map[string]graph.SymbolId, len(f.Symbols))
		ids := make([]graph.SymbolId, len(f.Symbols))

		for j, rs := range f.Symbols {
			id := nextSymbolID
			nextSymbolID++

			sym := &graph.TrackedSymbol{
				ID:            id,
				Name:          rs.Name,
				Kind:          rs.Kind,
				Location:      withFile(rs.Location, f.Path),
				FileID:        fileID,
				Exported:      rs.Exported,
				HasDecorators: rs.HasDecorators,
			}
			g.AddSymbol(sym)

			names[rs.Name] = id
			ids[j] = id
		}

		fileSymbolIDs[i] = ids
		nameIndex[i] = names

		for _, pat := range f.DynamicPatterns {
			gp := graph.DynamicPattern{
				Kind:     pat.Kind,
				Location: withFile(pat.Location, f.Path),
			}
			if pat.AffectsName != "" {
				if id, ok := names[pat.AffectsName]; ok {
					gp.Affects = []graph.SymbolId{id}
				}
			}
			g.Patterns = append(g.Patterns, gp)
		}
	}

	// Export index: for each file, map its exported local names (and
	// default export) to the symbol they name.
	for i := range files {
		f := &files[i]
		exports := make(map[string]graph.SymbolId)
		for _, exp := range f.Exports {
			if exp.Source != "" {
				continue // re-export resolved below once targets exist
			}
			if id, ok := nameIndex[i][exp.LocalName]; ok {
				if exp.IsDefault {
					defaultExport[i] = id
					hasDefaultExport[i] = true
				} else {
					exports[exp.LocalName] = id
				}
			}
		}
		exportIndex[i] = exports
	}

	// Resolve re-exports now that every file's own export index exists.
	for i := range files {
		f := &files[i]
		for _, exp := range f.Exports {
			if exp.Source == "" {
				continue
			}
			targetID, ok := resolveModuleSpecifier(filepath.Dir(f.Path), exp.Source, pathIndex)
			if !ok {
				continue
			}
			if exp.LocalName == "" {
				for name, id := range exportIndex[targetID] {
					exportIndex[i][name] = id
				}
				continue
			}
			if id, ok := exportIndex[targetID][exp.LocalName]; ok {
				exportIndex[i][exp.LocalName] = id
			}
		}
	}

	unresolved := 0
	firstUnresolved := ""

	// Pass 2: resolve imports into per-file local bindings, then
	// reference edges.
	for i := range files {
		f := &files[i]
		fileDir := filepath.Dir(f.Path)
		bindings := make(map[string]graph.SymbolId)

		for _, im := range f.Imports {
			if im.LocalName == "" {
				continue
			}
			if !isRelativeSpecifier(im.Source) {
				continue // external package; never resolved to a project file
			}
			targetID, ok := resolveModuleSpecifier(fileDir, im.Source, pathIndex)
			if !ok {
				unresolved++
				if firstUnresolved == "" {
					firstUnresolved = im.Source
				}
				continue
			}

			switch im.Kind {
			case extract.ImportDefault:
				if hasDefaultExport[targetID] {
					bindings[im.LocalName] = defaultExport[targetID]
				}
			case extract.ImportNamespace:
				// A namespace/require binding has no single target symbol;
				// references through it are resolved via member access at
				// the reference site, which this pass does not attempt.
			default:
				name := im.ImportedName
				if name == "" {
					name = im.LocalName
				}
				if id, ok := exportIndex[targetID][name]; ok {
					bindings[im.LocalName] = id
				}
			}
		}

		for _, ref := range f.References {
			fromID, ok := resolveLocal(nameIndex[i], ref.FromName)
			if !ok {
				continue // module-level reference; no owning symbol to hang the edge on
			}

			toID, ok := nameIndex[i][ref.ToName]
			if !ok {
				toID, ok = bindings[ref.ToName]
			}
			if !ok {
				continue
			}

			g.AddReference(graph.SymbolReference{
				FromID:    fromID,
				ToID:      toID,
				Kind:      ref.Kind,
				IsDynamic: ref.IsDynamic,
				Location:  withFile(ref.Location, f.Path),
			})
		}
	}

	return Result{Graph: g, UnresolvedImports: unresolved, FirstUnresolvedImport: firstUnresolved}
}

func resolveLocal(names map[string]graph.SymbolId, name string) (graph.SymbolId, bool) {
	if name == "" {
		return 0, false
	}
	id, ok := names[name]
	return id, ok
}

func withFile(loc graph.Location, path string) graph.Location {
	loc.File = path
	return loc
}

// resolveModuleSpecifier resolves a relative import specifier against the
// set of known file paths: exact match, then each resolutionExtensions
// sibling, then index.<ext> inside the specifier treated as a directory.
// Bare (non-relative) specifiers are left unresolved; they name packages
// outside the project.
func resolveModuleSpecifier(fromDir, spec string, pathIndex map[string]graph.FileId) (graph.FileId, bool) {
	if !isRelativeSpecifier(spec) {
		return 0, false
	}

	base := filepath.Clean(filepath.Join(fromDir, spec))

	if id, ok := pathIndex[base]; ok {
		return id, true
	}
	for _, ext := range resolutionExtensions {
		if id, ok := pathIndex[base+"."+ext]; ok {
			return id, true
		}
	}
	for _, ext := range resolutionExtensions {
		if id, ok := pathIndex[filepath.Join(base, "index."+ext)]; ok {
			return id, true
		}
	}
	return 0, false
}

// isRelativeSpecifier reports whether spec names a project-relative file
// rather than an external package; bare specifiers are never resolved and
// never contribute to the unresolved-import warning.
func isRelativeSpecifier(spec string) bool {
	return strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/")
}

// sortedFileIDs returns a CallGraph's file ids in ascending order, for
// deterministic iteration over its files.
func sortedFileIDs(g *graph.CallGraph) []graph.FileId {
	ids := make([]graph.FileId, 0, len(g.Files))
	for id := range g.Files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

package entrypoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

var conditionKeys = map[string]bool{
	"import": true, "require": true, "default": true,
	"types": true, "node": true, "browser": true,
}

// ReadPackageJSON resolves the entry-point fields of the package.json at
// path (main, module, types, bin, and the full conditional exports map)
// into absolute, source-extension-normalized file paths rooted at the
// manifest's directory.
func ReadPackageJSON(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	var specs []string

	for _, field := range []string{"main", "module", "types"} {
		if v, ok := doc[field].(string); ok && v != "" {
			specs = append(specs, v)
		}
	}

	if bin, ok := doc["bin"]; ok {
		switch b := bin.(type) {
		case string:
			specs = append(specs, b)
		case map[string]any:
			for _, v := range b {
				if s, ok := v.(string); ok {
					specs = append(specs, s)
				}
			}
		}
	}

	if exp, ok := doc["exports"]; ok {
		specs = append(specs, resolveExports(exp)...)
	}

	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		abs := filepath.Clean(filepath.Join(dir, spec))
		out = append(out, normalizeToSource(abs))
	}
	return out, nil
}

// resolveExports recurses through an exports field value:
//   - a string is a direct path
//   - an array resolves to the first string in it
//   - an object either recurses through condition keys (import, require,
//     default, types, node, browser) or, for keys starting with ".",
//     treats the key as an independent subpath export and recurses into
//     its value separately
func resolveExports(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				return []string{s}
			}
		}
		var out []string
		for _, item := range val {
			out = append(out, resolveExports(item)...)
		}
		return out
	case map[string]any:
		var out []string
		for key, sub := range val {
			if strings.HasPrefix(key, ".") || conditionKeys[key] {
				out = append(out, resolveExports(sub)...)
			}
		}
		return out
	default:
		return nil
	}
}

// normalizeToSource rewrites a compiled-output path (.js/.mjs/.cjs) to the
// TypeScript source sibling analysis actually runs over, falling back to
// .tsx when no plain .ts sibling exists, and leaves any other extension
// untouched.
func normalizeToSource(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	switch ext {
	case ".js":
		if exists(base + ".ts") {
			return base + ".ts"
		}
		return base + ".tsx"
	case ".mjs":
		return base + ".mts"
	case ".cjs":
		return base + ".cts"
	default:
		return path
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

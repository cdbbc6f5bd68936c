package extract

// detectSideEffects reports whether a file does work at module-evaluation
// time rather than only declaring symbols: a bare `import './x'`, or any
// reference (call, instantiation, property access) that occurs outside
// every declaration's body.
func detectSideEffects(result *FileResult) bool {
	for _, im := range result.Imports {
		if im.Kind == ImportSideEffect && !im.IsDynamic {
			return true
		}
	}
	for _, ref := range result.References {
		if ref.FromName == "" {
			return true
		}
	}
	return false
}

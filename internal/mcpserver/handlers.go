package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/result"
)

func (s *Server) handleAnalyzeProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("root", "")
	if root == "" {
		return mcp.NewToolResultError("root is required"), nil
	}

	state, err := s.runAnalysis(root)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	min := parseConfidence(req.GetString("min_confidence", "low"))
	dead := result.FilterByConfidence(state.report.DeadSymbols, min)

	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d files, %d symbols. %d dead symbol(s) at or above %s confidence.\n",
		state.report.FilesAnalyzed, state.report.SymbolsAnalyzed, len(dead), min)
	for _, w := range state.report.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	for _, d := range dead {
		fmt.Fprintf(&b, "%s:%d %s %q [%s, score %d] %s\n",
			d.Symbol.Location.File, d.Symbol.Location.StartLine,
			d.Symbol.Kind, d.Symbol.Name, d.Class, d.Score, result.Explain(d))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleExplainSymbol(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("root", "")
	name := req.GetString("name", "")
	if root == "" || name == "" {
		return mcp.NewToolResultError("root and name are required"), nil
	}

	state, ok := s.cache.Get(root)
	if !ok {
		var err error
		state, err = s.runAnalysis(root)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}
	}

	var matches []string
	for _, d := range state.report.DeadSymbols {
		if d.Symbol.Name != name {
			continue
		}
		matches = append(matches, fmt.Sprintf("%s:%d is dead (%s confidence, score %d): %s",
			d.Symbol.Location.File, d.Symbol.Location.StartLine, d.Class, d.Score, result.Explain(d)))
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"%q was not flagged as dead code in the last analysis of %s (either reachable, or not found)", name, root)), nil
	}
	return mcp.NewToolResultText(strings.Join(matches, "\n")), nil
}

func parseConfidence(s string) graph.Confidence {
	switch strings.ToLower(s) {
	case "high":
		return graph.ConfidenceHigh
	case "medium":
		return graph.ConfidenceMedium
	default:
		return graph.ConfidenceLow
	}
}

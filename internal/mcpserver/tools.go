package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// analyzeProjectTool runs (or re-runs) the full pipeline over a project
// root and returns a summary of what it found.
func analyzeProjectTool() mcp.Tool {
	return mcp.NewTool("analyze_project",
		mcp.WithDescription("Analyze a TypeScript/JavaScript project for dead code and return a summary"),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
		mcp.WithString("min_confidence",
			mcp.Description("Minimum confidence to include: low, medium, or high (default low)"),
		),
	)
}

// explainSymbolTool answers a follow-up question about one symbol name
// against the most recent analyze_project result for that root.
func explainSymbolTool() mcp.Tool {
	return mcp.NewTool("explain_symbol",
		mcp.WithDescription("Explain why a specific symbol was (or wasn't) flagged as dead code, using the last analyze_project result for the same root"),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Absolute path to the project root passed to analyze_project"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Symbol name to explain"),
		),
	)
}

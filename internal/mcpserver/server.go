// Package mcpserver exposes the analysis pipeline as an MCP server: an
// editor or agent asks it to analyze a project once and then cheaply
// re-queries the resulting report for individual symbols, instead of
// re-running the whole pipeline per question.
package mcpserver

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ddcheck/ddcheck/internal/config"
	"github.com/ddcheck/ddcheck/internal/pipeline"
	"github.com/ddcheck/ddcheck/internal/result"
)

const serverVersion = "0.1.0-dev"

// cacheSize bounds the number of distinct project roots kept warm at
// once; each entry holds a full analysis report, so this is deliberately
// small.
const cacheSize = 8

// projectState is one cached analysis: the report explain_symbol answers
// follow-up questions against, so a project only needs one full pipeline
// run per edit session instead of one per question.
type projectState struct {
	report result.Report
}

// Server wraps an MCP server exposing analyze_project and explain_symbol.
type Server struct {
	mcpServer *server.MCPServer
	logger    *slog.Logger

	cache *lru.Cache[string, *projectState]
}

// NewServer builds a Server. Each analyze_project call builds its own
// pipeline.Pipeline scoped to that call's config and closes it once
// analysis finishes; only the resulting report is cached.
func NewServer(logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.New[string, *projectState](cacheSize)
	if err != nil {
		return nil, err
	}

	s := &Server{logger: logger, cache: cache}

	s.mcpServer = server.NewMCPServer("ddcheck", serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: analyzeProjectTool(), Handler: s.handleAnalyzeProject},
		server.ServerTool{Tool: explainSymbolTool(), Handler: s.handleExplainSymbol},
	)

	return s, nil
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) runAnalysis(root string) (*projectState, error) {
	cfg, _, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	pipe := pipeline.New(cfg, s.logger)
	defer pipe.Close()

	report, err := pipe.Run(root)
	if err != nil {
		return nil, err
	}

	state := &projectState{report: report}
	s.cache.Add(root, state)
	return state, nil
}

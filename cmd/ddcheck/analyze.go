package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ddcheck/ddcheck/internal/config"
	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/obslog"
	"github.com/ddcheck/ddcheck/internal/pipeline"
)

var (
	analyzeFormat        string
	analyzeMinConfidence int
	analyzeShowChains    bool
	analyzeCheck         bool
	analyzeConfigPath    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a project and report dead code",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "output format: table, json, or compact")
	analyzeCmd.Flags().IntVar(&analyzeMinConfidence, "min-confidence", 0, "minimum confidence score to report (0-100)")
	analyzeCmd.Flags().BoolVar(&analyzeShowChains, "show-chains", false, "print the kill chain for transitively-dead symbols")
	analyzeCmd.Flags().BoolVar(&analyzeCheck, "check", false, "exit with status 2 if any finding clears the confidence filter")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "path to a config file, overriding auto-discovery")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := loadConfigFor(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if analyzeFormat != "" {
		cfg.Output.Format = analyzeFormat
	}

	runID := uuid.NewString()
	logger := obslog.New(obslog.Config{Level: levelFromFlags(), Format: obslog.FormatText})
	logger.Info("starting analysis", "run_id", runID, "root", root)

	pipe := pipeline.New(cfg, logger)
	defer pipe.Close()

	report, err := pipe.Run(root)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Info("analysis complete", "run_id", runID, "files", report.FilesAnalyzed,
		"symbols", report.SymbolsAnalyzed, "dead", len(report.DeadSymbols))

	dead := filterByScore(report.DeadSymbols, analyzeMinConfidence)

	out := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case "json":
		if err := writeJSON(out, report, dead, runID); err != nil {
			return err
		}
	case "compact":
		writeCompact(out, dead)
	default:
		writeTable(out, dead, runID)
		if analyzeShowChains {
			byID := make(map[graph.SymbolId]graph.TrackedSymbol, len(report.DeadSymbols))
			for _, d := range report.DeadSymbols {
				byID[d.Symbol.ID] = d.Symbol
			}
			writeChains(out, dead, byID)
		}
	}

	if analyzeCheck && len(dead) > 0 {
		os.Exit(2)
	}
	return nil
}

// filterByScore keeps findings with Score >= min, the numeric filter the
// CLI exposes directly (distinct from result.FilterByConfidence's
// low/medium/high bucketing, which the MCP front end uses instead).
func filterByScore(dead []graph.DeadSymbol, min int) []graph.DeadSymbol {
	if min <= 0 {
		return dead
	}
	out := make([]graph.DeadSymbol, 0, len(dead))
	for _, d := range dead {
		if d.Score >= min {
			out = append(out, d)
		}
	}
	return out
}

func loadConfigFor(root string) (config.Config, error) {
	if analyzeConfigPath != "" {
		raw, err := os.ReadFile(analyzeConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg := config.Default()
		if err := config.UnmarshalInto(analyzeConfigPath, raw, &cfg); err != nil {
			return config.Config{}, err
		}
		return cfg, config.Validate(cfg)
	}

	cfg, _, err := config.Load(root)
	return cfg, err
}

func levelFromFlags() obslog.Level {
	switch {
	case quiet:
		return obslog.LevelWarn
	case verbose:
		return obslog.LevelDebug
	default:
		return obslog.LevelInfo
	}
}

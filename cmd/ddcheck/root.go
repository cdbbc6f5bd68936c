package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ddcheck/ddcheck/internal/obslog"
)

// Global flag values shared across subcommands.
var (
	verbose bool
	quiet   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "ddcheck",
	Short: "Find dead code in TypeScript and JavaScript projects",
	Long: `ddcheck statically analyzes a TypeScript/JavaScript project, builds a
call graph from its declared symbols and references, and reports module-level
symbols that are not transitively reachable from any entry point.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := obslog.LevelInfo
		switch {
		case quiet:
			level = obslog.LevelWarn
		case verbose:
			level = obslog.LevelDebug
		}
		obslog.SetDefault(obslog.Config{Level: level, Format: obslog.FormatText})
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(modCmd)
	rootCmd.AddCommand(versionCmd)
}

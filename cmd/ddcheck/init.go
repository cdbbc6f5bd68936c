package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter ddcheck.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

const starterConfig = `# respect_gitignore skips everything your .gitignore already excludes.
respect_gitignore = true

# include/exclude take glob patterns layered on top of respect_gitignore.
# include = ["src/**/*.ts"]
# exclude = ["**/*.generated.ts"]

# entry_files/entry_globs/export_names seed reachability: anything reachable
# from one of these is never reported dead, no matter how it's referenced.
# entry_files = ["src/index.ts"]
# entry_globs = ["src/pages/**/*.tsx"]
# export_names = ["default"]

# frameworks selects which built-in entry-point heuristics run (nextjs,
# jest, vitest, express). Leave unset to run every built-in plugin.
# frameworks = ["nextjs", "jest"]

[analysis]
# include_types also reports unused type aliases and interfaces.
include_types = true
# ignore_symbols = ["unused"]
# ignore_patterns = ["^_"]
# max_transitive_depth = 0

[output]
format = "table"
min_confidence = "low"

[watch]
debounce_ms = 200

[logging]
level = "info"
format = "text"
`

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	path := filepath.Join(root, "ddcheck.toml")

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; rerun with --force to overwrite", path)
		}
	}

	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

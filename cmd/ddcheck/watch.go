package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/obslog"
	"github.com/ddcheck/ddcheck/internal/pipeline"
	"github.com/ddcheck/ddcheck/internal/result"
	"github.com/ddcheck/ddcheck/internal/watch"
)

var watchConfigPath string

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-analyze a project on every file change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "", "path to a config file, overriding auto-discovery")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	prevConfigPath := analyzeConfigPath
	analyzeConfigPath = watchConfigPath
	cfg, err := loadConfigFor(root)
	analyzeConfigPath = prevConfigPath
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := obslog.New(obslog.Config{Level: levelFromFlags(), Format: obslog.FormatText})
	pipe := pipeline.New(cfg, logger)
	defer pipe.Close()

	opts := watch.Options{DebounceMS: cfg.Watch.DebounceMS, IgnorePatterns: cfg.Watch.IgnorePatterns}
	w, err := watch.New(root, pipe, opts, logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	var prevDead map[string]graph.DeadSymbol

	w.OnReport = func(report result.Report, err error) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			fmt.Fprintln(out, "analysis failed:", err)
			return
		}

		curDead := make(map[string]graph.DeadSymbol, len(report.DeadSymbols))
		for _, d := range report.DeadSymbols {
			curDead[dedupeKey(d)] = d
		}

		if prevDead != nil {
			added, removed := diffDead(prevDead, curDead)
			if added > 0 || removed > 0 {
				fmt.Fprintf(out, "+%d new dead symbols, -%d revived\n", added, removed)
			}
		}
		prevDead = curDead

		writeTable(out, report.DeadSymbols, "")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func dedupeKey(d graph.DeadSymbol) string {
	return fmt.Sprintf("%s:%d:%s", d.Symbol.Location.File, d.Symbol.Location.StartLine, d.Symbol.Name)
}

func diffDead(prev, cur map[string]graph.DeadSymbol) (added, removed int) {
	for k := range cur {
		if _, ok := prev[k]; !ok {
			added++
		}
	}
	for k := range prev {
		if _, ok := cur[k]; !ok {
			removed++
		}
	}
	return added, removed
}

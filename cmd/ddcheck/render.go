package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/result"
)

// writeTable groups findings by file and renders one aligned table per
// file, confidence-colored unless noColor is set.
func writeTable(w io.Writer, dead []graph.DeadSymbol, runID string) {
	if len(dead) == 0 {
		fmt.Fprintln(w, color.GreenString("No dead code found!"))
		return
	}

	byFile := result.CountByFile(dead)
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.CyanString(file))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "LINE\tNAME\tKIND\tCONFIDENCE\tREASON")
		for _, d := range byFile[file] {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				d.Symbol.Location.StartLine, d.Symbol.Name, kindLabel(d.Symbol.Kind),
				confidenceLabel(d.Class, d.Score), result.Explain(d))
		}
		tw.Flush()
	}
}

func writeChains(w io.Writer, dead []graph.DeadSymbol, byID map[graph.SymbolId]graph.TrackedSymbol) {
	for _, d := range dead {
		if d.Reason.Kind != graph.ReasonTransitive || len(d.Reason.Chain) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s kill chain:\n", d.Symbol.Name)
		for _, id := range d.Reason.Chain {
			if sym, ok := byID[id]; ok {
				fmt.Fprintf(w, "    <- %s (%s:%d)\n", sym.Name, sym.Location.File, sym.Location.StartLine)
			}
		}
	}
}

type jsonOutput struct {
	RunID       string          `json:"run_id"`
	TotalFiles  int             `json:"total_files"`
	TotalSymbols int            `json:"total_symbols"`
	DeadCount   int             `json:"dead_count"`
	DeadSymbols []jsonDeadSymbol `json:"dead_symbols"`
	Warnings    []string        `json:"warnings"`
}

type jsonDeadSymbol struct {
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	File             string `json:"file"`
	Line             int    `json:"line"`
	Column           int    `json:"column"`
	Confidence       string `json:"confidence"`
	ConfidenceScore  int    `json:"confidence_score"`
	Reason           string `json:"reason"`
	Exported         bool   `json:"exported"`
}

func writeJSON(w io.Writer, report result.Report, dead []graph.DeadSymbol, runID string) error {
	out := jsonOutput{
		RunID:        runID,
		TotalFiles:   report.FilesAnalyzed,
		TotalSymbols: report.SymbolsAnalyzed,
		DeadCount:    len(dead),
		Warnings:     report.Warnings,
	}
	for _, d := range dead {
		out.DeadSymbols = append(out.DeadSymbols, jsonDeadSymbol{
			Name:            d.Symbol.Name,
			Kind:            kindLabel(d.Symbol.Kind),
			File:            d.Symbol.Location.File,
			Line:            d.Symbol.Location.StartLine,
			Column:          d.Symbol.Location.StartColumn,
			Confidence:      d.Class.String(),
			ConfidenceScore: d.Score,
			Reason:          result.Explain(d),
			Exported:        d.Symbol.Exported,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeCompact(w io.Writer, dead []graph.DeadSymbol) {
	for _, d := range dead {
		fmt.Fprintf(w, "%s:%d:%d: %s (%s) - %s\n",
			d.Symbol.Location.File, d.Symbol.Location.StartLine, d.Symbol.Location.StartColumn,
			d.Symbol.Name, kindLabel(d.Symbol.Kind), d.Class)
	}
}

func kindLabel(k graph.SymbolKind) string {
	switch k {
	case graph.KindFunction:
		return "fn"
	case graph.KindArrowFunction:
		return "=>"
	case graph.KindClass:
		return "class"
	case graph.KindMethod:
		return "method"
	case graph.KindVariable:
		return "var"
	case graph.KindConstant:
		return "const"
	case graph.KindType:
		return "type"
	case graph.KindInterface:
		return "interface"
	case graph.KindEnum:
		return "enum"
	case graph.KindEnumMember:
		return "member"
	case graph.KindNamespace:
		return "namespace"
	default:
		return "module"
	}
}

func confidenceLabel(c graph.Confidence, score int) string {
	label := fmt.Sprintf("%s (%d)", c, score)
	if noColor {
		return label
	}
	switch c {
	case graph.ConfidenceHigh:
		return color.GreenString(label)
	case graph.ConfidenceMedium:
		return color.YellowString(label)
	default:
		return color.RedString(label)
	}
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddcheck/ddcheck/internal/config"
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Inspect or validate the resolved configuration",
}

var modShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the configuration that would be used for a project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runModShow,
}

var modValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate the resolved configuration without running analysis",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runModValidate,
}

func init() {
	modCmd.AddCommand(modShowCmd)
	modCmd.AddCommand(modValidateCmd)
}

func runModShow(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, path, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "# no config file found, showing built-in defaults")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "# resolved from %s\n", path)
	}
	return enc.Encode(cfg)
}

func runModValidate(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, path, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := config.ValidateEntryFiles(cfg, root); err != nil {
		return err
	}

	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "no config file found; built-in defaults are valid")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
	}
	return nil
}

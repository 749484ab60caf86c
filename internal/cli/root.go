// Package cli provides the command-line interface for pdbdiff.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pdbdiff/internal/cli/commands"
	"github.com/ccollicutt/pdbdiff/internal/cli/plugins"
	"github.com/ccollicutt/pdbdiff/pkg/printer"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:])
}

func run(args []string) int {
	rootCmd := NewRootCommand()

	// A non-flag, non-ASN first argument may name a plugin
	if len(args) > 0 && isPluginCandidate(rootCmd, args[0]) {
		if pluginPath, err := plugins.FindPlugin(args[0]); err == nil {
			return plugins.Execute(pluginPath, args[1:])
		}
	}

	commands.ExitCode = 0
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		if len(args) > 0 && isPluginCandidate(rootCmd, args[0]) {
			printer.Errorf("%s\n", plugins.FormatNotFoundError(args[0]))
			return 2
		}
		// SilenceErrors prevents Cobra from printing this
		printer.Errorf("%v\n", err)
		return 2
	}
	return commands.ExitCode
}

// isPluginCandidate reports whether arg could only be a plugin name.
func isPluginCandidate(rootCmd *cobra.Command, arg string) bool {
	if arg == "" || strings.HasPrefix(arg, "-") {
		return false
	}
	if _, err := commands.ParseASN(arg); err == nil {
		return false
	}
	return !isBuiltinCommand(rootCmd, arg)
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.CompareOptions{}

	rootCmd := &cobra.Command{
		Use:   "pdbdiff [flags] <asn> <asn>",
		Short: "Compare two networks' PeeringDB facilities and exchanges",
		Long: `pdbdiff compares the facility and internet exchange memberships of two
autonomous systems as published by PeeringDB.

By default it lists the exchanges and facilities unique to each AS.
  -c, --common    list shared entries instead
  -i, --ix        exchanges only
  -f, --facility  facilities only
  -1, --first     only the first AS's unique entries
  -2, --second    only the second AS's unique entries

PLUGINS:
  Unknown commands are looked up as standalone binaries named
  pdbdiff-<command>, searched in order:
    1. Same directory as the pdbdiff binary
    2. ~/.pdbdiff/plugins/
    3. Anywhere in PATH`,
		Example: `  pdbdiff 13335 15169
  pdbdiff --common --ix 13335 15169
  pdbdiff -f -1 -o json AS2906 AS16509`,
		Version:       commands.Version,
		Args:          commands.ASNArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunCompare(cmd, args, opts)
		},
	}

	commands.BindCompareFlags(rootCmd.Flags(), opts)

	// Add subcommands
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

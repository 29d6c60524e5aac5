package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shsecret/shsecret/internal/cli"
	"github.com/shsecret/shsecret/pkg/crypto/conway"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "shsecret",
		Short: "Threshold secret sharing over the Conway field",
		Long: `shsecret splits a secret into N share files such that any M of them
reconstruct the secret exactly, while fewer than M reveal nothing about it,
even to an adversary with unbounded computing power.

The scheme is Lagrange interpolation over GF(256) with Conway's canonical
nim-multiplication; shares are interoperable with other implementations of
the same field, and with nothing else.

Features:
- split/combine on files, with named share files or an encrypted archive
- transform: raw polynomial evaluation with the classic [point][+|-]file syntax
- verify: cross-check that every qualifying share subset agrees
- legacy: vault-style Shamir shares (separate, non-interoperable scheme)`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logLevel.Set(slog.LevelDebug)
			}
			// Field tables are built once up front so concurrent transform
			// workers only ever see them read-only.
			conway.Init()
		},
	}

	rootCmd.AddCommand(
		cli.NewTransformCommand(),
		cli.NewSplitCommand(),
		cli.NewCombineCommand(),
		cli.NewVerifyCommand(),
		cli.NewGenerateCommand(),
		cli.NewLegacyCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

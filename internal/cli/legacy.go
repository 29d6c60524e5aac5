package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/vault/shamir"
	"github.com/spf13/cobra"

	"github.com/shsecret/shsecret/internal/validation"
	"github.com/shsecret/shsecret/pkg/secure"
)

// NewLegacyCommand groups operations for vault-style shares. Vault's Shamir
// implementation works over the polynomial-basis GF(256) and embeds the share
// point in the share bytes; it is NOT interoperable with the Conway-field
// shares this tool produces.
func NewLegacyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacy",
		Short: "Vault-compatible Shamir operations (non-interoperable)",
		Long: `Legacy Shamir's Secret Sharing operations using HashiCorp Vault's scheme.

WARNING: these shares use a different GF(256) construction and are NOT
interoperable with shares produced by split/transform. Use them only to
handle shares from vault-style tools.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyUIConfig()
			yellow := color.New(color.FgYellow, color.Bold)
			yellow.Println("Using vault-compatible Shamir implementation; shares are not interoperable with the Conway-field scheme")
			fmt.Println()
		},
	}

	cmd.AddCommand(
		newLegacySplitCommand(),
		newLegacyCombineCommand(),
	)

	return cmd
}

func newLegacySplitCommand() *cobra.Command {
	var (
		parts     int
		threshold int
		inputFile string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into vault-style hex shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecretData(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read secret: %w", err)
			}
			defer secure.Zero(secret)

			shares, err := shamir.Split(secret, parts, threshold)
			if err != nil {
				return fmt.Errorf("failed to split secret: %w", err)
			}

			green := color.New(color.FgGreen)
			green.Printf("Created %d shares with threshold %d\n\n", parts, threshold)
			for i, share := range shares {
				fmt.Printf("Share %d: %s\n", i+1, hex.EncodeToString(share))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "n", 5, "Total number of shares to create")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 3, "Minimum shares needed to reconstruct")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Secret file to split (default: stdin)")

	return cmd
}

func newLegacyCombineCommand() *cobra.Command {
	var outputHex bool

	cmd := &cobra.Command{
		Use:   "combine [hex-share] ...",
		Short: "Combine vault-style hex shares",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares := make([][]byte, len(args))
			for i, arg := range args {
				arg = strings.TrimSpace(arg)
				if err := validation.ValidateHex(arg); err != nil {
					return fmt.Errorf("share %d: %w", i+1, err)
				}
				data, err := hex.DecodeString(arg)
				if err != nil {
					return fmt.Errorf("share %d: %w", i+1, err)
				}
				shares[i] = data
			}

			secret, err := shamir.Combine(shares)
			if err != nil {
				return fmt.Errorf("failed to combine shares: %w", err)
			}
			defer secure.Zero(secret)

			if outputHex {
				fmt.Printf("%s\n", hex.EncodeToString(secret))
				return nil
			}
			fmt.Printf("%s\n", string(secret))
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputHex, "hex", false, "Print the secret as hex")

	return cmd
}

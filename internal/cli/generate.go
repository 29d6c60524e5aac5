package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"github.com/shsecret/shsecret/pkg/secure"
)

func NewGenerateCommand() *cobra.Command {
	var (
		size       int
		outputFile string
		mnemonic   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a cryptographically random secret",
		Long: `Generate random bytes suitable for use as a secret or key. For sizes of
16, 20, 24, 28 or 32 bytes the secret can also be rendered as a BIP39
mnemonic phrase for a paper backup.`,
		Example: `  # 32 random bytes as hex
  shsecret generate

  # 16-byte secret written to a file, with mnemonic words
  shsecret generate --bytes 16 --output seed.bin --mnemonic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyUIConfig()

			if size <= 0 || size > 1024 {
				return fmt.Errorf("size must be between 1 and 1024 bytes, got %d", size)
			}

			secret, err := secure.SecureRandom(size)
			if err != nil {
				return err
			}
			defer secure.Zero(secret)

			if outputFile != "" {
				if err := os.WriteFile(outputFile, secret, 0600); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				green := color.New(color.FgGreen)
				green.Printf("Wrote %d random bytes to %s\n", size, outputFile)
			} else {
				fmt.Printf("%s\n", hex.EncodeToString(secret))
			}

			if mnemonic {
				words, err := bip39.NewMnemonic(secret)
				if err != nil {
					return fmt.Errorf("cannot encode %d bytes as a mnemonic (valid sizes: 16, 20, 24, 28, 32): %w", size, err)
				}
				cyan := color.New(color.FgCyan, color.Bold)
				cyan.Println("Mnemonic:")
				fmt.Println(words)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "bytes", "b", 32, "Number of random bytes to generate")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "File to write the secret to (default: hex to stdout)")
	cmd.Flags().BoolVar(&mnemonic, "mnemonic", false, "Also print the secret as a BIP39 mnemonic")

	return cmd
}

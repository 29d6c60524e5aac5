package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shsecret/shsecret/internal/validation"
	"github.com/shsecret/shsecret/pkg/crypto/sharing"
	"github.com/shsecret/shsecret/pkg/secure"
	"github.com/shsecret/shsecret/pkg/sharestore"
)

func NewCombineCommand() *cobra.Command {
	var (
		outputFile string
		archive    string
		outputHex  bool
	)

	cmd := &cobra.Command{
		Use:   "combine [point:file | file.p<point>.share] ...",
		Short: "Combine share files to recover the secret",
		Long: `Combine reconstructs the secret from a threshold of shares. Shares are
given as files whose points are taken from the .p<point>.share name written
by split, or stated explicitly as point:file; alternatively an encrypted
archive written by split --encrypt supplies the whole set.

The scheme cannot tell a sufficient share set from an insufficient one:
combining fewer shares than the original threshold silently yields garbage.`,
		Example: `  # Combine three shares by file name
  shsecret combine secret.bin.p1.share secret.bin.p2.share secret.bin.p4.share -o secret.bin

  # Explicit points, output as hex
  shsecret combine 1:a.dat 3:b.dat --hex

  # From an encrypted archive
  shsecret combine --archive shares.ssa -o secret.bin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyUIConfig()

			var shares []sharing.Share

			if archive != "" {
				if len(args) > 0 {
					return fmt.Errorf("give either share files or --archive, not both")
				}
				pass, err := readPassphrase("Enter passphrase: ")
				if err != nil {
					return err
				}
				defer secure.Zero(pass)

				loaded, err := sharestore.Load(archive, pass)
				if err != nil {
					return err
				}
				if loaded.Threshold > 0 && loaded.Threshold <= len(loaded.Shares) {
					shares = loaded.Shares[:loaded.Threshold]
				} else {
					shares = loaded.Shares
				}
			} else {
				if len(args) == 0 {
					return fmt.Errorf("no share files given")
				}
				loaded, err := readShareFiles(args)
				if err != nil {
					return err
				}
				shares = loaded
			}

			secret, err := sharing.Combine(shares)
			if err != nil {
				return fmt.Errorf("failed to combine shares: %w", err)
			}
			defer secure.Zero(secret)

			if outputFile != "" {
				if err := os.WriteFile(outputFile, secret, 0600); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				green := color.New(color.FgGreen, color.Bold)
				green.Printf("Recovered %d bytes to %s\n", len(secret), outputFile)
				return nil
			}

			if outputHex {
				fmt.Printf("%s\n", hex.EncodeToString(secret))
				return nil
			}

			_, err = os.Stdout.Write(secret)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "File to write the recovered secret to")
	cmd.Flags().StringVar(&archive, "archive", "", "Encrypted share archive written by split --encrypt")
	cmd.Flags().BoolVar(&outputHex, "hex", false, "Print the secret as hex instead of raw bytes")

	return cmd
}

// readShareFiles resolves share references to points and loads the files,
// rejecting duplicate points and mismatched lengths.
func readShareFiles(args []string) ([]sharing.Share, error) {
	shares := make([]sharing.Share, 0, len(args))
	points := make([]byte, 0, len(args))

	for _, arg := range args {
		point, path, err := validation.ParseShareRef(arg)
		if err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read share file: %w", err)
		}
		if len(shares) > 0 && len(data) != len(shares[0].Data) {
			return nil, fmt.Errorf("share file %s has %d bytes, expected %d",
				path, len(data), len(shares[0].Data))
		}

		shares = append(shares, sharing.Share{Point: point, Data: data})
		points = append(points, point)
	}

	if err := validation.CheckDuplicatePoints(points); err != nil {
		return nil, err
	}

	return shares, nil
}

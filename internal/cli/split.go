package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shsecret/shsecret/pkg/config"
	"github.com/shsecret/shsecret/pkg/crypto/sharing"
	"github.com/shsecret/shsecret/pkg/secure"
	"github.com/shsecret/shsecret/pkg/sharestore"
)

// SplitResult is the JSON shape of a completed split.
type SplitResult struct {
	Files     []string `json:"files,omitempty"`
	Archive   string   `json:"archive,omitempty"`
	Threshold int      `json:"threshold"`
	Total     int      `json:"total"`
	Length    int      `json:"length"`
}

func NewSplitCommand() *cobra.Command {
	var (
		parts     int
		threshold int
		inputFile string
		outputDir string
		encrypt   bool
		archive   string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret file into share files",
		Long: `Split a secret into multiple share files of the same length using
threshold secret sharing over the Conway field. Any threshold number of
shares reconstructs the secret exactly; fewer reveal nothing about it.

Share files are named <secret>.p<point>.share; the point label is needed
for reconstruction, so keep the names (or pass point:file to combine).
The sharing itself carries no metadata: remember the threshold.`,
		Example: `  # Split secret.bin into 5 shares, any 3 reconstruct
  shsecret split --parts 5 --threshold 3 --input secret.bin

  # Split stdin into an encrypted archive
  cat secret.bin | shsecret split -n 3 -t 2 --encrypt --archive shares.ssa`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyUIConfig()
			applySplitDefaults(cmd, &parts, &threshold, &outputDir)

			cfg := sharing.Config{Parts: parts, Threshold: threshold}
			if err := cfg.Validate(); err != nil {
				return err
			}

			outputJSON, _ := cmd.Flags().GetBool("json")

			secret, err := readSecretData(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read secret: %w", err)
			}
			if len(secret) == 0 {
				return fmt.Errorf("secret cannot be empty")
			}
			defer secure.Zero(secret)

			shares, err := sharing.Split(secret, cfg)
			if err != nil {
				return fmt.Errorf("failed to split secret: %w", err)
			}

			result := SplitResult{
				Threshold: threshold,
				Total:     parts,
				Length:    len(secret),
			}

			if encrypt {
				if archive == "" {
					archive = filepath.Join(outputDir, shareBaseName(inputFile)+".ssa")
				}
				pass, err := readPassphraseConfirmed()
				if err != nil {
					return err
				}
				defer secure.Zero(pass)

				err = sharestore.Save(archive, &sharestore.Archive{
					Name:      shareBaseName(inputFile),
					Threshold: threshold,
					Parts:     parts,
					Shares:    shares,
				}, pass)
				if err != nil {
					return err
				}
				result.Archive = archive
			} else {
				base := shareBaseName(inputFile)
				for _, share := range shares {
					path := filepath.Join(outputDir, fmt.Sprintf("%s.p%d.share", base, share.Point))
					if err := os.WriteFile(path, share.Data, 0600); err != nil {
						return fmt.Errorf("failed to write share file: %w", err)
					}
					result.Files = append(result.Files, path)
				}
			}

			if outputJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			return printSplitResult(result)
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "n", 0, "Total number of shares to create")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "Minimum shares needed to reconstruct")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Secret file to split (default: stdin)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for share files")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "Write a passphrase-protected archive instead of share files")
	cmd.Flags().StringVar(&archive, "archive", "", "Archive path (with --encrypt)")

	return cmd
}

// applySplitDefaults fills unset flags from the config file. Config load
// failures fall back to built-in defaults; defaults are a convenience, not a
// precondition.
func applySplitDefaults(cmd *cobra.Command, parts, threshold *int, outputDir *string) {
	defaults := config.DefaultConfig().Defaults
	if manager, err := config.NewManager(); err == nil {
		defaults = manager.Get().Defaults
	}

	if !cmd.Flags().Changed("parts") && *parts == 0 {
		*parts = defaults.Parts
	}
	if !cmd.Flags().Changed("threshold") && *threshold == 0 {
		*threshold = defaults.Threshold
	}
	if !cmd.Flags().Changed("output-dir") && *outputDir == "" {
		*outputDir = defaults.OutputDir
	}
}

func printSplitResult(result SplitResult) error {
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)

	fmt.Println()
	green.Printf("Created %d shares with threshold %d (%d bytes each)\n",
		result.Total, result.Threshold, result.Length)
	fmt.Printf("Any %d shares reconstruct the original secret\n\n", result.Threshold)

	if result.Archive != "" {
		fmt.Printf("Encrypted archive: %s\n\n", result.Archive)
	} else {
		for _, file := range result.Files {
			fmt.Printf("  %s\n", file)
		}
		fmt.Println()
	}

	red.Println("SECURITY WARNING:")
	fmt.Println("- Store each share in a different secure location")
	fmt.Println("- Fewer shares than the threshold reveal nothing; do not lose track of the threshold")
	fmt.Println()

	yellow.Println("Share point labels are part of the share: keep the file names.")

	return nil
}

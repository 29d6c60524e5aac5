package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shsecret/shsecret/pkg/crypto/sharing"
	"github.com/shsecret/shsecret/pkg/secure"
)

const maxVerifySubsets = 10000

func NewVerifyCommand() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "verify [point:file | file.p<point>.share] ...",
		Short: "Check that every threshold subset of shares agrees",
		Long: `Verify reconstructs the secret from every threshold-sized subset of the
given shares and checks that all reconstructions are identical. A consistent
sharing yields the same secret from any qualifying subset; disagreement
means a share is corrupted or belongs to a different sharing instance.

The secret itself is never printed.`,
		Example: `  # All four 3-of-4 subsets must agree
  shsecret verify -t 3 s.p1.share s.p2.share s.p3.share s.p4.share`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyUIConfig()

			shares, err := readShareFiles(args)
			if err != nil {
				return err
			}

			if threshold < 2 || threshold > len(shares) {
				return fmt.Errorf("threshold must be between 2 and the number of shares (%d)", len(shares))
			}

			subsets := combinations(len(shares), threshold, maxVerifySubsets)
			if subsets == nil {
				return fmt.Errorf("too many subsets to verify: more than %d", maxVerifySubsets)
			}

			var reference []byte
			for _, subset := range subsets {
				selected := make([]sharing.Share, threshold)
				for k, idx := range subset {
					selected[k] = shares[idx]
				}

				secret, err := sharing.Combine(selected)
				if err != nil {
					return fmt.Errorf("failed to combine subset %v: %w", subsetPoints(selected), err)
				}

				if reference == nil {
					reference = secret
					continue
				}
				if !secure.ConstantTimeCompare(reference, secret) {
					secure.Zero(reference)
					secure.Zero(secret)
					red := color.New(color.FgRed, color.Bold)
					red.Printf("✗ Shares at points %v disagree with the first subset\n", subsetPoints(selected))
					return fmt.Errorf("share set is inconsistent")
				}
				secure.Zero(secret)
			}
			secure.Zero(reference)

			green := color.New(color.FgGreen, color.Bold)
			green.Printf("✓ All %d subsets of %d shares reconstruct the same secret\n",
				len(subsets), len(shares))
			return nil
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "Threshold the sharing was created with")

	return cmd
}

func subsetPoints(shares []sharing.Share) []int {
	points := make([]int, len(shares))
	for i, s := range shares {
		points[i] = int(s.Point)
	}
	return points
}

// combinations enumerates all k-of-n index subsets iteratively, up to limit;
// it returns nil when the count would exceed the limit.
func combinations(n, k, limit int) [][]int {
	var result [][]int

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if len(result) >= limit {
			return nil
		}
		subset := make([]int, k)
		copy(subset, idx)
		result = append(result, subset)

		// Advance to the next combination in lexicographic order.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return result
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

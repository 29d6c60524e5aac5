package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shsecret/shsecret/internal/validation"
	"github.com/shsecret/shsecret/pkg/crypto/lagrange"
)

// NewTransformCommand creates the transform command, the raw interface to the
// interpolation engine using the classic [point][+|-][file] argument syntax.
func NewTransformCommand() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "transform [point][+|-][file] ...",
		Short: "Evaluate the sharing polynomial at arbitrary points",
		Long: `Transform computes the Lagrange interpolating polynomial through the
input files at their points and writes its values at the output points.

Each argument is [point][+|-][file]: a point between 0 and 255 (0 when
omitted), '-' for an input file, '+' for an output file. All files carry one
value buffer; every buffer must have the same length, which is taken from the
first input file.

Sharing a secret with threshold M into N shares binds the secret to input
point 0, M-1 cryptographically random files to distinct nonzero input points,
and the N share files to output points. Recovery binds any M shares to their
original input points and the secret to output point 0.`,
		Example: `  # Share secret.txt 2-of-3: shares at points 1, 2, 3
  shsecret transform -secret.txt 1-rand.bin 1+s1 2+s2 3+s3

  # Recover from shares 1 and 3
  shsecret transform 1-s1 3-s3 +secret.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(args, workers)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Worker goroutines for the byte range (0 = GOMAXPROCS)")

	return cmd
}

func runTransform(args []string, workers int) error {
	var (
		inPoints  []byte
		inValues  [][]byte
		outPoints []byte
		outPaths  []string
		seen      [256]bool
		ln        = -1
	)

	for _, arg := range args {
		spec, err := validation.ParseFileSpec(arg)
		if err != nil {
			return err
		}

		if spec.Input {
			if seen[spec.Point] {
				return fmt.Errorf("duplicate input point %d", spec.Point)
			}
			seen[spec.Point] = true

			if len(inPoints) >= lagrange.MaxPoints {
				return fmt.Errorf("too many input files: at most %d", lagrange.MaxPoints)
			}

			data, err := os.ReadFile(spec.Path)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			if ln < 0 {
				ln = len(data)
			} else if len(data) != ln {
				return fmt.Errorf("input file %s has %d bytes, expected %d", spec.Path, len(data), ln)
			}

			inPoints = append(inPoints, spec.Point)
			inValues = append(inValues, data)
		} else {
			if len(outPoints) >= lagrange.MaxPoints {
				return fmt.Errorf("too many output files: at most %d", lagrange.MaxPoints)
			}
			outPoints = append(outPoints, spec.Point)
			outPaths = append(outPaths, spec.Path)
		}
	}

	if len(inPoints) == 0 {
		return fmt.Errorf("no input files")
	}
	if len(outPoints) == 0 {
		return fmt.Errorf("no output files")
	}

	outValues := make([][]byte, len(outPoints))
	for i := range outValues {
		outValues[i] = make([]byte, ln)
	}

	lagrange.TransformParallel(inPoints, outPoints, inValues, outValues, workers)

	slog.Debug("transform complete",
		"inputs", len(inPoints),
		"outputs", len(outPoints),
		"bytes", ln,
	)

	// Outputs are written only after the whole transform has run; a failed
	// write aborts with an error rather than reporting partial success.
	for i, path := range outPaths {
		if err := os.WriteFile(path, outValues[i], 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	return nil
}

// Package sharing provides the high-level split/combine API on top of the
// Conway-field Lagrange transform. A secret is embedded as the value of a
// random polynomial at point 0; shares are the polynomial's values at nonzero
// points. Any Threshold shares determine the polynomial; fewer reveal nothing.
package sharing

import (
	"fmt"

	"github.com/shsecret/shsecret/pkg/crypto/lagrange"
	"github.com/shsecret/shsecret/pkg/secure"
)

// Share is one point/value pair of a sharing. Point 0 is the secret itself
// and never appears in a distributed share.
type Share struct {
	Point byte   `json:"point"`
	Data  []byte `json:"data"`
}

type Config struct {
	Parts     int
	Threshold int
}

func (c *Config) Validate() error {
	if c.Parts < 2 {
		return fmt.Errorf("parts must be at least 2, got %d", c.Parts)
	}
	if c.Threshold < 2 {
		return fmt.Errorf("threshold must be at least 2, got %d", c.Threshold)
	}
	if c.Threshold > c.Parts {
		return fmt.Errorf("threshold (%d) cannot be greater than parts (%d)", c.Threshold, c.Parts)
	}
	if c.Parts > 255 {
		return fmt.Errorf("parts cannot exceed 255, got %d", c.Parts)
	}
	return nil
}

// Split shares secret into config.Parts shares at points 1..Parts such that
// any config.Threshold of them reconstruct it. The Threshold-1 masking
// buffers are drawn from crypto/rand; the sharing carries no metadata, so the
// threshold must be remembered out of band.
func Split(secret []byte, config Config) ([]Share, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if len(secret) == 0 {
		return nil, fmt.Errorf("secret cannot be empty")
	}

	inPoints := make([]byte, config.Threshold)
	inValues := make([][]byte, config.Threshold)
	inValues[0] = secret
	for j := 1; j < config.Threshold; j++ {
		random, err := secure.SecureRandom(len(secret))
		if err != nil {
			return nil, fmt.Errorf("failed to generate masking data: %w", err)
		}
		inPoints[j] = byte(j)
		inValues[j] = random
	}

	outPoints := make([]byte, config.Parts)
	outValues := make([][]byte, config.Parts)
	for i := 0; i < config.Parts; i++ {
		outPoints[i] = byte(i + 1)
		outValues[i] = make([]byte, len(secret))
	}

	lagrange.Transform(inPoints, outPoints, inValues, outValues)

	for j := 1; j < config.Threshold; j++ {
		secure.Zero(inValues[j])
	}

	result := make([]Share, config.Parts)
	for i := range result {
		result[i] = Share{
			Point: byte(i + 1),
			Data:  outValues[i],
		}
	}

	return result, nil
}

// Combine reconstructs the secret from shares. The scheme cannot detect an
// insufficient or mismatched share set: fewer shares than the original
// threshold yield well-formed garbage, not an error.
func Combine(shares []Share) ([]byte, error) {
	inPoints, inValues, err := checkShares(shares)
	if err != nil {
		return nil, err
	}

	secret := make([]byte, len(inValues[0]))
	lagrange.Transform(inPoints, []byte{0}, inValues, [][]byte{secret})

	return secret, nil
}

// Evaluate computes the sharing polynomial's value at arbitrary points,
// given at least a threshold of shares. With points beyond the original
// share set this mints additional shares of the same secret.
func Evaluate(shares []Share, points []byte) ([]Share, error) {
	inPoints, inValues, err := checkShares(shares)
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no evaluation points given")
	}
	if len(points) > 256 {
		return nil, fmt.Errorf("at most 256 evaluation points, got %d", len(points))
	}

	outValues := make([][]byte, len(points))
	for i := range outValues {
		outValues[i] = make([]byte, len(inValues[0]))
	}

	lagrange.Transform(inPoints, points, inValues, outValues)

	result := make([]Share, len(points))
	for i := range result {
		result[i] = Share{Point: points[i], Data: outValues[i]}
	}
	return result, nil
}

func checkShares(shares []Share) ([]byte, [][]byte, error) {
	if len(shares) < 2 {
		return nil, nil, fmt.Errorf("at least 2 shares are required for reconstruction")
	}
	if len(shares) > 256 {
		return nil, nil, fmt.Errorf("at most 256 shares, got %d", len(shares))
	}

	inPoints := make([]byte, len(shares))
	inValues := make([][]byte, len(shares))
	seen := make(map[byte]bool, len(shares))

	for i, share := range shares {
		if share.Point == 0 {
			return nil, nil, fmt.Errorf("share point 0 is reserved for the secret")
		}
		if len(share.Data) == 0 {
			return nil, nil, fmt.Errorf("share at point %d has empty data", share.Point)
		}
		if len(share.Data) != len(shares[0].Data) {
			return nil, nil, fmt.Errorf("share at point %d has length %d, expected %d",
				share.Point, len(share.Data), len(shares[0].Data))
		}
		if seen[share.Point] {
			return nil, nil, fmt.Errorf("duplicate share point %d", share.Point)
		}
		seen[share.Point] = true
		inPoints[i] = share.Point
		inValues[i] = share.Data
	}

	return inPoints, inValues, nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shsecret/shsecret/pkg/secure"
)

func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestRunTransformShareAndRecover(t *testing.T) {
	// 3-of-4 sharing of a license-sized file, then recovery from every
	// 3-share subset.
	dir := t.TempDir()

	secret := []byte("Copyright notice and license text, repeated to span several blocks.\n")
	for i := 0; i < 6; i++ {
		secret = append(secret, secret...)
	}

	secretPath := writeTempFile(t, dir, "COPYING", secret)

	rand1, err := secure.SecureRandom(len(secret))
	require.NoError(t, err)
	rand2, err := secure.SecureRandom(len(secret))
	require.NoError(t, err)
	rand1Path := writeTempFile(t, dir, "rand1", rand1)
	rand2Path := writeTempFile(t, dir, "rand2", rand2)

	shareArgs := []string{
		"-" + secretPath,
		"1-" + rand1Path,
		"2-" + rand2Path,
	}
	sharePaths := make([]string, 4)
	for i := 0; i < 4; i++ {
		sharePaths[i] = filepath.Join(dir, fmt.Sprintf("share%d", i+1))
		shareArgs = append(shareArgs, fmt.Sprintf("%d+%s", i+1, sharePaths[i]))
	}

	require.NoError(t, runTransform(shareArgs, 0))

	// Output points 1 and 2 coincide with the random inputs.
	s1, err := os.ReadFile(sharePaths[0])
	require.NoError(t, err)
	assert.Equal(t, rand1, s1)
	s2, err := os.ReadFile(sharePaths[1])
	require.NoError(t, err)
	assert.Equal(t, rand2, s2)

	subsets := [][]int{
		{1, 2, 3},
		{1, 2, 4},
		{2, 3, 4},
		{1, 3, 4},
	}

	for _, subset := range subsets {
		recovered := filepath.Join(dir, fmt.Sprintf("recovered%d%d%d", subset[0], subset[1], subset[2]))
		args := make([]string, 0, 4)
		for _, point := range subset {
			args = append(args, fmt.Sprintf("%d-%s", point, sharePaths[point-1]))
		}
		args = append(args, "+"+recovered)

		require.NoError(t, runTransform(args, 0))

		got, err := os.ReadFile(recovered)
		require.NoError(t, err)
		assert.Equal(t, secret, got, "subset %v", subset)
	}
}

func TestRunTransformErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeTempFile(t, dir, "in", []byte("abcd"))
	short := writeTempFile(t, dir, "short", []byte("ab"))
	out := filepath.Join(dir, "out")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "bad syntax",
			args:    []string{"nosign"},
			wantErr: "bad argument syntax",
		},
		{
			name:    "point too large",
			args:    []string{"300-" + in, "+" + out},
			wantErr: "point value too large",
		},
		{
			name:    "duplicate input point",
			args:    []string{"1-" + in, "1-" + in, "+" + out},
			wantErr: "duplicate input point",
		},
		{
			name:    "missing input file",
			args:    []string{"-" + filepath.Join(dir, "absent"), "+" + out},
			wantErr: "failed to read input file",
		},
		{
			name:    "size mismatch",
			args:    []string{"1-" + in, "2-" + short, "+" + out},
			wantErr: "expected 4",
		},
		{
			name:    "no inputs",
			args:    []string{"+" + out},
			wantErr: "no input files",
		},
		{
			name:    "no outputs",
			args:    []string{"1-" + in},
			wantErr: "no output files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runTransform(tt.args, 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunTransformNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	in1 := writeTempFile(t, dir, "a", []byte("data"))
	in2 := writeTempFile(t, dir, "b", []byte("more"))

	missing := filepath.Join(dir, "no", "such", "dir", "out")
	err := runTransform([]string{"1-" + in1, "2-" + in2, "+" + missing}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write output file")
}

package sharestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shsecret/shsecret/pkg/crypto/sharing"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	shares, err := sharing.Split([]byte("archived secret"), sharing.Config{Parts: 4, Threshold: 3})
	require.NoError(t, err)

	return &Archive{
		Name:      "test",
		Threshold: 3,
		Parts:     4,
		Shares:    shares,
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shares.ssa")
	archive := testArchive(t)
	passphrase := []byte("correct horse battery staple")

	require.NoError(t, Save(path, archive, passphrase))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path, passphrase)
	require.NoError(t, err)
	assert.Equal(t, archive.Name, loaded.Name)
	assert.Equal(t, archive.Threshold, loaded.Threshold)
	assert.Equal(t, archive.Parts, loaded.Parts)
	assert.Equal(t, archive.Shares, loaded.Shares)
	assert.False(t, loaded.Created.IsZero())

	secret, err := sharing.Combine(loaded.Shares[:loaded.Threshold])
	require.NoError(t, err)
	assert.Equal(t, []byte("archived secret"), secret)
}

func TestLoadWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shares.ssa")
	require.NoError(t, Save(path, testArchive(t), []byte("right")))

	_, err := Load(path, []byte("wrong"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt")
}

func TestSaveValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shares.ssa")

	err := Save(path, testArchive(t), nil)
	assert.Error(t, err)

	err = Save(path, &Archive{Threshold: 2, Parts: 2}, []byte("pass"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no shares")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.ssa"), []byte("pass"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.ssa")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0600))
	_, err = Load(garbage, []byte("pass"))
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shares.ssa")
	require.NoError(t, Save(path, testArchive(t), []byte("pass")))

	require.NoError(t, Delete(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing file is not an error.
	assert.NoError(t, Delete(path))
}

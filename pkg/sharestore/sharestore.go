// Package sharestore persists a set of shares as a single passphrase-protected
// archive file: argon2id key derivation, ChaCha20-Poly1305 encryption, JSON
// envelope. An archive bundles shares with the threshold and metadata the
// scheme itself does not carry.
package sharestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/shsecret/shsecret/pkg/crypto/sharing"
	"github.com/shsecret/shsecret/pkg/secure"
)

const (
	saltSize = 32

	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// Archive is the decrypted payload of a share archive.
type Archive struct {
	Name      string            `json:"name,omitempty"`
	Threshold int               `json:"threshold"`
	Parts     int               `json:"parts"`
	Created   time.Time         `json:"created"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Shares    []sharing.Share   `json:"shares"`
}

// envelope is the on-disk form. Ciphertext covers the JSON-encoded Archive.
type envelope struct {
	Version    int    `json:"version"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

const envelopeVersion = 1

// Save writes archive to path, encrypted under passphrase. The file is
// written with 0600 permissions; parent directories are created as needed.
func Save(path string, archive *Archive, passphrase []byte) error {
	if len(passphrase) == 0 {
		return fmt.Errorf("passphrase cannot be empty")
	}
	if len(archive.Shares) == 0 {
		return fmt.Errorf("archive has no shares")
	}

	if archive.Created.IsZero() {
		archive.Created = time.Now().UTC()
	}

	plaintext, err := json.Marshal(archive)
	if err != nil {
		return fmt.Errorf("failed to marshal archive: %w", err)
	}
	defer secure.Zero(plaintext)

	salt, err := secure.SecureRandom(saltSize)
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
	defer secure.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce, err := secure.SecureRandom(aead.NonceSize())
	if err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	env := envelope{
		Version:    envelopeVersion,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}

// Load reads and decrypts the archive at path.
func Load(path string, passphrase []byte) (*Archive, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse archive: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported archive version %d", env.Version)
	}

	key := argon2.IDKey(passphrase, env.Salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
	defer secure.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt archive (wrong passphrase?): %w", err)
	}
	defer secure.Zero(plaintext)

	var archive Archive
	if err := json.Unmarshal(plaintext, &archive); err != nil {
		return nil, fmt.Errorf("failed to parse archive payload: %w", err)
	}

	return &archive, nil
}

// Delete overwrites the archive file with random data before removing it.
func Delete(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read archive for secure deletion: %w", err)
	}

	if len(data) > 0 {
		scrub, err := secure.SecureRandom(len(data))
		if err != nil {
			return fmt.Errorf("failed to generate overwrite data: %w", err)
		}
		if err := os.WriteFile(path, scrub, 0600); err != nil {
			return fmt.Errorf("failed to overwrite archive: %w", err)
		}
	}

	return os.Remove(path)
}

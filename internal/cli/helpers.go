package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/shsecret/shsecret/pkg/config"
	"github.com/shsecret/shsecret/pkg/secure"
)

// applyUIConfig applies persisted UI preferences before any colored output.
// Color stays off when already disabled by the environment (NO_COLOR, pipes).
func applyUIConfig() {
	if manager, err := config.NewManager(); err == nil {
		if !manager.Get().UI.UseColor {
			color.NoColor = true
		}
	}
}

// readPassphrase reads a passphrase from the terminal without echo, falling
// back to plain line input when stdin is not a terminal.
func readPassphrase(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		return pass, nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// readPassphraseConfirmed prompts twice and requires both entries to match.
func readPassphraseConfirmed() ([]byte, error) {
	pass, err := readPassphrase("Enter passphrase: ")
	if err != nil {
		return nil, err
	}
	if len(pass) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}

	confirm, err := readPassphrase("Confirm passphrase: ")
	if err != nil {
		secure.Zero(pass)
		return nil, err
	}
	if err := matchConfirmed(pass, confirm); err != nil {
		secure.Zero(pass)
		return nil, err
	}

	return pass, nil
}

// matchConfirmed checks the confirmation entry against the passphrase and
// zeroes the confirmation bytes either way.
func matchConfirmed(pass, confirm []byte) error {
	defer secure.Zero(confirm)
	if !secure.ConstantTimeCompare(pass, confirm) {
		return fmt.Errorf("passphrases do not match")
	}
	return nil
}

// readSecretData reads the secret from path, or from stdin when path is "-"
// or empty.
func readSecretData(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// shareBaseName derives the base for share file names from the secret's path.
func shareBaseName(inputPath string) string {
	if inputPath == "" || inputPath == "-" {
		return "secret"
	}
	return filepath.Base(inputPath)
}

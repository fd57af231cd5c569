package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"

	"stegohelix/internal/stego"
)

var errPassphraseMismatch = errors.New("passphrases do not match")

// promptFunc reads one secret line after showing prompt.
type promptFunc func(prompt string) ([]byte, error)

// passphraseReader resolves the passphrase from the environment first and
// falls back to prompting.
type passphraseReader struct {
	getenv func(string) string
	prompt promptFunc
}

var defaultPassphraseReader = passphraseReader{
	getenv: os.Getenv,
	prompt: readPassword,
}

func getPassphrase(prompt string) ([]byte, error) {
	return defaultPassphraseReader.read(prompt)
}

func getPassphraseWithConfirm(prompt, confirmPrompt string) ([]byte, error) {
	return defaultPassphraseReader.readConfirmed(prompt, confirmPrompt)
}

func (r passphraseReader) read(prompt string) ([]byte, error) {
	if env := r.getenv(PassphraseEnvVar); env != "" {
		return []byte(env), nil
	}
	return r.prompt(prompt)
}

// readConfirmed asks twice unless the environment supplies the passphrase.
func (r passphraseReader) readConfirmed(prompt, confirmPrompt string) ([]byte, error) {
	if env := r.getenv(PassphraseEnvVar); env != "" {
		return []byte(env), nil
	}

	passphrase, err := r.prompt(prompt)
	if err != nil {
		return nil, err
	}
	confirm, err := r.prompt(confirmPrompt)
	defer stego.Wipe(confirm)
	if err != nil {
		stego.Wipe(passphrase)
		return nil, err
	}

	if !bytes.Equal(passphrase, confirm) {
		stego.Wipe(passphrase)
		return nil, errPassphraseMismatch
	}
	return passphrase, nil
}

// readPassword reads without echo from stdin, or from /dev/tty when stdin
// is piped.
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			if runtime.GOOS == "windows" {
				return nil, fmt.Errorf("passphrase must be set via %s environment variable when STDIN is piped", PassphraseEnvVar)
			}
			return nil, fmt.Errorf("cannot read passphrase: STDIN is piped and /dev/tty is not available. Set %s environment variable", PassphraseEnvVar)
		}
		defer tty.Close()
		fd = int(tty.Fd())
	}

	return term.ReadPassword(fd)
}

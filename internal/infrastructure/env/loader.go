// Package env loads environment variables from dotenv files, including
// Ansible-Vault-encrypted ones, before any deployment phase runs.
package env

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sosedoff/ansible-vault-go"
	"golang.org/x/term"
)

// DecryptFunc decrypts Ansible Vault content with the given password.
type DecryptFunc func(content, password string) (string, error)

// PasswordPrompt asks the user for a vault password.
type PasswordPrompt func() (string, error)

// Loader loads environment files. Files with a .vault suffix are
// decrypted first; everything else goes straight through godotenv.
type Loader struct {
	decrypt DecryptFunc
	prompt  PasswordPrompt
}

// LoaderOption defines functional options for Loader.
type LoaderOption func(*Loader)

// WithDecrypt replaces the vault decryption function.
func WithDecrypt(decrypt DecryptFunc) LoaderOption {
	return func(l *Loader) {
		l.decrypt = decrypt
	}
}

// WithPasswordPrompt replaces the interactive password prompt.
func WithPasswordPrompt(prompt PasswordPrompt) LoaderOption {
	return func(l *Loader) {
		l.prompt = prompt
	}
}

// NewLoader creates a loader using ansible-vault-go and a hidden
// terminal prompt.
func NewLoader(opts ...LoaderOption) *Loader {
	loader := &Loader{
		decrypt: vault.Decrypt,
		prompt:  promptPassword,
	}

	for _, opt := range opts {
		opt(loader)
	}

	return loader
}

// Load loads environment variables from path. An empty path is a no-op.
func (l *Loader) Load(path, vaultPassword string) error {
	if path == "" {
		return nil
	}

	if strings.HasSuffix(path, ".vault") {
		return l.loadVaultFile(path, vaultPassword)
	}

	return godotenv.Load(path)
}

// loadVaultFile decrypts an Ansible Vault file and applies its variables
// without overriding ones already set in the process environment.
func (l *Loader) loadVaultFile(path, password string) error {
	if password == "" {
		var err error
		if password, err = l.prompt(); err != nil {
			return fmt.Errorf("failed to read vault password: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read vault file: %w", err)
	}

	plain, err := l.decrypt(string(data), password)
	if err != nil {
		return fmt.Errorf("vault decryption failed: %w", err)
	}

	vars, err := godotenv.Unmarshal(plain)
	if err != nil {
		return fmt.Errorf("failed to parse decrypted env content: %w", err)
	}

	for key, value := range vars {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Vault password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

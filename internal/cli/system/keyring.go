package system

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/keyring"
	"github.com/krishimitra/krishi/internal/storage/postgres"
)

// KeyringSetCmd stores a secret (connection string or API key) in the OS keyring
type KeyringSetCmd struct {
	Name  string `arg:"" enum:"connection-string,openweather,gemini,news" help:"Secret to store: connection-string, openweather, gemini or news."`
	Value string `arg:"" optional:"" help:"Secret value. Prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	user, ok := keyring.Secrets[cmd.Name]
	if !ok {
		return fmt.Errorf("unknown secret %q", cmd.Name)
	}

	value := cmd.Value
	if value == "" {
		if err := huh.NewInput().
			Title(fmt.Sprintf("Value for %s", cmd.Name)).
			EchoMode(huh.EchoModePassword).
			Value(&value).
			Run(); err != nil {
			return err
		}
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("secret value must not be empty")
	}

	if cmd.Name == "connection-string" {
		if !postgres.IsConnString(value) && !strings.Contains(value, "host=") {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := postgres.ValidateConnString(value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(user, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", cmd.Name, err)
	}
	fmt.Printf("✓ %s stored in OS keyring\n", cmd.Name)
	return nil
}

// KeyringDeleteCmd removes a secret from the OS keyring
type KeyringDeleteCmd struct {
	Name string `arg:"" enum:"connection-string,openweather,gemini,news" help:"Secret to delete."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	user, ok := keyring.Secrets[cmd.Name]
	if !ok {
		return fmt.Errorf("unknown secret %q", cmd.Name)
	}
	if err := keyring.Delete(user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", cmd.Name)
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", cmd.Name, err)
	}
	fmt.Printf("✓ %s deleted from OS keyring\n", cmd.Name)
	return nil
}

// KeyringStatusCmd reports keyring availability and which secrets are stored
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")

	names := make([]string, 0, len(keyring.Secrets))
	for name := range keyring.Secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := keyring.Get(keyring.Secrets[name]); err == nil {
			fmt.Printf("  ✓ %s stored\n", name)
		} else {
			fmt.Printf("  ℹ %s not stored\n", name)
		}
	}
	return nil
}

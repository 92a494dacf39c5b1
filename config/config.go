package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ladzaretti/vaultengine/vault"
	"github.com/ladzaretti/vaultengine/vaultcrypto"
)

// defaultVaultFilename is the vault file name used under the user's home
// directory when neither a CLI flag nor the config file names one.
const defaultVaultFilename = ".vault.vlt"

// Flags holds CLI overrides for configuration; zero values mean "not set".
type Flags struct {
	ConfigPath string
	VaultPath  string
}

// Resolved is the final, merged configuration: CLI flags take precedence
// over the config file, which takes precedence over built-in defaults.
type Resolved struct {
	VaultPath         string
	InactivityTimeout time.Duration
	Argon2Params      vaultcrypto.Argon2Params
}

// Resolve loads the config file named by flags.ConfigPath (or the default
// location) and merges it with flags into a [Resolved] configuration.
func Resolve(flags Flags) (*Resolved, error) {
	fc, err := LoadFileConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Argon2Params: vaultcrypto.DefaultArgon2Params,
	}

	if flags.VaultPath != "" {
		r.VaultPath = flags.VaultPath
	} else if fc.Vault.Path != "" {
		r.VaultPath = fc.Vault.Path
	} else {
		p, err := defaultVaultPath()
		if err != nil {
			return nil, err
		}

		r.VaultPath = p
	}

	r.InactivityTimeout = vault.DefaultInactivityTimeout

	if fc.Vault.InactivityTimeout != "" {
		d, err := time.ParseDuration(fc.Vault.InactivityTimeout)
		if err != nil {
			return nil, fmt.Errorf("config: invalid inactivity_timeout: %w", err)
		}

		r.InactivityTimeout = d
	}

	if fc.Vault.Argon2Memory > 0 {
		r.Argon2Params.Memory = fc.Vault.Argon2Memory
	}

	if fc.Vault.Argon2Time > 0 {
		r.Argon2Params.Time = fc.Vault.Argon2Time
	}

	if fc.Vault.Argon2Parallelism > 0 {
		r.Argon2Params.Parallelism = fc.Vault.Argon2Parallelism
	}

	return r, nil
}

func defaultVaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, defaultVaultFilename), nil
}

// Package config resolves the vault engine's on-disk settings: default
// vault path, session inactivity timeout, and the Argon2id parameters used
// for newly created vaults. CLI flags override the config file, which
// overrides built-in defaults.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// envConfigPathKey overrides the default config file location.
const envConfigPathKey = "VAULTENGINE_CONFIG_PATH"

// defaultConfigName is the config file looked up under the user's home
// directory when no explicit path is given.
const defaultConfigName = ".vaultengine.toml"

// ConfigError names the offending option alongside the underlying cause.
type ConfigError struct {
	Opt string
	Err error
}

func (e *ConfigError) Error() string {
	if len(e.Opt) == 0 {
		return "config: " + e.Err.Error()
	}

	return fmt.Sprintf("config: %s: %v", e.Opt, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FileConfig is the parsed structure of the TOML config file.
//
//nolint:tagalign
type FileConfig struct {
	Vault VaultConfig `toml:"vault" json:"vault"`

	path string // path the config was loaded from; empty if none was found.
}

// VaultConfig holds vault-related settings.
//
//nolint:tagalign,tagliatelle
type VaultConfig struct {
	Path               string `toml:"path,commented" comment:"Vault file path (default: '~/.vault.vlt' if not set)" json:"path,omitempty"`
	InactivityTimeout  string `toml:"inactivity_timeout,commented" comment:"How long a session may sit idle before being locked (default: '10m')" json:"inactivity_timeout,omitempty"`
	Argon2Memory       uint32 `toml:"argon2_memory_kib,commented" comment:"Argon2id memory cost in KiB for newly created vaults (default: 65536)" json:"argon2_memory_kib,omitempty"`
	Argon2Time         uint32 `toml:"argon2_time,commented" comment:"Argon2id time cost (iterations) for newly created vaults (default: 1)" json:"argon2_time,omitempty"`
	Argon2Parallelism  uint8  `toml:"argon2_parallelism,commented" comment:"Argon2id parallelism for newly created vaults (default: 4)" json:"argon2_parallelism,omitempty"`
}

func newFileConfig() *FileConfig {
	return &FileConfig{}
}

// Path returns the file path the config was loaded from, or "" if none was
// found and built-in defaults were used.
func (c *FileConfig) Path() string { return c.path }

// LoadFileConfig loads the config from path, or the default location if
// path is empty. A missing file at the default location is not an error —
// it falls back to an empty config resolved entirely from defaults.
func LoadFileConfig(path string) (*FileConfig, error) {
	defaultPath, err := defaultConfigPath()
	if err != nil {
		return nil, err
	}

	configPath := cmp.Or(path, defaultPath)

	c, err := parseFileConfig(configPath)
	if err != nil {
		if len(path) == 0 && errors.Is(err, fs.ErrNotExist) {
			c = newFileConfig()
		} else {
			return nil, err
		}
	} else {
		c.path = configPath
	}

	return c, c.validate()
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: user home dir: %w", err)
	}

	path := filepath.Join(home, defaultConfigName)
	if p, ok := os.LookupEnv(envConfigPathKey); ok {
		path = p
	}

	return path, nil
}

func parseFileConfig(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: stat file: %w", err)
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	c := newFileConfig()
	if err := toml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("config: parse file: %w", err)
	}

	return c, nil
}

func (c *FileConfig) validate() error {
	if c == nil {
		return &ConfigError{Err: errors.New("cannot validate a nil config")}
	}

	if c.Vault.Argon2Memory > 0 && c.Vault.Argon2Memory < 8*1024 {
		return &ConfigError{Opt: "vault.argon2_memory_kib", Err: errors.New("must be at least 8192 (8 MiB)")}
	}

	return nil
}

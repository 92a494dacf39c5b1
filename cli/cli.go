// Package cli wires the vault engine's operations onto a cobra command
// tree, using a three-phase Complete/Validate/Run shape for every command's
// options.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ladzaretti/vaultengine/config"
	"github.com/ladzaretti/vaultengine/genericclioptions"
	"github.com/ladzaretti/vaultengine/input"
	"github.com/ladzaretti/vaultengine/vault"
	"github.com/ladzaretti/vaultengine/vaulterrors"

	"github.com/spf13/cobra"
)

// commandsSkippingOpen lists command names that manage their own vault
// file lifecycle (or none at all) and must not trigger the root's
// automatic open-on-pre-run.
var commandsSkippingOpen = []string{"create", "generate-recovery-codes", "config"}

// EngineOptions owns the resolved configuration and the single [vault.Session]
// shared by whichever subcommand is running.
type EngineOptions struct {
	*genericclioptions.StdioOptions

	flags   config.Flags
	cfg     *config.Resolved
	session *vault.Session
}

func NewEngineOptions(stdio *genericclioptions.StdioOptions) *EngineOptions {
	return &EngineOptions{StdioOptions: stdio}
}

func (o *EngineOptions) resolveConfig() error {
	cfg, err := config.Resolve(o.flags)
	if err != nil {
		return err
	}

	o.cfg = cfg

	return nil
}

// openSession prompts for the vault password and opens the session used by
// every command that follows, for the lifetime of this process invocation.
func (o *EngineOptions) openSession() error {
	password, err := input.PromptReadSecure(o.Out, int(o.In.Fd()), "Password for vault at %q:", o.cfg.VaultPath)
	if err != nil {
		return fmt.Errorf("prompt password: %w", err)
	}

	s, err := vault.Open(o.cfg.VaultPath, password,
		vault.WithInactivityTimeout(o.cfg.InactivityTimeout),
		vault.WithArgon2Params(o.cfg.Argon2Params))
	clear(password)

	if err != nil {
		return err
	}

	o.session = s

	return nil
}

// NewDefaultCommand builds the `vaultengine` root command and every
// subcommand, bracketing each invocation with a single PersistentPreRunE/
// PersistentPostRun session open/lock pair.
func NewDefaultCommand(iostreams *genericclioptions.IOStreams, args []string) *cobra.Command {
	o := NewEngineOptions(&genericclioptions.StdioOptions{IOStreams: iostreams})

	cmd := &cobra.Command{
		Use:   "vaultengine",
		Short: "Encrypted single-file vault for arbitrary files",
		Long: `vaultengine stores arbitrary files inside a single password-protected,
authenticated-encryption container, alongside a searchable, audited manifest.

Environment Variables:
    VAULTENGINE_CONFIG_PATH: overrides the default config path: "~/.vaultengine.toml".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.resolveConfig(); err != nil {
				return err
			}

			if err := o.StdioOptions.Complete(); err != nil {
				return err
			}

			if skipsOpen(cmd.Name()) {
				return nil
			}

			return o.openSession()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if o.session == nil {
				return
			}

			o.session.Lock()
		},
	}

	cmd.SetArgs(args)

	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVarP(&o.flags.VaultPath, "file", "f", "", "vault file path (default: ~/.vault.vlt)")
	cmd.PersistentFlags().StringVarP(&o.flags.ConfigPath, "config", "", "", "configuration file path (default: ~/.vaultengine.toml)")

	cmd.AddCommand(NewCmdCreate(o))
	cmd.AddCommand(NewCmdList(o))
	cmd.AddCommand(NewCmdImport(o))
	cmd.AddCommand(NewCmdExport(o))
	cmd.AddCommand(NewCmdRemove(o))
	cmd.AddCommand(NewCmdGenerateRecoveryCodes(o))
	cmd.AddCommand(NewCmdConfig(o))

	return cmd
}

func skipsOpen(name string) bool {
	for _, n := range commandsSkippingOpen {
		if n == name {
			return true
		}
	}

	return false
}

var errVaultFileExists = errors.New("vault file path already exists")

func checkExistingVaultPath(path string) error {
	exists, err := pathExists(path)
	if err != nil {
		return err
	}

	if exists {
		return vaulterrors.New("create", vaulterrors.KindAlreadyExists, errVaultFileExists)
	}

	return nil
}

func pathExists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("stat vault file: %w", err)
	}

	return true, nil
}

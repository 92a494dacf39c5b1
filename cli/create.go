package cli

import (
	"fmt"
	"strings"

	"github.com/ladzaretti/vaultengine/clierror"
	"github.com/ladzaretti/vaultengine/genericclioptions"
	"github.com/ladzaretti/vaultengine/input"
	"github.com/ladzaretti/vaultengine/vault"
	"github.com/ladzaretti/vaultengine/vaulterrors"

	"github.com/spf13/cobra"
)

const masterPasswordMinLen = 8

// CreateOptions have the data required to perform the create operation.
type CreateOptions struct {
	*EngineOptions
}

var _ genericclioptions.CmdOptions = &CreateOptions{}

func NewCreateOptions(engine *EngineOptions) *CreateOptions {
	return &CreateOptions{EngineOptions: engine}
}

func (o *CreateOptions) Complete() error {
	return o.resolveConfig()
}

func (o *CreateOptions) Validate() error {
	if err := checkExistingVaultPath(o.cfg.VaultPath); err != nil {
		return err
	}

	if o.NonInteractive {
		return vaulterrors.ErrNonInteractiveUnsupported
	}

	return nil
}

func (o *CreateOptions) Run() error {
	password, err := input.PromptNewPassword(o.Out, int(o.In.Fd()), masterPasswordMinLen)
	if err != nil {
		return fmt.Errorf("read new password: %w", err)
	}

	s, codes, err := vault.Create(o.cfg.VaultPath, password,
		vault.WithInactivityTimeout(o.cfg.InactivityTimeout),
		vault.WithArgon2Params(o.cfg.Argon2Params))
	clear(password)

	if err != nil {
		return fmt.Errorf("create vault: %w", err)
	}

	s.Lock()

	o.Infof("New vault %q created at %q\n", s.VaultID, o.cfg.VaultPath)
	o.Infof("Recovery codes (write these down, they are shown only once):\n\n  %s\n\n", strings.Join(codes, "\n  "))

	return nil
}

// NewCmdCreate creates the create cobra command.
func NewCmdCreate(engine *EngineOptions) *cobra.Command {
	o := NewCreateOptions(engine)

	return &cobra.Command{
		Use:     "create",
		Aliases: []string{"new"},
		Short:   "Initialize a new vault",
		Long: `Create a new vault at the specified path.

If no --file path is provided, uses the default path (~/.vault.vlt).`,
		Run: func(_ *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(o))
		},
	}
}

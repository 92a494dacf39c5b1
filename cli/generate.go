package cli

import (
	"strings"

	"github.com/ladzaretti/vaultengine/clierror"
	"github.com/ladzaretti/vaultengine/genericclioptions"
	"github.com/ladzaretti/vaultengine/recovery"

	"github.com/spf13/cobra"
)

// GenerateRecoveryCodesOptions holds data required to run the command.
type GenerateRecoveryCodesOptions struct {
	*genericclioptions.StdioOptions
}

var _ genericclioptions.CmdOptions = &GenerateRecoveryCodesOptions{}

func NewGenerateRecoveryCodesOptions(stdio *genericclioptions.StdioOptions) *GenerateRecoveryCodesOptions {
	return &GenerateRecoveryCodesOptions{StdioOptions: stdio}
}

func (*GenerateRecoveryCodesOptions) Complete() error { return nil }

func (*GenerateRecoveryCodesOptions) Validate() error { return nil }

func (o *GenerateRecoveryCodesOptions) Run() error {
	codes, err := recovery.Generate()
	if err != nil {
		return err
	}

	o.Infof("%s\n", strings.Join(codes, "\n"))

	return nil
}

// NewCmdGenerateRecoveryCodes creates the generate-recovery-codes cobra command.
//
// This is a standalone utility: it does not touch any vault and is not the
// same as the codes printed once by `create` for a specific container.
func NewCmdGenerateRecoveryCodes(engine *EngineOptions) *cobra.Command {
	o := NewGenerateRecoveryCodesOptions(engine.StdioOptions)

	return &cobra.Command{
		Use:     "generate-recovery-codes",
		Aliases: []string{"gen"},
		Short:   "Print a fresh set of recovery-code-shaped strings",
		Long: `Print four groups of three NATO-style words, in the same format used for
a vault's one-time recovery codes.

This does not regenerate or attach to any existing vault's recovery codes —
those are fixed at creation time and shown only once by 'create'.`,
		Run: func(_ *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(o))
		},
	}
}

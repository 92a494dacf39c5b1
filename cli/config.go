package cli

import (
	"github.com/ladzaretti/vaultengine/clierror"
	"github.com/ladzaretti/vaultengine/config"
	"github.com/ladzaretti/vaultengine/genericclioptions"

	"github.com/spf13/cobra"
)

// ConfigOptions resolves and displays the active configuration.
type ConfigOptions struct {
	*EngineOptions
}

var _ genericclioptions.CmdOptions = &ConfigOptions{}

func NewConfigOptions(engine *EngineOptions) *ConfigOptions {
	return &ConfigOptions{EngineOptions: engine}
}

func (o *ConfigOptions) Complete() error {
	return o.resolveConfig()
}

func (*ConfigOptions) Validate() error { return nil }

func (o *ConfigOptions) Run() error {
	fc, err := config.LoadFileConfig(o.flags.ConfigPath)
	if err != nil {
		return err
	}

	if len(fc.Path()) == 0 {
		o.Infof("no config file found; using built-in defaults.\n")
	} else {
		o.Infof("config file: %s\n", fc.Path())
	}

	o.Infof("vault_path: %s\n", o.cfg.VaultPath)
	o.Infof("inactivity_timeout: %s\n", o.cfg.InactivityTimeout)
	o.Infof("argon2_memory_kib: %d\n", o.cfg.Argon2Params.Memory)
	o.Infof("argon2_time: %d\n", o.cfg.Argon2Params.Time)
	o.Infof("argon2_parallelism: %d\n", o.cfg.Argon2Params.Parallelism)

	return nil
}

// NewCmdConfig creates the config cobra command.
func NewCmdConfig(engine *EngineOptions) *cobra.Command {
	o := NewConfigOptions(engine)

	return &cobra.Command{
		Use:   "config",
		Short: "Resolve and display the active configuration",
		Long: `Resolve and display the active configuration.

If --config is not provided, the default path (~/.vaultengine.toml) is used.`,
		Run: func(_ *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(o))
		},
	}
}

package cli

import (
	"errors"

	"github.com/ladzaretti/vaultengine/clierror"
	"github.com/ladzaretti/vaultengine/genericclioptions"

	"github.com/spf13/cobra"
)

type ExportError struct {
	Err error
}

func (e *ExportError) Error() string { return "export: " + e.Err.Error() }

func (e *ExportError) Unwrap() error { return e.Err }

// ExportOptions holds data required to run the command.
type ExportOptions struct {
	*EngineOptions

	entryID string
	output  string
}

var _ genericclioptions.CmdOptions = &ExportOptions{}

func NewExportOptions(engine *EngineOptions) *ExportOptions {
	return &ExportOptions{EngineOptions: engine}
}

func (*ExportOptions) Complete() error { return nil }

func (o *ExportOptions) Validate() error {
	if len(o.entryID) == 0 {
		return &ExportError{errors.New("--id is required")}
	}

	if len(o.output) == 0 {
		return &ExportError{errors.New("--output is required")}
	}

	return nil
}

func (o *ExportOptions) Run() (retErr error) {
	defer func() {
		if retErr != nil {
			retErr = &ExportError{retErr}
		}
	}()

	if err := o.session.ExportFile(o.entryID, o.output); err != nil {
		return err
	}

	o.Infof("exported entry %s to %q\n", o.entryID, o.output)

	return nil
}

// NewCmdExport creates the export cobra command.
func NewCmdExport(engine *EngineOptions) *cobra.Command {
	o := NewExportOptions(engine)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Decrypt and export an entry to the filesystem",
		Long:  "Decrypt an entry's payload and write it to the given --output path.",
		Run: func(_ *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(o))
		},
	}

	cmd.Flags().StringVarP(&o.entryID, "id", "", "", "ID of the entry to export")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "destination path for the decrypted file")

	return cmd
}

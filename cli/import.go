package cli

import (
	"errors"
	"fmt"

	"github.com/ladzaretti/vaultengine/clierror"
	"github.com/ladzaretti/vaultengine/genericclioptions"
	"github.com/ladzaretti/vaultengine/util"

	"github.com/spf13/cobra"
)

type ImportError struct {
	Err error
}

func (e *ImportError) Error() string { return "import: " + e.Err.Error() }

func (e *ImportError) Unwrap() error { return e.Err }

// ImportOptions holds data required to run the command.
type ImportOptions struct {
	*EngineOptions

	sourcePath  string
	tags        string
	deleteAfter bool
}

var _ genericclioptions.CmdOptions = &ImportOptions{}

func NewImportOptions(engine *EngineOptions) *ImportOptions {
	return &ImportOptions{EngineOptions: engine}
}

func (*ImportOptions) Complete() error { return nil }

func (o *ImportOptions) Validate() error {
	if len(o.sourcePath) == 0 {
		return &ImportError{errors.New("no source file path provided")}
	}

	return nil
}

func (o *ImportOptions) Run() (retErr error) {
	defer func() {
		if retErr != nil {
			retErr = &ImportError{retErr}
		}
	}()

	id, err := o.session.ImportFile(o.sourcePath, util.ParseCommaSeparated(o.tags), o.deleteAfter)
	if err != nil {
		return err
	}

	o.Infof("imported %q as entry %s\n", o.sourcePath, id)

	return nil
}

// NewCmdImport creates the import cobra command.
func NewCmdImport(engine *EngineOptions) *cobra.Command {
	o := NewImportOptions(engine)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a file into the vault",
		Args:  cobra.ExactArgs(1),
		Long: `Import a file into the vault. The file is read, encrypted, and stored
as a manifest entry; the manifest is persisted atomically.`,
		Example: `  # Import a file with tags
  vaultengine import contract.pdf --tags legal,2026

  # Import and remove the original afterward
  vaultengine import secret.key --delete-source`,
		Run: func(_ *cobra.Command, args []string) {
			o.sourcePath = args[0]
			clierror.Check(genericclioptions.ExecuteCommand(o))
		},
	}

	cmd.Flags().StringVarP(&o.tags, "tags", "t", "", "comma-separated tags to attach to the entry")
	cmd.Flags().BoolVarP(&o.deleteAfter, "delete-source", "", false, "delete the source file after a successful import")

	return cmd
}

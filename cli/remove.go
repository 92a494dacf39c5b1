package cli

import (
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/ladzaretti/vaultengine/clierror"
	"github.com/ladzaretti/vaultengine/genericclioptions"
	"github.com/ladzaretti/vaultengine/input"

	"github.com/spf13/cobra"
)

type RemoveError struct {
	Err error
}

func (e *RemoveError) Error() string { return "remove: " + e.Err.Error() }

func (e *RemoveError) Unwrap() error { return e.Err }

// RemoveOptions holds data required to run the command.
type RemoveOptions struct {
	*EngineOptions

	entryID   string
	assumeYes bool
}

var _ genericclioptions.CmdOptions = &RemoveOptions{}

func NewRemoveOptions(engine *EngineOptions) *RemoveOptions {
	return &RemoveOptions{EngineOptions: engine}
}

func (*RemoveOptions) Complete() error { return nil }

func (o *RemoveOptions) Validate() error {
	if len(o.entryID) == 0 {
		return &RemoveError{errors.New("--id is required")}
	}

	return nil
}

func (o *RemoveOptions) Run() error {
	if !o.assumeYes {
		yes, err := confirm(o.Out, o.In, "Delete entry %s? (y/N): ", o.entryID)
		if err != nil {
			return &RemoveError{err}
		}

		if !yes {
			return nil
		}
	}

	if err := o.session.DeleteEntry(o.entryID); err != nil {
		return &RemoveError{err}
	}

	o.Infof("deleted entry %s\n", o.entryID)

	return nil
}

func confirm(w io.Writer, r io.Reader, prompt string, a ...any) (bool, error) {
	response, err := input.PromptRead(w, r, prompt, a...)
	if err != nil {
		return false, err
	}

	normalized := strings.ToLower(strings.TrimSpace(response))

	return slices.Contains([]string{"y", "yes"}, normalized), nil
}

// NewCmdRemove creates the remove cobra command.
func NewCmdRemove(engine *EngineOptions) *cobra.Command {
	o := NewRemoveOptions(engine)

	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove an entry from the vault",
		Long:    "Remove an entry from the vault by ID, appending an audit record when the entry is deleted.",
		Run: func(_ *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(o))
		},
	}

	cmd.Flags().StringVarP(&o.entryID, "id", "", "", "ID of the entry to remove")
	cmd.Flags().BoolVarP(&o.assumeYes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

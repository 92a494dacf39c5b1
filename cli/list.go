package cli

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/ladzaretti/vaultengine/clierror"
	"github.com/ladzaretti/vaultengine/genericclioptions"
	"github.com/ladzaretti/vaultengine/manifest"
	"github.com/ladzaretti/vaultengine/vaulterrors"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// ListOptions holds data required to run the command.
type ListOptions struct {
	*EngineOptions

	filter *genericclioptions.EntryFilterOptions
}

var _ genericclioptions.CmdOptions = &ListOptions{}

func NewListOptions(engine *EngineOptions) *ListOptions {
	return &ListOptions{
		EngineOptions: engine,
		filter:        &genericclioptions.EntryFilterOptions{},
	}
}

func (o *ListOptions) Complete() error {
	return o.filter.Complete()
}

func (o *ListOptions) Validate() error {
	return o.filter.Validate()
}

func (o *ListOptions) Run() error {
	entries, err := o.session.ListEntries()
	if err != nil {
		return err
	}

	entries = filterEntries(entries, o.filter)

	if len(entries) == 0 && (len(o.filter.ID) > 0 || len(o.filter.Tags) > 0) {
		return vaulterrors.ErrSearchNoMatch
	}

	slices.SortFunc(entries, func(a, b manifest.Entry) int {
		return a.ImportedAt.Compare(b.ImportedAt)
	})

	printEntryTable(o.Out, entries)

	return nil
}

func filterEntries(entries []manifest.Entry, filter *genericclioptions.EntryFilterOptions) []manifest.Entry {
	if len(filter.ID) == 0 && len(filter.Tags) == 0 {
		return entries
	}

	out := entries[:0:0]

	for _, e := range entries {
		if len(filter.ID) > 0 && e.ID != filter.ID {
			continue
		}

		if len(filter.Tags) > 0 && !anyTagMatches(e.Tags, filter.Tags) {
			continue
		}

		out = append(out, e)
	}

	return out
}

func anyTagMatches(entryTags, want []string) bool {
	for _, w := range want {
		if slices.Contains(entryTags, w) {
			return true
		}
	}

	return false
}

func printEntryTable(w interface{ Write([]byte) (int, error) }, entries []manifest.Entry) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tFILENAME\tSIZE\tTAGS\tIMPORTED")

	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Filename, humanize.Bytes(uint64(e.FileSize)), //nolint:gosec
			joinOr(e.Tags, "-"), e.ImportedAt.Format("2006-01-02 15:04"))
	}
}

func joinOr(tags []string, def string) string {
	if len(tags) == 0 {
		return def
	}

	out := tags[0]
	for _, t := range tags[1:] {
		out += "," + t
	}

	return out
}

// NewCmdList creates the list cobra command.
func NewCmdList(engine *EngineOptions) *cobra.Command {
	o := NewListOptions(engine)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "find"},
		Short:   "List entries stored in the vault",
		Long: `List entries stored in the vault, with an optional --id or --tag filter.

Multiple --tag flags are logically ORed.`,
		Run: func(_ *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(o))
		},
	}

	cmd.Flags().StringVarP(&o.filter.ID, "id", "", "", o.filter.Usage(genericclioptions.ENTRYID))
	cmd.Flags().StringSliceVarP(&o.filter.Tags, "tag", "", nil, o.filter.Usage(genericclioptions.TAGS))

	return cmd
}

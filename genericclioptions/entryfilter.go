package genericclioptions

// EntryFilterOptions defines common filtering options for CLI commands that
// operate on vault entries.
type EntryFilterOptions struct {
	ID   string
	Tags []string
}

type Usage int

const (
	_ Usage = iota
	ENTRYID
	TAGS
)

var usage = map[Usage]string{
	ENTRYID: "select the entry by its ID",
	TAGS:    "filter by tag (comma-separated or repeated)",
}

var _ BaseOptions = &EntryFilterOptions{}

func (*EntryFilterOptions) Usage(field Usage) string {
	if u, ok := usage[field]; ok {
		return u
	}

	return "unknown usage"
}

func (*EntryFilterOptions) Complete() error {
	return nil
}

func (*EntryFilterOptions) Validate() error {
	return nil
}

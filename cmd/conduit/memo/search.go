package memocmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conduithq/conduit/pkg/cliui"
	"github.com/conduithq/conduit/pkg/config"
	"github.com/conduithq/conduit/pkg/memory"
)

const searchLongDesc string = `Search memories.

Matches the query as a case-insensitive substring against titles,
content, and tags. Use --tag for an exact tag match instead of a
text query.

Examples:
  conduit memo search shopping
  conduit memo search "pasta carbonara"
  conduit memo search --tag work`

const searchShortDesc string = "Search memories"

type searchCommander struct {
	tag       string
	storePath string
}

func newSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			if query == "" && cmder.tag == "" {
				return errors.New("a query or --tag is required")
			}
			return cmder.run(cmd, query)
		},
	}

	cmd.Flags().StringVar(&cmder.tag, "tag", "", "Match memories carrying exactly this tag")
	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)

	return cmd
}

func (c *searchCommander) run(cmd *cobra.Command, query string) error {
	store, err := resolveStore(cmd)
	if err != nil {
		return err
	}

	var results []memory.Memory
	if c.tag != "" {
		results, err = store.SearchByTag(c.tag)
	} else {
		results, err = store.Search(query)
	}
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No matches."))
		return nil
	}

	fmt.Println()
	for _, m := range results {
		printMemoryLine(m)
	}
	fmt.Println()

	return nil
}

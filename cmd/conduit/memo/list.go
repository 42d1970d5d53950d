package memocmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduithq/conduit/pkg/cliui"
	"github.com/conduithq/conduit/pkg/config"
	"github.com/conduithq/conduit/pkg/memory"
	"github.com/conduithq/conduit/pkg/utils"
)

const listLongDesc string = `List all memories.

Shows every memory in the store with its id, tags, and last update
time. Files that cannot be decoded are skipped; run with --verbose to
see a report of recovered and skipped files.

Examples:
  conduit memo list
  conduit memo list --verbose`

const listShortDesc string = "List all memories"

type listCommander struct {
	verbose   bool
	storePath string
}

func newListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().BoolVarP(&cmder.verbose, "verbose", "v", false, "Report recovered and skipped files")
	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)

	return cmd
}

func (c *listCommander) run(cmd *cobra.Command) error {
	store, err := resolveStore(cmd)
	if err != nil {
		return err
	}

	memories, diags, err := store.ListDiagnostics()
	if err != nil {
		return err
	}

	if len(memories) == 0 {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No memories yet. Create one with: conduit memo new"))
		return nil
	}

	fmt.Println()
	for _, m := range memories {
		printMemoryLine(m)
	}
	fmt.Println()

	if c.verbose && len(diags) > 0 {
		for _, d := range diags {
			if d.Recovered {
				fmt.Printf("  %s recovered %s %s\n",
					cliui.SuccessMark,
					d.File,
					cliui.DimStyle.Render(d.Reason),
				)
			} else {
				fmt.Printf("  %s skipped %s %s\n",
					cliui.FailMark,
					d.File,
					cliui.DimStyle.Render(d.Reason),
				)
			}
		}
		fmt.Println()
	}

	return nil
}

func printMemoryLine(m memory.Memory) {
	line := fmt.Sprintf("  %s  %s",
		cliui.TitleStyle.Render(m.Title),
		cliui.DimStyle.Render(m.ID),
	)
	if len(m.Tags) > 0 {
		line += "  " + cliui.TagStyle.Render(strings.Join(m.Tags, ", "))
	}
	fmt.Println(line)

	preview := strings.ReplaceAll(m.Content, "\n", " ")
	preview = utils.Truncate(preview, 70)
	if preview != "" {
		fmt.Printf("    %s\n", cliui.ValueStyle.Render(preview))
	}
	fmt.Printf("    %s\n", cliui.DimStyle.Render("updated "+cliui.RelativeTime(m.UpdatedAt)))
}

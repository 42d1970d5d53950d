package memocmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduithq/conduit/pkg/cliui"
	"github.com/conduithq/conduit/pkg/config"
	"github.com/conduithq/conduit/pkg/memory"
)

const showLongDesc string = `Show a single memory.

Renders the memory body as markdown for the terminal. Use --raw to
print the exact on-disk document instead, frontmatter included.

Examples:
  conduit memo show 7c9a1f0e-3b2d-4c5e-8f6a-1b2c3d4e5f60
  conduit memo show 7c9a1f0e-3b2d-4c5e-8f6a-1b2c3d4e5f60 --raw`

const showShortDesc string = "Show a single memory"

type showCommander struct {
	raw       bool
	storePath string
}

func newShowCmd() *cobra.Command {
	cmder := &showCommander{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: showShortDesc,
		Long:  showLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print the on-disk document instead of rendering it")
	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)

	return cmd
}

func (c *showCommander) run(cmd *cobra.Command, id string) error {
	store, err := resolveStore(cmd)
	if err != nil {
		return err
	}

	m, err := store.Get(id)
	if err != nil {
		return err
	}

	if c.raw {
		fmt.Print(memory.EncodeMarkdown(m))
		return nil
	}

	fmt.Printf("\n  %s  %s\n",
		cliui.TitleStyle.Render(m.Title),
		cliui.DimStyle.Render(m.ID),
	)
	if len(m.Tags) > 0 {
		fmt.Printf("  %s\n", cliui.TagStyle.Render(strings.Join(m.Tags, ", ")))
	}
	fmt.Printf("  %s\n",
		cliui.DimStyle.Render(fmt.Sprintf("updated %s", cliui.RelativeTime(m.UpdatedAt))),
	)

	rendered, err := cliui.RenderMarkdown(m.Content)
	if err != nil {
		// Fall back to the unrendered body.
		fmt.Printf("\n%s\n", m.Content)
		return nil
	}

	fmt.Println(rendered)
	return nil
}

package memocmder

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduithq/conduit/pkg/cliui"
	"github.com/conduithq/conduit/pkg/config"
	"github.com/conduithq/conduit/pkg/memory"
)

const newLongDesc string = `Create a new memory.

The memory body comes from --content, or from stdin when --content is
not given. Tags are optional and comma-separated.

Examples:
  conduit memo new "Shopping List" --content "milk and eggs"
  conduit memo new "Meeting Notes" --tags work,planning < notes.md
  echo "pasta carbonara" | conduit memo new "Recipes" --tags food`

const newShortDesc string = "Create a new memory"

type newCommander struct {
	content   string
	tags      []string
	storePath string
}

func newNewCmd() *cobra.Command {
	cmder := &newCommander{}

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: newShortDesc,
		Long:  newLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.content, "content", "c", "", "Memory body (reads stdin when omitted)")
	cmd.Flags().StringSliceVarP(&cmder.tags, "tags", "t", nil, "Comma-separated tags")
	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)

	return cmd
}

func (c *newCommander) run(cmd *cobra.Command, title string) error {
	store, err := resolveStore(cmd)
	if err != nil {
		return err
	}

	content := c.content
	if content == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		content = strings.TrimRight(string(data), "\n")
	}

	m := memory.New(title, content, c.tags)
	if err := store.Save(m); err != nil {
		return err
	}

	fmt.Printf("\n  %s Created %s %s\n\n",
		cliui.SuccessMark,
		cliui.TitleStyle.Render(m.Title),
		cliui.DimStyle.Render(m.ID),
	)

	return nil
}

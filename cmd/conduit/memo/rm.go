package memocmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conduithq/conduit/pkg/cliui"
	"github.com/conduithq/conduit/pkg/config"
	"github.com/conduithq/conduit/pkg/memory"
)

const rmLongDesc string = `Delete a memory.

Removes the memory's file from the store. There is no undo; the file
is gone once deleted.

Examples:
  conduit memo rm 7c9a1f0e-3b2d-4c5e-8f6a-1b2c3d4e5f60`

const rmShortDesc string = "Delete a memory"

type rmCommander struct {
	storePath string
}

func newRmCmd() *cobra.Command {
	cmder := &rmCommander{}

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: rmShortDesc,
		Long:  rmLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)

	return cmd
}

func (c *rmCommander) run(cmd *cobra.Command, id string) error {
	store, err := resolveStore(cmd)
	if err != nil {
		return err
	}

	if err := store.Delete(id); err != nil {
		var notFound memory.NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("no memory with id %s", id)
		}
		return err
	}

	fmt.Printf("\n  %s Deleted %s\n\n",
		cliui.SuccessMark,
		cliui.DimStyle.Render(id),
	)

	return nil
}

// Package memocmder provides the memo commands for managing memories from
// the terminal.
package memocmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conduithq/conduit/pkg/config"
	"github.com/conduithq/conduit/pkg/dotdir"
	"github.com/conduithq/conduit/pkg/logger"
	"github.com/conduithq/conduit/pkg/memory"
)

const memoLongDesc string = `Manage memories.

Memories are markdown files with frontmatter stored in the memories/
directory under .conduit/ (or wherever storage.path points). The files
are the source of truth: anything that edits them (an editor, a sync
tool, another conduit process) is a valid writer.

Use subcommands to create, inspect, and search memories:
  conduit memo new <title>        Create a memory
  conduit memo show <id>          Show one memory
  conduit memo list               List all memories
  conduit memo search <query>     Search memories
  conduit memo rm <id>            Delete a memory

Examples:
  conduit memo new "Shopping List" --content "milk and eggs" --tags errands
  conduit memo search shopping
  conduit memo search --tag work`

const memoShortDesc string = "Manage memories"

func NewMemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memo",
		Short: memoShortDesc,
		Long:  memoLongDesc,
	}

	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}

// resolveStore opens the memory store with the same precedence chain the
// server uses: --store flag > CONDUIT_STORAGE_PATH > config file > the
// memories/ directory under .conduit/.
func resolveStore(cmd *cobra.Command) (*memory.Store, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagStore})

	path := v.GetString("storage.path")
	if path == "" {
		ddm := dotdir.NewManager()
		path, err = ddm.MemoriesDir(configDir)
		if err != nil {
			return nil, fmt.Errorf("resolving memories directory: %w", err)
		}
	}

	debug, _ := cmd.Flags().GetBool("debug")

	store, err := memory.NewStore(path, logger.New(logger.WithDebug(debug)))
	if err != nil {
		return nil, fmt.Errorf("opening memory store: %w", err)
	}

	return store, nil
}

// Package conduitcmder
package conduitcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/conduithq/conduit/cmd/conduit/config"
	memocmder "github.com/conduithq/conduit/cmd/conduit/memo"
	servecmder "github.com/conduithq/conduit/cmd/conduit/serve"
	versioncmder "github.com/conduithq/conduit/cmd/version"
)

const conduitLongDesc string = `Conduit is a local-first memory layer for your agents.

Memories are plain markdown files with frontmatter, stored in a
directory you own. Nothing leaves your machine.

Run the server using:
  conduit serve        Run the API and MCP server

Manage memories using:
  conduit memo new     Create a memory
  conduit memo list    List all memories
  conduit memo search  Search memories`

const conduitShortDesc string = "Conduit - Agent Memory"

func NewConduitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conduit",
		Short: conduitShortDesc,
		Long:  conduitLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .conduit directory location")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(memocmder.NewMemoCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}

// Package configcmder provides the config command for managing persistent
// conduit configuration stored in the .conduit/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent conduit configuration.

Configuration is stored as config.toml in the .conduit/ directory and
provides default values for command flags. CLI flags always take
precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  storage.path, api.listen, client.api_target,
  chat.model, embedding.model, embedding.dimensions

Use subcommands to get, set, or list configuration values:
  conduit config set <key> <value>    Set a configuration value
  conduit config get <key>            Get a configuration value
  conduit config list                 List all configuration values

Examples:
  conduit config set api.listen :8090
  conduit config set storage.path ~/notes/memories
  conduit config get api.listen
  conduit config list`

const configShortDesc string = "Manage persistent conduit configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

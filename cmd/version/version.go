// Package versioncmder
package versioncmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conduithq/conduit/pkg/cliui"
	"github.com/conduithq/conduit/pkg/utils"
)

type VersionCommander struct{}

func NewVersionCmd() *cobra.Command {
	cmder := &VersionCommander{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "displays version",
		Long:  "displays the conduit version and build information",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	return cmd
}

func (c *VersionCommander) run() error {
	fmt.Printf("%s %s\n", cliui.TitleStyle.Render("conduit"), utils.Version)
	fmt.Printf("%s %s\n", cliui.KeyStyle.Render("commit:"), utils.Sha)
	fmt.Printf("%s %s\n", cliui.KeyStyle.Render("built:"), utils.Buildtime)
	return nil
}

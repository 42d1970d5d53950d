package main

import (
	"os"

	conduitcmder "github.com/conduithq/conduit/cmd/conduit"
)

func main() {
	cmd := conduitcmder.NewConduitCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the dsfr CLI tool.
package main

import (
	"os"

	"github.com/aydenstechdungeon/dsfr/cli"
)

func main() {
	printer := cli.NewColorPrinter()
	if err := cli.NewRootCommand(printer).Execute(); err != nil {
		printer.Error("%v", err)
		os.Exit(1)
	}
}

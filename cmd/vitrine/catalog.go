package main

import (
	"github.com/spf13/cobra"

	vitrine "github.com/vitrinehq/vitrine"
	"github.com/vitrinehq/vitrine/internal/cli"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List registered experiences, behaviours, transitions and decorators",
	Run: func(cmd *cobra.Command, args []string) {
		cli.PrintCatalog(vitrine.New())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

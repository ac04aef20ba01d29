package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	vitrine "github.com/vitrinehq/vitrine"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vitrine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vitrine version %s\n", strings.TrimSpace(vitrine.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vitrine "github.com/vitrinehq/vitrine"
	"github.com/vitrinehq/vitrine/internal/config"
	"github.com/vitrinehq/vitrine/internal/presentation/graph"
	"github.com/vitrinehq/vitrine/pkg/experience"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [config]",
	Short: "Export the resolved experience as a Mermaid diagram",
	Long: `Resolves the configuration stack and outputs a Mermaid diagram
(graph TD) of the effective experience: sections, behaviour stacks and
the page transition.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		if len(args) > 0 {
			path = args[0]
		}
		page, _ := cmd.Flags().GetString("page")

		var in experience.Inputs
		if path != "" {
			file, err := config.Load(path)
			if err != nil {
				fmt.Printf("Error loading configuration: %v\n", err)
				os.Exit(1)
			}
			in.Site = file.Site
			if page != "" {
				in.Page = file.Page(page)
			}
		}

		engine := vitrine.New()
		resolved := engine.Composer().Resolve(context.Background(), in)
		fmt.Print(graph.GenerateMermaid(resolved))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("page", "", "Page slug to resolve from the configuration file")
}

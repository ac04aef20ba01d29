package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitrinehq/vitrine/internal/cli"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an experience headlessly against a scripted signal sweep",
	Long: `Activates the resolved experience without a browser, sweeps scroll
and pointer signals across the page, and prints the CSS variables each
section would receive. Useful for inspecting what a configuration
actually produces.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		page, _ := cmd.Flags().GetString("page")
		exp, _ := cmd.Flags().GetString("experience")
		trans, _ := cmd.Flags().GetString("transition")
		steps, _ := cmd.Flags().GetInt("steps")
		reduced, _ := cmd.Flags().GetBool("reduced-motion")

		ctx, stop := cli.NewSignalContext(context.Background())
		defer stop()

		err := cli.RunSimulation(ctx, cli.SimulateOptions{
			ConfigPath:    cfgPath,
			Page:          page,
			Experience:    exp,
			Transition:    trans,
			Steps:         steps,
			ReducedMotion: reduced,
			Out:           os.Stdout,
			Logger:        cli.NewLogger(debug),
		})
		if err != nil {
			fmt.Printf("Simulation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().String("page", "", "Page slug to resolve from the configuration file")
	simulateCmd.Flags().String("experience", "", "Dev override: experience ID")
	simulateCmd.Flags().String("transition", "", "Dev override: transition ID")
	simulateCmd.Flags().Int("steps", 10, "Number of scroll positions in the sweep")
	simulateCmd.Flags().Bool("reduced-motion", false, "Script the reduced-motion preference")
}

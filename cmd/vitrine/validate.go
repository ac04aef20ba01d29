package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	vitrine "github.com/vitrinehq/vitrine"
	"github.com/vitrinehq/vitrine/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Strictly check a configuration against the registries",
	Long: `Loads the configuration file and verifies that every referenced
experience, transition and behaviour is registered and that all options
satisfy their settings schemas. Unknown references that would silently
fall back at runtime are reported as errors here.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			fmt.Println("No configuration file given. Use --config or pass a path.")
			os.Exit(1)
		}

		if err := runValidate(path); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	file, err := config.Load(path)
	if err != nil {
		return err
	}

	engine := vitrine.New()

	var failures []string
	for _, err := range engine.ValidateConfig(file.Site) {
		failures = append(failures, fmt.Sprintf("site: %v", err))
	}

	slugs := make([]string, 0, len(file.Pages))
	for slug := range file.Pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		for _, err := range engine.ValidateConfig(file.Pages[slug]) {
			failures = append(failures, fmt.Sprintf("page %q: %v", slug, err))
		}
	}

	if len(failures) > 0 {
		for _, f := range failures {
			fmt.Println("  -", f)
		}
		return fmt.Errorf("%d invalid reference(s)", len(failures))
	}
	return nil
}

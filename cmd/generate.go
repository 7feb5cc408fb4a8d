package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio-gallery/internal/adapters/config"
)

var generateCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Generate an example configuration file",
	Long: `Generate an example configuration file with default values.
This will create a config.json file in the current directory (or the path
given with --config; a .yaml/.yml extension writes YAML) that you can
customize with your GitHub username and server settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configRepo := config.NewRepository()

		configPath := "config.json"
		if configFile != "" {
			configPath = configFile
		}

		if err := configRepo.GenerateExampleConfig(configPath); err != nil {
			return fmt.Errorf("error generating config file: %w", err)
		}

		fmt.Printf("✅ Example config file generated: %s\n", configPath)
		fmt.Println("Please edit the file with your GitHub username and set GITHUB_TOKEN to enable pinned repositories")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

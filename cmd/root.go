package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-gallery/internal/adapters/output"
	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

var (
	configFile string
	envFile    string
	githubUser string
	logLevel   string

	roleFilter       string
	yearFilter       string
	difficultyFilter string
	queryFilter      string
	sortMode         string
	noGitHub         bool
	outputFormat     string
	outputFile       string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-gallery",
	Short: "Aggregate, filter and sort a portfolio's project gallery",
	Long: `Portfolio Gallery merges a fixed local project catalog with a user's
GitHub repositories and prints the filtered, sorted result.

Features:
- GitHub import: pinned repositories, falling back to the top starred ones
- Difficulty labels derived from star counts (Easy < 50 <= Medium < 200 <= Hard)
- Filters: role, year, difficulty and free-text query
- Sorting: Most starred (default), Newest, Oldest, A-Z
- Markdown or JSON output; "serve" exposes the same data over HTTP`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file path (default: config.json, config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading configuration")
	rootCmd.PersistentFlags().StringVarP(&githubUser, "user", "u", "", "GitHub username (overrides GH_USERNAME and config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().StringVarP(&roleFilter, "role", "r", entity.AllOption, "Role filter: All, Owner, Contributor, Student, Freelance")
	rootCmd.Flags().StringVarP(&yearFilter, "year", "y", entity.AllOption, "Year filter: All or a year")
	rootCmd.Flags().StringVarP(&difficultyFilter, "difficulty", "d", entity.AllOption, "Difficulty filter: All, Easy, Medium, Hard")
	rootCmd.Flags().StringVarP(&queryFilter, "query", "q", "", "Case-insensitive text filter on title, description and tags")
	rootCmd.Flags().StringVarP(&sortMode, "sort", "s", string(entity.SortMostStarred), `Sort: "Most starred", Newest, Oldest, A-Z`)
	rootCmd.Flags().BoolVar(&noGitHub, "no-github", false, "Show local projects only")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: markdown or json (overrides config)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: stdout)")
}

func runList(ctx context.Context) error {
	sel, err := entity.ParseSelection(roleFilter, yearFilter, difficultyFilter, queryFilter, sortMode)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if noGitHub {
		a.gallery.SetIncludeRemote(false)
	}

	if a.gallery.IncludeRemote() {
		a.logger.Info("Fetching GitHub projects", zap.String("user", a.config.GitHub.Username))
		a.gallery.Load(ctx)
		if err := a.gallery.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for GitHub projects: %w", err)
		}
	}

	view := a.gallery.View(sel)

	format := ports.OutputFormat(a.config.Output.Format)
	if outputFormat != "" {
		format = ports.OutputFormat(outputFormat)
	}

	writer := output.NewWriterWithConfig(a.config)

	target := outputFile
	if target == "" {
		target = a.config.Output.File
	}
	if target == "" {
		return writer.Write(os.Stdout, view, format)
	}

	if err := writer.WriteFile(view, format, target); err != nil {
		return fmt.Errorf("error generating report: %w", err)
	}
	fmt.Printf("✅ %d projects written to %s\n", len(view.Entries), target)
	return nil
}

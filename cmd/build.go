package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/DimitrijeDobrota/startgit/internal/config"
	"github.com/DimitrijeDobrota/startgit/internal/logging"
	"github.com/DimitrijeDobrota/startgit/internal/site"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var exportFile string

var buildCmd = &cobra.Command{
	Use:   "build [flags] <repository>...",
	Short: "Render pages for one or more repositories",
	Long: `Render every local branch of each repository into
<output>/<repository>/<branch>/.

Commit pages that already exist are kept, and the log, file and feed pages are
only rendered again when at least one new commit page was written. Use --force
to render everything.

Examples:
  startgit build -o /var/www/git ~/src/project.git
  startgit build -b https://git.example.com -s README.md,LICENSE.md repo1 repo2
  startgit build --export results.json ~/git/*.git`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	def := config.Default()

	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringSliceP(config.KeySpecial, "s", def.Special, "comma separated files to be rendered to html")
	buildCmd.Flags().String(config.KeyStyle, def.HighlightStyle, "syntax highlighting style of file pages")
	buildCmd.Flags().Int(config.KeyDiffstatWidth, def.DiffstatWidth, "columns of the diffstat bars")
	buildCmd.Flags().StringVar(&exportFile, "export", "", "Export build results to JSON file: --export <filename>")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.Verbose)

	paths := existingPaths(args, logger)
	if len(paths) == 0 {
		return errors.New("no repository provided")
	}

	builder, err := site.NewBuilder(cfg, logger)
	if err != nil {
		return err
	}

	results, err := builder.Run(paths)

	if exportFile != "" {
		if exportErr := handleExport(cmd, results, exportFile); exportErr != nil {
			return errors.Join(err, exportErr)
		}
		return err
	}

	printResults(cmd.OutOrStdout(), results)
	return err
}

func handleExport(cmd *cobra.Command, results []site.RepoResult, filename string) error {
	// Create output file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := site.ExportResults(results, string(site.FormatJSON), file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d repositories to %s\n", len(results), filename)
	return nil
}

// existingPaths drops arguments that do not exist on disk
func existingPaths(args []string, logger *logrus.Logger) []string {
	var paths []string
	for _, arg := range args {
		if _, err := os.Stat(arg); err != nil {
			logger.WithField("path", arg).Warn("path doesn't exist")
			continue
		}
		paths = append(paths, arg)
	}
	return paths
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DimitrijeDobrota/startgit/internal/config"
	"github.com/DimitrijeDobrota/startgit/internal/logging"
	"github.com/DimitrijeDobrota/startgit/internal/site"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] <repository>...",
	Short: "Render the index page listing repositories",
	Long: `Write <output>/index.html with one row per repository: name, description,
owner and the date of the last commit on the index branch.

Examples:
  startgit index -o /var/www/git -t "My repositories" ~/git/*.git`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().String(config.KeyIndexBranch, config.Default().IndexBranch, "branch listed for every repository")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.Verbose)

	paths := existingPaths(args, logger)
	if len(paths) == 0 {
		return errors.New("no repositories provided")
	}

	builder, err := site.NewBuilder(cfg, logger)
	if err != nil {
		return err
	}

	if err := builder.BuildIndex(paths); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", filepath.Join(cfg.OutputDir, "index.html"))
	return nil
}

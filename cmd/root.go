package cmd

import (
	"fmt"
	"os"

	"github.com/DimitrijeDobrota/startgit/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "startgit",
	Short: "startgit - static git repository browser",
	Long: `startgit renders git repositories into static HTML pages: commit log,
file list, per-file viewer, commit diffs, branch and tag lists, README style
documents and Atom/RSS feeds.

Re-running a build only renders commits that do not have a page yet.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	def := config.Default()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./startgit.yaml or ~/.config/startgit/startgit.yaml)")
	flags.StringP(config.KeyOutput, "o", def.OutputDir, "output directory")
	flags.BoolP(config.KeyForce, "f", false, "force write even if file exists")
	flags.StringP(config.KeyBaseURL, "b", "", "absolute destination URL")
	flags.StringP(config.KeyResourceURL, "r", "", "URL that houses styles and scripts")
	flags.StringP(config.KeyAuthor, "a", "", "owner of the repositories")
	flags.StringP(config.KeyTitle, "t", "", "title for the index page and feeds")
	flags.StringP(config.KeyDescription, "d", "", "description for the index page and feeds")
	flags.BoolP(config.KeyVerbose, "v", false, "log every written page")
}

// loadConfig merges defaults, config file, environment and the flags of cmd
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return config.Config{}, err
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config.Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	return config.Load(v)
}

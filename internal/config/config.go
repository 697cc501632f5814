package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/DimitrijeDobrota/startgit/internal/snapshot"
	"github.com/spf13/viper"
)

// Keys shared by the config file, environment and command line flags
const (
	KeyOutput        = "output"
	KeyBaseURL       = "base"
	KeyResourceURL   = "resource"
	KeyAuthor        = "author"
	KeyTitle         = "title"
	KeyDescription   = "description"
	KeySpecial       = "special"
	KeyForce         = "force"
	KeyIndexBranch   = "index-branch"
	KeyStyle         = "style"
	KeyDiffstatWidth = "diffstat-width"
	KeyVerbose       = "verbose"
)

// EnvPrefix prefixes every environment override, e.g. STARTGIT_OUTPUT
const EnvPrefix = "STARTGIT"

// Config holds everything a site build needs. It is passed down explicitly,
// nothing in the build reads global state.
type Config struct {
	OutputDir      string
	BaseURL        string
	ResourceURL    string
	Author         string
	Title          string
	Description    string
	Special        []string
	Force          bool
	IndexBranch    string
	HighlightStyle string
	DiffstatWidth  int
	Verbose        bool
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		OutputDir:      ".",
		Special:        slices.Clone(snapshot.DefaultSpecial),
		IndexBranch:    "master",
		HighlightStyle: "github",
		DiffstatWidth:  snapshot.DiffstatWidth,
	}
}

// NewViper prepares a viper instance with defaults, the startgit.yaml config
// file and STARTGIT_* environment overrides. An explicit configFile must
// exist, the default search locations are optional.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyOutput, def.OutputDir)
	v.SetDefault(KeySpecial, def.Special)
	v.SetDefault(KeyIndexBranch, def.IndexBranch)
	v.SetDefault(KeyStyle, def.HighlightStyle)
	v.SetDefault(KeyDiffstatWidth, def.DiffstatWidth)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName("startgit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "startgit"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// Load resolves a Config from v and normalises it
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		OutputDir:      v.GetString(KeyOutput),
		BaseURL:        v.GetString(KeyBaseURL),
		ResourceURL:    v.GetString(KeyResourceURL),
		Author:         v.GetString(KeyAuthor),
		Title:          v.GetString(KeyTitle),
		Description:    v.GetString(KeyDescription),
		Special:        splitList(v.GetStringSlice(KeySpecial)),
		Force:          v.GetBool(KeyForce),
		IndexBranch:    v.GetString(KeyIndexBranch),
		HighlightStyle: v.GetString(KeyStyle),
		DiffstatWidth:  v.GetInt(KeyDiffstatWidth),
		Verbose:        v.GetBool(KeyVerbose),
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize trims trailing slashes from URLs so paths can be appended
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	c.ResourceURL = strings.TrimSuffix(c.ResourceURL, "/")
}

// Validate reports settings the build cannot work with
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}
	if c.DiffstatWidth <= 0 {
		return fmt.Errorf("diffstat width must be positive, got %d", c.DiffstatWidth)
	}
	if c.IndexBranch == "" {
		return errors.New("index branch must not be empty")
	}
	for _, name := range c.Special {
		if name == "" {
			return errors.New("special file names must not be empty")
		}
	}
	return nil
}

// splitList accepts both list values and comma separated strings, which is
// what environment variables carry
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			out = append(out, strings.TrimSpace(item))
		}
	}
	return out
}

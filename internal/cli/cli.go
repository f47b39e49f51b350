// Package cli implements the flowdiagram command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdiagram/pkg/buildinfo"
	"github.com/matzehuels/flowdiagram/pkg/cache"
	"github.com/matzehuels/flowdiagram/pkg/config"
	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/observability"
	"github.com/matzehuels/flowdiagram/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for the binary and display.
const appName = "flowdiagram"

// cacheOpenTimeout bounds how long opening a remote cache may take.
const cacheOpenTimeout = 5 * time.Second

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "flowdiagram lays out and renders flow diagrams",
		Long: `flowdiagram turns flow definitions (a prefix of steps, one fork of parallel
columns, and a suffix) into positioned diagrams rendered as SVG, PNG, PDF,
HTML, Graphviz DOT or a terminal outline.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvPath+" or ~/.config/flowdiagram/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every subcommand: it applies -v, loads the config
// file and routes cache and converter events to the debug log.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}

	path := c.configPath
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
	} else if p, err := config.DefaultPath(); err == nil {
		path = p
	} else {
		c.Logger.Debug("no user config directory", "err", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	hooks := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetConverterHooks(hooks)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, c.Config.Keyer(), c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration
	return runner, nil
}

// openCache opens the configured backend. A backend that cannot be reached
// degrades to no caching with a warning; a misconfigured one is an error.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpenTimeout)
	defer cancel()

	store, err := cache.Open(ctx, c.Config.CacheOptions())
	if errors.Is(err, errors.ErrCodeCacheUnavailable) {
		c.Logger.Warn("cache disabled", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// defaultOptions returns pipeline options seeded from the config file.
// Flags bound to the returned struct override these values.
func (c *CLI) defaultOptions() pipeline.Options {
	r := c.Config.Render
	return pipeline.Options{
		VizType:  r.Viz,
		Geometry: c.Config.Geometry,
		Formats:  append([]string(nil), r.Formats...),
		Style:    r.Style,
		Frames:   r.Frames,
	}
}

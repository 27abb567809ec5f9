// Package cli implements the tabsmith command-line interface.
//
// # Commands
//
//   - render: Render a notation grid to SVG, PNG, PDF, JSON or ASCII tab
//   - edit: Edit a stored tab in the terminal
//   - serve: Run the HTTP editing API
//   - doc: List, show, import, export and remove stored tabs
//   - scale: Draw a scale on the fretboard
//   - cache: Manage the render cache
//
// Settings come from ~/.config/tabsmith/config.toml (or --config); flags
// override them. All commands support --verbose (-v) for debug logging.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabsmith/pkg/buildinfo"
	"github.com/matzehuels/tabsmith/pkg/cache"
	"github.com/matzehuels/tabsmith/pkg/config"
	"github.com/matzehuels/tabsmith/pkg/pipeline"
	"github.com/matzehuels/tabsmith/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "tabsmith"

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

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tabsmith lays out and edits guitar tablature",
		Long:         `Tabsmith lays out guitar tablature on a fixed grid of string-lines, renders it to SVG, PNG, PDF or ASCII tab, and edits it in the terminal or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/tabsmith/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.docCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	r.TTL = c.cfg.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.cfg.Cache.RedisURL)
	}
	dir := c.cfg.Cache.Dir
	if dir == "" {
		d, err := config.CacheDir()
		if err != nil {
			c.Logger.Debug("no cache dir, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// openStore opens the configured document store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, c.cfg.Storage)
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns render options seeded from the config file.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:     c.cfg.Canvas.Width,
		Height:    c.cfg.Canvas.Height,
		MaxPerRow: c.cfg.Layout.MaxPerRow,
		Theme:     c.cfg.Theme,
		Logger:    c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

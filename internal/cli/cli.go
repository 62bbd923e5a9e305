// Package cli implements the moneyflow command-line interface.
//
// Commands:
//   - layout: compute a sankey (or nodelink) layout from a graph file
//   - visualize: render a precomputed layout to SVG, PNG, PDF or JSON
//   - render: graph file straight to artifacts (layout + visualize)
//   - inspect: browse node columns, zones and values in the terminal
//   - serve: run the HTTP API
//   - cache: clear or locate the local cache
//
// Settings come from defaults, then the --config TOML file, then
// MONEYFLOW_* environment variables; flags override all of them.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/moneyflow/pkg/buildinfo"
	"github.com/matzehuels/moneyflow/pkg/cache"
	"github.com/matzehuels/moneyflow/pkg/config"
	"github.com/matzehuels/moneyflow/pkg/observability"
	"github.com/matzehuels/moneyflow/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

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
		Short: "Moneyflow lays out and renders money-flow sankey diagrams",
		Long: `Moneyflow turns a flow graph (labels plus parallel source, target and value
arrays) into a column-based sankey layout and renders it as SVG, PNG, PDF or JSON.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML config file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose and loads config.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// newRunner creates a pipeline runner over the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return config.OpenCache(ctx, c.Config.Cache)
}

// cacheDir returns the file cache directory: the configured one, else
// the XDG default (~/.cache/moneyflow/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir(appName)
}

// defaultOptions seeds pipeline options from the loaded configuration.
// Flags bound to the returned struct override these values.
func (c *CLI) defaultOptions() pipeline.Options {
	opts := pipeline.Options{
		Width:    c.Config.Width,
		Height:   c.Config.Height,
		Style:    c.Config.Style,
		Currency: c.Config.Currency,
	}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	return opts
}

// mergeConfig fills options whose flags were not set from the loaded
// config. Flag defaults are captured before config is read, so this runs
// inside RunE.
func (c *CLI) mergeConfig(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if !flags.Changed("width") && c.Config.Width != 0 {
		opts.Width = c.Config.Width
	}
	if !flags.Changed("height") && c.Config.Height != 0 {
		opts.Height = c.Config.Height
	}
	if !flags.Changed("style") && c.Config.Style != "" {
		opts.Style = c.Config.Style
	}
	if !flags.Changed("currency") && c.Config.Currency != "" {
		opts.Currency = c.Config.Currency
	}
	opts.Logger = c.Logger
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path. With no output it strips the
// extension (and a .layout suffix) from input; a known format extension
// on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

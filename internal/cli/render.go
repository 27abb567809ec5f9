package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabsmith/pkg/pipeline"
	"github.com/matzehuels/tabsmith/pkg/store"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file, base path for several formats, or "-" for stdout
	formats   string  // comma-separated output formats
	doc       string  // stored document to render instead of a file
	width     float64 // sheet width in pixels
	height    float64 // sheet height in pixels
	maxPerRow int     // positions per row before wrapping
	scale     float64 // PNG scale factor
	noCache   bool
	refresh   bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [grid.json|-]",
		Short: "Render a notation grid to SVG, PNG, PDF, JSON or ASCII tab",
		Long: `Render a notation grid to one or more output formats.

The grid is a JSON object mapping positions to six-entry arrays, one per
string-line from high e to low E:

  {"1": [null, null, "3", null, null, null], "2": ["0", "1", "0", "2", "3", null]}

Use --doc to render a stored document instead of a file.`,
		Example: `  tabsmith render riff.json
  tabsmith render riff.json -f svg,png -o out/riff
  tabsmith render --doc "intro riff" -f txt -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if input == "" && opts.doc == "" {
				return fmt.Errorf("need a grid file, - for stdin, or --doc")
			}
			return c.runRender(cmd.Context(), input, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVar(&opts.doc, "doc", "", "render a stored document (ID or name)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "sheet width in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "sheet height in pixels (default from config)")
	cmd.Flags().IntVar(&opts.maxPerRow, "max-per-row", 0, "positions per row before wrapping (default from config)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, stdin io.Reader, stdout io.Writer, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	g, name, err := c.loadGrid(ctx, input, stdin, opts.doc)
	if err != nil {
		return err
	}
	logger.Debug("loaded grid", "source", name, "positions", len(g))

	popts := c.pipelineOptions()
	popts.Formats = parseFormats(opts.formats)
	popts.Scale = opts.scale
	popts.Refresh = opts.refresh
	if opts.width > 0 {
		popts.Width = opts.width
	}
	if opts.height > 0 {
		popts.Height = opts.height
	}
	if opts.maxPerRow > 0 {
		popts.MaxPerRow = opts.maxPerRow
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == "-" && len(popts.Formats) > 1 {
		return fmt.Errorf("cannot write %d formats to stdout", len(popts.Formats))
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if slices.Contains(popts.Formats, pipeline.FormatPNG) || slices.Contains(popts.Formats, pipeline.FormatPDF) {
		spin = newSpinnerWithContext(ctx, "Converting "+name)
		spin.Start()
	}
	prog := newProgress(logger)
	result, err := runner.Render(ctx, g, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", strings.Join(popts.Formats, ", ")))

	if opts.output == "-" {
		_, err := stdout.Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	base := basePath(opts.output, name)
	for _, format := range popts.Formats {
		path := outputPath(opts.output, base, format, len(popts.Formats))
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.Positions, result.Stats.Rows, result.CacheInfo.RenderHit)
	return nil
}

// loadGrid reads the grid from a file, stdin or the document store and
// returns it with a name to derive output paths from.
func (c *CLI) loadGrid(ctx context.Context, input string, stdin io.Reader, docRef string) (tab.Grid, string, error) {
	if docRef != "" {
		docs, err := c.openStore(ctx)
		if err != nil {
			return nil, "", err
		}
		defer docs.Close()
		doc, err := store.Resolve(ctx, docs, docRef)
		if err != nil {
			return nil, "", err
		}
		return doc.Grid, slug(doc.Name), nil
	}
	g, err := pipeline.Parse(input, stdin)
	if err != nil {
		return nil, "", err
	}
	if input == "-" {
		return g, "tab", nil
	}
	return g, input, nil
}

// basePath derives the base output path. Without an output it strips the
// input's extension; a known format extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format is written. A single format honours an
// explicit output path as given.
func outputPath(output, base, format string, count int) string {
	if count == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}

// slug turns a document name into a file stem.
func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '-'
		}
		return -1
	}, s)
	if s == "" {
		return "tab"
	}
	return s
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

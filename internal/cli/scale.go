package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabsmith/pkg/fretboard"
	"github.com/matzehuels/tabsmith/pkg/render"
	"github.com/matzehuels/tabsmith/pkg/render/svg"
)

func (c *CLI) scaleCommand() *cobra.Command {
	var (
		output string
		format string
	)

	names := make([]string, 0, len(fretboard.Scales()))
	for _, s := range fretboard.Scales() {
		names = append(names, string(s))
	}

	cmd := &cobra.Command{
		Use:   "scale <key> <scale>",
		Short: "Draw a scale on the fretboard",
		Long: `Draw every note of a scale across the 24-fret neck.

Keys are note names (A, Bb or B♭, C#, ...). Scales: ` + strings.Join(names, ", ") + `.`,
		Example: `  tabsmith scale A pentatonic
  tabsmith scale E harmonicMinor -f png -o e-harmonic.png`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScale(cmd.Context(), args[0], args[1], output, format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <key>-<scale>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, pdf")
	return cmd
}

func (c *CLI) runScale(ctx context.Context, key, scaleName, output, format string) error {
	scale, err := fretboard.ParseScale(scaleName)
	if err != nil {
		return err
	}
	notes, err := fretboard.ScaleNotes(key, scale)
	if err != nil {
		return err
	}

	data, err := c.drawScale(ctx, key, scale, format)
	if err != nil {
		return err
	}
	if output == "" {
		output = fmt.Sprintf("%s-%s.%s", slug(strings.NewReplacer("#", "sharp", "♭", "b").Replace(key)), strings.ToLower(string(scale)), format)
	}
	if err := writeFile(output, data); err != nil {
		return err
	}

	printSuccess("%s %s: %s", StyleHighlight.Render(key), scale, strings.Join(notes, " "))
	printFile(output)
	return nil
}

// drawScale paints the neck with the scale and encodes it as format.
func (c *CLI) drawScale(ctx context.Context, key string, scale fretboard.Scale, format string) ([]byte, error) {
	canvas := svg.NewCanvas()
	geo := fretboard.ForSurface(c.cfg.Fretboard.Width, c.cfg.Fretboard.Height)
	neck := fretboard.New(canvas, fretboard.Options{Geometry: geo, Logger: c.Logger})
	if err := neck.DrawScale(key, scale); err != nil {
		return nil, err
	}
	out := svg.Compose(geo.Width, geo.Height, canvas)

	switch format {
	case "svg":
		return out, nil
	case "png":
		return render.ToPNG(ctx, out, 2)
	case "pdf":
		return render.ToPDF(ctx, out)
	default:
		return nil, fmt.Errorf("invalid format: %q (must be svg, png or pdf)", format)
	}
}

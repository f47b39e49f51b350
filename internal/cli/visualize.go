package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/sink"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
	"github.com/matzehuels/flowdiagram/pkg/pipeline"
)

// visualizeFormats are the outputs drawable from a layout alone.
var visualizeFormats = []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatHTML}

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		style      string
		title      string
		frames     bool
		scale      float64
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json|layout.cbor]",
		Short: "Render a diagram from a computed layout",
		Long: `Render a diagram from a computed layout.

The visualize command takes a layout file (produced by 'layout' or
'render -f json') and draws it as SVG, PNG, PDF or HTML. The layout holds
all positioning information, so this step is purely about drawing. The
style and title recorded in the layout are used unless overridden.

Use 'render' as a shortcut to go directly from a definition to output.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayouts,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := readLayout(args[0])
			if err != nil {
				return err
			}

			opts := c.defaultOptions()
			opts.VizType = pipeline.VizFlow
			opts.Scale = scale
			opts.Title = env.Title
			if env.Style != "" {
				opts.Style = env.Style
			}
			if cmd.Flags().Changed("format") {
				opts.Formats = pipeline.ParseFormats(formatsStr)
			} else {
				opts.Formats = drawable(opts.Formats)
			}
			if cmd.Flags().Changed("style") {
				opts.Style = style
			}
			if cmd.Flags().Changed("title") {
				opts.Title = title
			}
			if cmd.Flags().Changed("frames") {
				opts.Frames = frames
			}
			for _, f := range opts.Formats {
				if !slices.Contains(visualizeFormats, f) {
					return errors.New(errors.ErrCodeInvalidFormat, "cannot draw %s from a layout (want %s)", f, strings.Join(visualizeFormats, ", "))
				}
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], env, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(visualizeFormats, ", ")+" (comma-separated)")
	cmd.Flags().StringVar(&style, "style", "", "visual style: simple, dark (default: the layout's)")
	cmd.Flags().StringVar(&title, "title", "", "diagram title (default: the layout's)")
	cmd.Flags().BoolVar(&frames, "frames", false, "draw a frame around every fork column")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "pixel density of png output")

	registerValueCompletions(cmd)
	return cmd
}

// runVisualize draws the envelope's tree and writes each format.
func (c *CLI) runVisualize(ctx context.Context, input string, env *sink.Envelope, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	name := layoutName(input)
	doc := &flowio.Document{Name: name, Title: env.Title}

	spinner := newSpinner(ctx, "Drawing diagram...")
	spinner.Start()
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, doc, nil, env.Tree, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess("Rendered " + doc.DisplayTitle())

	target := outputTarget{base: strings.TrimSuffix(input, filepath.Ext(input))}
	target.base = strings.TrimSuffix(target.base, ".layout")
	if output != "" {
		if len(opts.Formats) == 1 && !isDir(output) {
			target.exact = output
		} else {
			target.base = basePath(output, input, name)
		}
	}

	for _, format := range opts.Formats {
		path := target.path(pipeline.VizFlow, format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(env.Tree.Stats(), cacheHit)
	return nil
}

// readLayout decodes a layout envelope; .cbor files are CBOR, anything
// else JSON.
func readLayout(path string) (*sink.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read layout %s", path)
		}
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	var env *sink.Envelope
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		env, err = sink.UnmarshalCBOR(data)
	} else {
		env, err = sink.UnmarshalJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}

// layoutName strips the directory, the extension and a ".layout" suffix.
func layoutName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, ".layout")
}

// drawable keeps the configured formats visualize can produce.
func drawable(formats []string) []string {
	var out []string
	for _, f := range formats {
		if slices.Contains(visualizeFormats, f) {
			out = append(out, f)
		}
	}
	return out
}

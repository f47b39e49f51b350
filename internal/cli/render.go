package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
	"github.com/matzehuels/flowdiagram/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command. Flags
// left unset fall back to the [render] table of the config file.
type renderFlags struct {
	output   string
	from     string
	vizTypes string
	formats  string
	style    string
	title    string
	noCache  bool
	refresh  bool
	frames   bool
	detailed bool
	scale    float64
	geo      layout.Geometry
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render flow definitions to SVG, PNG, PDF, HTML and more",
		Long: `Render flow definitions to SVG, PNG, PDF, HTML and more.

Each definition is parsed, laid out and rendered in every requested format.
Files are written next to the input as <name>.<ext>, or <name>_<type>.<ext>
when several visualization types are requested. With one input and one
output, -o names the file; otherwise -o is a directory or base path.

Formats:
  svg, png, pdf   the diagram (png and pdf need rsvg-convert for flow diagrams)
  html            a standalone page with the diagram, description and source
  json, cbor      the positioned layout, readable by 'visualize'
  dot             the Graphviz node-link graph

Results are cached locally for faster subsequent runs.`,
		Example: `  flowdiagram render examples/basic.yaml
  flowdiagram render examples/*.yaml -f svg,html -o site/
  flowdiagram render examples/nested.json -t flow,nodelink --style dark`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeDefinitions(-1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args, &f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single output), directory or base path")
	cmd.Flags().StringVar(&f.from, "from", string(flowio.FormatJSON), "format of stdin input: json, jsonc, yaml, toml")
	cmd.Flags().StringVarP(&f.vizTypes, "type", "t", "", "visualization type(s): flow, nodelink (comma-separated)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	cmd.Flags().StringVar(&f.style, "style", "", "visual style: simple, dark")
	cmd.Flags().StringVar(&f.title, "title", "", "diagram title (default: document title)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached entries")
	cmd.Flags().BoolVar(&f.frames, "frames", false, "draw a frame around every fork column")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show node content in nodelink and dot output")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "pixel density of png output")
	addGeometryFlags(cmd.Flags(), &f.geo)

	registerValueCompletions(cmd)
	return cmd
}

// options merges the flags into base, which carries the config defaults.
// It returns the options and the requested viz types in order.
func (f *renderFlags) options(cmd *cobra.Command, base pipeline.Options) (pipeline.Options, []string, error) {
	opts := base
	changed := cmd.Flags().Changed

	if changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, nil, err
	}

	if changed("style") {
		opts.Style = f.style
	}
	if opts.Style == "" {
		opts.Style = pipeline.DefaultStyle
	}
	if err := pipeline.ValidateStyle(opts.Style); err != nil {
		return opts, nil, err
	}

	if changed("frames") {
		opts.Frames = f.frames
	}
	opts.Title = f.title
	opts.Detailed = f.detailed
	opts.Scale = f.scale
	opts.Refresh = f.refresh
	opts.Geometry = overlayGeometry(opts.Geometry, f.geo)

	vizTypes := []string{opts.VizType}
	if changed("type") {
		vizTypes = pipeline.ParseFormats(f.vizTypes)
	}
	if len(vizTypes) == 0 || vizTypes[0] == "" {
		vizTypes = []string{pipeline.DefaultVizType}
	}
	for _, v := range vizTypes {
		if err := pipeline.ValidateVizType(v); err != nil {
			return opts, nil, err
		}
	}
	return opts, vizTypes, nil
}

// runRender renders every input. A failing document does not stop the
// others; the first failure is returned once all have been tried.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, inputs []string, f *renderFlags) error {
	opts, vizTypes, err := f.options(cmd, c.defaultOptions())
	if err != nil {
		return err
	}

	multi := len(inputs) > 1
	if f.output != "" && (multi || isDir(f.output)) {
		if err := os.MkdirAll(f.output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var firstErr error
	failed := 0
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.renderInput(ctx, cmd, runner, input, f, opts, vizTypes, multi)
		if err == nil {
			continue
		}
		if !multi {
			return err
		}
		printError("%s: %v", input, err)
		failed++
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", input, err)
		}
	}
	if firstErr != nil {
		return fmt.Errorf("%d of %d documents failed, first: %w", failed, len(inputs), firstErr)
	}
	return nil
}

// renderInput reads one definition and renders it for every viz type.
func (c *CLI) renderInput(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, input string, f *renderFlags, opts pipeline.Options, vizTypes []string, multi bool) error {
	doc, err := readDocument(cmd, input, f.from)
	if err != nil {
		return err
	}

	target := outputTarget{
		base:    basePath(f.output, input, doc.Name),
		withViz: len(vizTypes) > 1,
	}
	if !multi && len(vizTypes) == 1 && len(opts.Formats) == 1 && f.output != "" && !isDir(f.output) {
		target.exact = f.output
	}
	return c.renderDocument(ctx, runner, doc, opts, vizTypes, target)
}

// renderDocument runs the pipeline for each viz type and writes the
// artifacts. Formats that do not depend on the viz type are written once.
func (c *CLI) renderDocument(ctx context.Context, runner *pipeline.Runner, doc *flowio.Document, opts pipeline.Options, vizTypes []string, target outputTarget) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", doc.DisplayTitle()))
	spinner.Start()

	var (
		written []string
		stats   layout.Stats
		cached  = true
	)
	for i, viz := range vizTypes {
		vopts := opts
		vopts.VizType = viz
		vopts.Formats = formatsFor(opts.Formats, i)
		if len(vopts.Formats) == 0 {
			continue
		}

		result, err := runner.Execute(ctx, doc, vopts)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Render failed: %s", doc.DisplayTitle()))
			return err
		}
		stats = result.Tree.Stats()
		cached = cached && result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit

		for _, format := range vopts.Formats {
			path := target.path(viz, format)
			if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
				spinner.StopWithError("Write failed")
				return fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}
	spinner.Stop()

	printSuccess("Rendered %s", doc.DisplayTitle())
	for _, path := range written {
		printFile(path)
	}
	printStats(stats, cached)
	prog.done("rendered", "document", doc.Name, "files", len(written))
	return nil
}

// formatsFor returns the formats rendered for the i-th viz type. The
// layout exports and DOT are the same for every viz type, so only the
// first one writes them.
func formatsFor(formats []string, i int) []string {
	if i == 0 {
		return slices.Clone(formats)
	}
	var out []string
	for _, f := range formats {
		switch f {
		case pipeline.FormatJSON, pipeline.FormatCBOR, pipeline.FormatDOT:
			continue
		}
		out = append(out, f)
	}
	return out
}

// outputTarget names the files written for one document.
type outputTarget struct {
	exact   string // the single output file, when -o names one
	base    string // path without extension
	withViz bool   // append _<viz> to the base
}

func (t outputTarget) path(viz, format string) string {
	if t.exact != "" {
		return t.exact
	}
	base := t.base
	if t.withViz {
		base += "_" + viz
	}
	return base + "." + pipeline.Extension(format)
}

// basePath derives the base output path (without extension).
// If output is empty, it strips the extension from input; stdin renders
// into the working directory. A directory output places <name> inside it.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input, name string) string {
	switch {
	case output == "" && input == "-":
		return name
	case output == "":
		return strings.TrimSuffix(input, filepath.Ext(input))
	case isDir(output):
		return filepath.Join(output, name)
	}
	ext := filepath.Ext(output)
	format := strings.TrimPrefix(ext, ".")
	if slices.Contains(pipeline.Formats, format) || format == pipeline.Extension(pipeline.FormatDOT) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// isDir reports whether path names a directory, existing or marked with a
// trailing separator.
func isDir(path string) bool {
	if strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

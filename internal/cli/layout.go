package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	"github.com/matzehuels/flowdiagram/pkg/flow/sink"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
	"github.com/matzehuels/flowdiagram/pkg/pipeline"
)

// Layout output formats.
const (
	layoutJSON = "json"
	layoutCBOR = "cbor"
	layoutTree = "tree"
)

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		format  string
		output  string
		from    string
		noCache bool
		refresh bool
		geo     layout.Geometry
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute the positioned layout of a flow definition",
		Long: `Compute the positioned layout of a flow definition.

The layout assigns every node, column and connector its coordinates. It is
written as a versioned JSON or CBOR envelope (the same as 'render -f json')
that 'visualize' can draw later, or printed as a terminal outline with
-f tree.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDefinitions(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case layoutJSON, layoutCBOR, layoutTree:
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unknown layout format %q (want json, cbor or tree)", format)
			}
			doc, err := readDocument(cmd, args[0], from)
			if err != nil {
				return err
			}
			opts := c.defaultOptions()
			opts.Geometry = overlayGeometry(opts.Geometry, geo)
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), cmd, doc, args[0], opts, format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", layoutJSON, "output format: json, cbor, tree")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.<format>, stdout for tree)")
	cmd.Flags().StringVar(&from, "from", string(flowio.FormatJSON), "format of stdin input: json, jsonc, yaml, toml")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached entries")
	addGeometryFlags(cmd.Flags(), &geo)

	registerValueCompletions(cmd)
	return cmd
}

// runLayout parses doc, computes the layout and writes it.
func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, doc *flowio.Document, input string, opts pipeline.Options, format, output string, noCache bool) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p, err := runner.Parse(ctx, doc)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	tree, cacheHit, err := runner.LayoutWithCacheInfo(ctx, p, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}

	title := doc.DisplayTitle()
	exportOpts := []sink.ExportOption{sink.WithExportStyle(opts.Style), sink.WithExportTitle(title)}

	var data []byte
	switch format {
	case layoutTree:
		data = []byte(sink.RenderTree(tree, title) + "\n")
	case layoutCBOR:
		data, err = sink.MarshalCBOR(tree, exportOpts...)
	default:
		data, err = sink.MarshalJSON(tree, exportOpts...)
	}
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	if output == "" && format != layoutTree {
		output = layoutPath(input, doc.Name, format)
	}
	out, err := openOutput(cmd, output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	if output == "" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(tree.Stats(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+output)
	return nil
}

// layoutPath derives <input>.layout.<format> next to the input file.
func layoutPath(input, name, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if input == "-" {
		base = name
	}
	return base + ".layout." + format
}

// addGeometryFlags binds the geometry overrides shared by layout and render.
// Unset flags stay zero and leave the configured value in place.
func addGeometryFlags(fs *pflag.FlagSet, g *layout.Geometry) {
	fs.Float64Var(&g.NodeWidth, "node-width", 0, "collapsed node width in px")
	fs.Float64Var(&g.NodeHeight, "node-height", 0, "node height in px")
	fs.Float64Var(&g.NodePadding, "node-padding", 0, "vertical space around each node in px")
	fs.Float64Var(&g.ColumnGap, "column-gap", 0, "gap between fork columns in px")
	fs.Float64Var(&g.ConnectorSize, "connector-size", 0, "connector segment length in px")
	fs.Float64Var(&g.LineWidth, "line-width", 0, "connector stroke width in px")
}

// overlayGeometry replaces the fields of base that are set in override.
func overlayGeometry(base, override layout.Geometry) layout.Geometry {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&base.LineWidth, override.LineWidth)
	set(&base.ConnectorSize, override.ConnectorSize)
	set(&base.ColumnGap, override.ColumnGap)
	set(&base.NodePadding, override.NodePadding)
	set(&base.NodeWidth, override.NodeWidth)
	set(&base.NodeHeight, override.NodeHeight)
	set(&base.CornerRadius, override.CornerRadius)
	set(&base.CharWidth, override.CharWidth)
	return base
}

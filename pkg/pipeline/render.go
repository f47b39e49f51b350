package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	"github.com/matzehuels/flowdiagram/pkg/flow/sink"
	"github.com/matzehuels/flowdiagram/pkg/flow/sink/styles"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
	"github.com/matzehuels/flowdiagram/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
//
// SVG, PNG, PDF and the diagram inside HTML follow opts.VizType. JSON and
// CBOR always export the layout tree and DOT always writes the node-link
// graph. doc supplies the title and, for HTML, the description and source.
func Render(ctx context.Context, doc *flowio.Document, p *flow.Parsed, t *layout.Tree, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r, err := newArtifactRenderer(doc, p, t, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.render(ctx, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// artifactRenderer renders the formats of one run, sharing the SVG and
// DOT text between them.
type artifactRenderer struct {
	doc   *flowio.Document
	p     *flow.Parsed
	tree  *layout.Tree
	opts  Options
	style styles.Style
	title string

	dot string
	svg []byte
}

func newArtifactRenderer(doc *flowio.Document, p *flow.Parsed, t *layout.Tree, opts Options) (*artifactRenderer, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no layout to render")
	}
	if p == nil && (opts.IsNodelink() || slices.Contains(opts.Formats, FormatDOT)) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nodelink output needs the parsed graph")
	}
	if doc == nil {
		doc = &flowio.Document{}
	}
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	return &artifactRenderer{
		doc:   doc,
		p:     p,
		tree:  t,
		opts:  opts,
		style: style,
		title: titleFor(doc, opts),
	}, nil
}

func (r *artifactRenderer) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return r.diagramSVG(ctx)
	case FormatPNG:
		if r.opts.IsNodelink() {
			return nodelink.RenderPNG(ctx, r.dotText(), r.opts.Scale)
		}
		return sink.RenderPNG(ctx, r.tree, sink.WithPNGSVGOptions(r.svgOptions()...), sink.WithScale(r.opts.Scale))
	case FormatPDF:
		if r.opts.IsNodelink() {
			return nodelink.RenderPDF(ctx, r.dotText())
		}
		return sink.RenderPDF(ctx, r.tree, r.svgOptions()...)
	case FormatJSON:
		return sink.MarshalJSON(r.tree, r.exportOptions()...)
	case FormatCBOR:
		return sink.MarshalCBOR(r.tree, r.exportOptions()...)
	case FormatDOT:
		return []byte(r.dotText()), nil
	case FormatHTML:
		svg, err := r.diagramSVG(ctx)
		if err != nil {
			return nil, err
		}
		return sink.RenderHTML(r.doc, r.tree, svg, sink.WithCodeStyle(codeStyle(r.style)))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

// diagramSVG renders the SVG for the selected viz type once.
func (r *artifactRenderer) diagramSVG(ctx context.Context) ([]byte, error) {
	if r.svg != nil {
		return r.svg, nil
	}
	if r.opts.IsNodelink() {
		svg, err := nodelink.RenderSVG(ctx, r.dotText())
		if err != nil {
			return nil, err
		}
		r.svg = svg
	} else {
		r.svg = sink.RenderSVG(r.tree, r.svgOptions()...)
	}
	return r.svg, nil
}

func (r *artifactRenderer) dotText() string {
	if r.dot == "" {
		r.dot = nodelink.ToDOT(r.p, nodelink.Options{Detailed: r.opts.Detailed})
	}
	return r.dot
}

func (r *artifactRenderer) svgOptions() []sink.SVGOption {
	opts := []sink.SVGOption{sink.WithStyle(r.style)}
	if r.title != "" {
		opts = append(opts, sink.WithTitle(r.title))
	}
	if r.opts.Frames {
		opts = append(opts, sink.WithFrames())
	}
	return opts
}

// codeStyle picks a chroma style that matches the diagram style.
func codeStyle(s styles.Style) string {
	if s.Name() == "dark" {
		return "monokai"
	}
	return sink.DefaultCodeStyle
}

func (r *artifactRenderer) exportOptions() []sink.ExportOption {
	return []sink.ExportOption{
		sink.WithExportStyle(r.style.Name()),
		sink.WithExportTitle(r.title),
	}
}

// titleFor picks the diagram title: the option, then the document's.
func titleFor(doc *flowio.Document, opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	if doc == nil {
		return ""
	}
	return doc.DisplayTitle()
}

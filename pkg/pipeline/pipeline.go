// Package pipeline runs the parse → layout → render pipeline for flow
// definition documents.
//
// The CLI and any embedding program share this package so that a document
// renders the same way everywhere.
//
// # Stages
//
//  1. Parse: split the document's graph into prefix, fork and suffix
//  2. Layout: position every node, container and connector
//  3. Render: write the requested formats (SVG, PNG, PDF, JSON, CBOR, DOT, HTML)
//
// Each stage can be run on its own or through [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := io.ReadFile("examples/basic.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg", "html"},
//	    Style:   "dark",
//	})
//	svg := result.Artifacts["svg"]
//
// Layouts and artifacts are cached by content hash, so a second run over
// an unchanged document is served from the cache.
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/flowdiagram/pkg/cache"
	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	"github.com/matzehuels/flowdiagram/pkg/flow/sink/styles"
)

// =============================================================================
// Default Values
// =============================================================================

// Visualization types.
const (
	VizFlow     = "flow"     // stacked cards with connector lines
	VizNodelink = "nodelink" // Graphviz node-link diagram
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatCBOR = "cbor"
	FormatDOT  = "dot"
	FormatHTML = "html"
)

const (
	// DefaultVizType is the default visualization type.
	DefaultVizType = VizFlow

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultTTL is how long cached layouts and artifacts are kept.
	DefaultTTL = 7 * 24 * time.Hour
)

// Formats lists every output format in the order they are rendered.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatCBOR, FormatDOT, FormatHTML}

// VizTypes lists the supported visualization types.
var VizTypes = []string{VizFlow, VizNodelink}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Layout options
	VizType  string          `json:"viz_type,omitempty"`
	Geometry layout.Geometry `json:"geometry"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Title    string   `json:"title,omitempty"`    // overrides the document title
	Frames   bool     `json:"frames,omitempty"`   // draw container outlines
	Detailed bool     `json:"detailed,omitempty"` // nodelink labels show IDs and content
	Scale    float64  `json:"scale,omitempty"`    // PNG scale factor

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Parsed is the normalized graph.
	Parsed *flow.Parsed

	// DefinitionHash is the content hash of the normalized graph.
	DefinitionHash string

	// Tree is the computed layout.
	Tree *layout.Tree

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	ForkDepth  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LayoutHit bool // layout tree came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is registered.
func ValidateStyle(style string) error {
	if style == "" {
		return errors.New(errors.ErrCodeInvalidStyle, "style is required (must be one of: %s)", strings.Join(styles.Names(), ", "))
	}
	_, err := styles.Lookup(style)
	return err
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !slices.Contains(VizTypes, vizType) {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz type %q (must be one of: %s)", vizType, strings.Join(VizTypes, ", "))
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates. An empty string yields nil.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// Extension returns the file extension written for a format.
func Extension(format string) string {
	if format == FormatDOT {
		return "gv"
	}
	return format
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	o.Geometry = o.Geometry.WithDefaults()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := o.Geometry.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "geometry")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive (got %g)", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizNodelink
}

// LayoutKeyOpts returns cache key options for layout computation. The tree
// is the same for every viz type, so only geometry is part of the key.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:  VizFlow,
		Geometry: o.Geometry,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// docHash covers what an HTML page embeds beyond the tree.
func (o *Options) ArtifactKeyOpts(format, title, docHash string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		VizType: o.VizType,
		Style:   o.Style,
		Title:   title,
		Frames:  o.Frames,
	}
	if o.IsNodelink() || format == FormatDOT {
		k.Detailed = o.Detailed
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if format == FormatHTML {
		k.Document = docHash
	}
	return k
}

func (o Options) String() string {
	return fmt.Sprintf("viz=%s style=%s formats=%s", o.VizType, o.Style, strings.Join(o.Formats, ","))
}

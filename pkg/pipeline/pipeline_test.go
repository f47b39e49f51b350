package pipeline

import (
	"reflect"
	"testing"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"cbor", false},
		{"dot", false},
		{"html", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "html"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"dark", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidStyle) {
			t.Errorf("ValidateStyle(%q) code = %s, want INVALID_STYLE", tt.style, errors.GetCode(err))
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"flow", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType = %q, want %q", opts.VizType, DefaultVizType)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Geometry != layout.DefaultGeometry() {
		t.Errorf("Geometry = %+v, want defaults", opts.Geometry)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
}

func TestOptionsKeepExplicitValues(t *testing.T) {
	opts := Options{
		VizType:  VizNodelink,
		Style:    "dark",
		Formats:  []string{"dot"},
		Geometry: layout.Geometry{NodeWidth: 240},
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.VizType != VizNodelink || opts.Style != "dark" || opts.Formats[0] != "dot" {
		t.Errorf("explicit values overwritten: %+v", opts)
	}
	if opts.Geometry.NodeWidth != 240 || opts.Geometry.ColumnGap != layout.DefaultColumnGap {
		t.Errorf("Geometry = %+v", opts.Geometry)
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"VizType", Options{VizType: "tower"}, errors.ErrCodeInvalidVizType},
		{"Format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"Style", Options{Style: "neon"}, errors.ErrCodeInvalidStyle},
		{"Geometry", Options{Geometry: layout.Geometry{ColumnGap: -4}}, errors.ErrCodeInvalidInput},
		{"Scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg, PNG ,svg,,html", []string{"svg", "png", "html"}},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtension(t *testing.T) {
	for format, want := range map[string]string{"svg": "svg", "dot": "gv", "cbor": "cbor", "html": "html"} {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Style: "dark", Scale: 3, Detailed: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	svg := opts.ArtifactKeyOpts(FormatSVG, "T", "doc")
	if svg.Scale != 0 || svg.Document != "" || svg.Detailed {
		t.Errorf("svg key carries unrelated inputs: %+v", svg)
	}
	if png := opts.ArtifactKeyOpts(FormatPNG, "T", "doc"); png.Scale != 3 {
		t.Errorf("png key Scale = %g, want 3", png.Scale)
	}
	if html := opts.ArtifactKeyOpts(FormatHTML, "T", "doc"); html.Document != "doc" {
		t.Errorf("html key Document = %q, want doc", html.Document)
	}
	if dot := opts.ArtifactKeyOpts(FormatDOT, "T", "doc"); !dot.Detailed {
		t.Error("dot key should carry Detailed")
	}
}

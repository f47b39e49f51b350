package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/pipeline"
)

func fileCacheConfig(dir string) string {
	return "[cache]\nbackend = \"file\"\ndir = \"" + filepath.ToSlash(dir) + "\"\n"
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected output %s: %v", path, err)
	}
	return string(data)
}

func TestRenderFormats(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "basic.yaml", basicYAML)

	r := runCLI(t, memoryConfig, "", "render", input, "-f", "svg,json,cbor,dot,html")
	if r.err != nil {
		t.Fatal(r.err)
	}

	if svg := readOutput(t, filepath.Join(dir, "basic.svg")); !strings.Contains(svg, "<svg") {
		t.Error("basic.svg is not an SVG document")
	}
	if js := readOutput(t, filepath.Join(dir, "basic.json")); !strings.Contains(js, `"version"`) {
		t.Error("basic.json is not a layout envelope")
	}
	readOutput(t, filepath.Join(dir, "basic.cbor"))
	if dot := readOutput(t, filepath.Join(dir, "basic.gv")); !strings.Contains(dot, "digraph") {
		t.Error("basic.gv is not a DOT graph")
	}
	html := readOutput(t, filepath.Join(dir, "basic.html"))
	for _, want := range []string{"<svg", "Basic Flow", "rejoin before completing"} {
		if !strings.Contains(html, want) {
			t.Errorf("basic.html missing %q", want)
		}
	}

	for _, want := range []string{"Rendered Basic Flow", "basic.svg", "basic.gv", "9 nodes"} {
		if !strings.Contains(r.status, want) {
			t.Errorf("status missing %q:\n%s", want, r.status)
		}
	}
}

func TestRenderExactOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "basic.yaml", basicYAML)
	output := filepath.Join(dir, "diagram.image")

	r := runCLI(t, memoryConfig, "", "render", input, "-o", output)
	if r.err != nil {
		t.Fatal(r.err)
	}
	if svg := readOutput(t, output); !strings.Contains(svg, "<svg") {
		t.Error("single output should be written to the exact -o path")
	}
}

func TestRenderBothVizTypes(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "basic.yaml", basicYAML)

	r := runCLI(t, memoryConfig, "", "render", input, "-t", "flow,nodelink", "-f", "svg,json")
	if r.err != nil {
		t.Fatal(r.err)
	}
	readOutput(t, filepath.Join(dir, "basic_flow.svg"))
	readOutput(t, filepath.Join(dir, "basic_nodelink.svg"))
	readOutput(t, filepath.Join(dir, "basic_flow.json"))
	if _, err := os.Stat(filepath.Join(dir, "basic_nodelink.json")); err == nil {
		t.Error("layout export should be written once, not per viz type")
	}
}

func TestRenderMultipleInputs(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")
	good := writeFile(t, src, "basic.yaml", basicYAML)
	other := writeFile(t, src, "linear.json", `{"title": "Linear", "graph": ["A", "B"]}`)

	r := runCLI(t, memoryConfig, "", "render", good, other, "-o", out)
	if r.err != nil {
		t.Fatal(r.err)
	}
	readOutput(t, filepath.Join(out, "basic.svg"))
	readOutput(t, filepath.Join(out, "linear.svg"))
}

func TestRenderContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "forks.json", twoForksJSON)
	good := writeFile(t, dir, "basic.yaml", basicYAML)

	r := runCLI(t, memoryConfig, "", "render", bad, good)
	if r.err == nil {
		t.Fatal("expected an error for the broken document")
	}
	if !strings.Contains(r.err.Error(), "1 of 2 documents failed") {
		t.Errorf("error = %v", r.err)
	}
	if !errors.Is(r.err, errors.ErrCodeInvalidStructure) {
		t.Errorf("error should carry the first failure's code, got %s", errors.GetCode(r.err))
	}
	readOutput(t, filepath.Join(dir, "basic.svg"))
}

func TestRenderCacheHit(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "basic.yaml", basicYAML)
	cfg := fileCacheConfig(filepath.Join(t.TempDir(), "cache"))

	first := runCLI(t, cfg, "", "render", input)
	if first.err != nil {
		t.Fatal(first.err)
	}
	if !strings.Contains(first.status, iconFresh) {
		t.Errorf("first run should be fresh:\n%s", first.status)
	}

	second := runCLI(t, cfg, "", "render", input)
	if second.err != nil {
		t.Fatal(second.err)
	}
	if !strings.Contains(second.status, iconCached) {
		t.Errorf("second run should be served from the cache:\n%s", second.status)
	}

	refreshed := runCLI(t, cfg, "", "render", input, "--refresh")
	if refreshed.err != nil {
		t.Fatal(refreshed.err)
	}
	if !strings.Contains(refreshed.status, iconFresh) {
		t.Errorf("--refresh should recompute:\n%s", refreshed.status)
	}
}

func TestRenderErrors(t *testing.T) {
	input := writeFile(t, t.TempDir(), "basic.yaml", basicYAML)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"style", []string{"render", input, "--style", "neon"}, errors.ErrCodeInvalidStyle},
		{"format", []string{"render", input, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"viz type", []string{"render", input, "-t", "tower"}, errors.ErrCodeInvalidVizType},
		{"scale", []string{"render", input, "--scale", "-1"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, memoryConfig, "", tt.args...)
			if !errors.Is(r.err, tt.code) {
				t.Errorf("error = %v, want %s", r.err, tt.code)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"next to input", "", "flows/basic.yaml", "flows/basic"},
		{"stdin", "", "-", "stdin"},
		{"format extension stripped", "out/diagram.svg", "basic.yaml", "out/diagram"},
		{"dot extension stripped", "diagram.gv", "basic.yaml", "diagram"},
		{"other extension kept", "diagram.v2", "basic.yaml", "diagram.v2"},
		{"existing directory", dir, "basic.yaml", filepath.Join(dir, "basic")},
		{"trailing separator", "site/", "basic.yaml", filepath.Join("site", "basic")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := "basic"
			if tt.input == "-" {
				name = stdinName
			}
			if got := basePath(tt.output, tt.input, name); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatsFor(t *testing.T) {
	formats := []string{"svg", "json", "dot", "png", "cbor"}
	if got := formatsFor(formats, 0); !reflect.DeepEqual(got, formats) {
		t.Errorf("first viz type should render everything, got %v", got)
	}
	if got := formatsFor(formats, 1); !reflect.DeepEqual(got, []string{"svg", "png"}) {
		t.Errorf("later viz types = %v, want [svg png]", got)
	}
}

func TestOutputTargetPath(t *testing.T) {
	tests := []struct {
		target outputTarget
		viz    string
		format string
		want   string
	}{
		{outputTarget{base: "out/basic"}, "flow", "svg", "out/basic.svg"},
		{outputTarget{base: "out/basic", withViz: true}, "nodelink", "png", "out/basic_nodelink.png"},
		{outputTarget{base: "basic"}, "flow", pipeline.FormatDOT, "basic.gv"},
		{outputTarget{base: "basic", exact: "x.svg"}, "flow", "svg", "x.svg"},
	}
	for _, tt := range tests {
		if got := tt.target.path(tt.viz, tt.format); got != tt.want {
			t.Errorf("path(%q, %q) = %q, want %q", tt.viz, tt.format, got, tt.want)
		}
	}
}

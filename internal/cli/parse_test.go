package cli

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
)

func TestParseSummary(t *testing.T) {
	input := writeFile(t, t.TempDir(), "basic.yaml", basicYAML)

	r := runCLI(t, memoryConfig, "", "parse", input)
	if r.err != nil {
		t.Fatal(r.err)
	}
	for _, want := range []string{
		"basic",
		"Basic Flow",
		"yaml",
		"9",
		"Start Process → Initial Setup",
		"2 columns (2, 3 items), depth 1",
		"Consolidate Results → Complete",
	} {
		if !strings.Contains(r.out, want) {
			t.Errorf("summary missing %q:\n%s", want, r.out)
		}
	}
}

func TestParseWithoutFork(t *testing.T) {
	input := writeFile(t, t.TempDir(), "linear.json", `["A", "B"]`)

	r := runCLI(t, memoryConfig, "", "parse", input)
	if r.err != nil {
		t.Fatal(r.err)
	}
	if !strings.Contains(r.out, "none") {
		t.Errorf("linear graph should report no fork:\n%s", r.out)
	}
	if strings.Contains(r.out, "Suffix") {
		t.Errorf("linear graph has no suffix:\n%s", r.out)
	}
}

func TestParseNormalizedJSON(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "basic.yaml", basicYAML)
	output := filepath.Join(dir, "basic.json")

	r := runCLI(t, memoryConfig, "", "parse", input, "--json", "-o", output)
	if r.err != nil {
		t.Fatal(r.err)
	}
	if !strings.Contains(r.status, output) {
		t.Errorf("status should name the output file: %q", r.status)
	}

	got, err := flowio.ReadFile(output)
	if err != nil {
		t.Fatalf("read normalized output: %v", err)
	}
	want, err := flowio.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != want.Title || got.Description != want.Description {
		t.Errorf("metadata lost: %+v", got)
	}
	if !reflect.DeepEqual(flow.Encode(got.Graph), flow.Encode(want.Graph)) {
		t.Errorf("graph changed:\n got %v\nwant %v", flow.Encode(got.Graph), flow.Encode(want.Graph))
	}
}

func TestParseStdin(t *testing.T) {
	r := runCLI(t, memoryConfig, basicYAML, "parse", "-", "--from", "yaml", "--json")
	if r.err != nil {
		t.Fatal(r.err)
	}
	doc, err := flowio.Read(strings.NewReader(r.out), flowio.FormatJSON)
	if err != nil {
		t.Fatalf("stdout is not a definition: %v\n%s", err, r.out)
	}
	if doc.Title != "Basic Flow" {
		t.Errorf("Title = %q", doc.Title)
	}
}

func TestParseErrors(t *testing.T) {
	dir := t.TempDir()
	twoForks := writeFile(t, dir, "forks.json", twoForksJSON)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"two forks", []string{"parse", twoForks}, errors.ErrCodeInvalidStructure},
		{"missing file", []string{"parse", filepath.Join(dir, "missing.json")}, errors.ErrCodeFileNotFound},
		{"unknown extension", []string{"parse", writeFile(t, dir, "flow.txt", "[]")}, errors.ErrCodeInvalidFormat},
		{"unknown stdin format", []string{"parse", "-", "--from", "xml"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, memoryConfig, "", tt.args...)
			if !errors.Is(r.err, tt.code) {
				t.Errorf("error = %v, want code %s", r.err, tt.code)
			}
			if errors.ExitCode(r.err) != 2 {
				t.Errorf("exit code = %d, want 2", errors.ExitCode(r.err))
			}
		})
	}
}

func TestParseTwoForksKeepsSentinel(t *testing.T) {
	input := writeFile(t, t.TempDir(), "forks.json", twoForksJSON)
	r := runCLI(t, memoryConfig, "", "parse", input)
	if !stderrors.Is(r.err, flow.ErrMultipleForks) {
		t.Errorf("error = %v, want ErrMultipleForks", r.err)
	}
}

func TestParseJSONAndYAMLExclusive(t *testing.T) {
	input := writeFile(t, t.TempDir(), "basic.yaml", basicYAML)
	if r := runCLI(t, memoryConfig, "", "parse", input, "--json", "--yaml"); r.err == nil {
		t.Error("--json and --yaml together should fail")
	}
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := openOutput(nil, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "hello" {
		t.Errorf("file content = %q", data)
	}
}

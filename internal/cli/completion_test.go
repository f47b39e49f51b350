package cli

import (
	"strings"
	"testing"
)

func TestCompletionArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		want      []string
		directive string
	}{
		{"parse definitions", []string{"parse", ""}, []string{"json", "jsonc", "toml", "yaml", "yml"}, ":8"},
		{"parse second arg", []string{"parse", "basic.yaml", ""}, nil, ":4"},
		{"render many definitions", []string{"render", "a.yaml", ""}, []string{"toml", "yaml"}, ":8"},
		{"visualize layouts", []string{"visualize", ""}, []string{"json", "cbor"}, ":8"},
		{"browse dirs", []string{"browse", ""}, nil, ":16"},
		{"style values", []string{"render", "a.yaml", "--style", ""}, []string{"simple", "dark"}, ":4"},
		{"viz types", []string{"render", "a.yaml", "-t", ""}, []string{"flow", "nodelink"}, ":4"},
		{"layout formats", []string{"layout", "a.yaml", "-f", ""}, []string{"json", "cbor", "tree"}, ":4"},
		{"stdin formats", []string{"parse", "-", "--from", ""}, []string{"jsonc", "toml"}, ":4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, memoryConfig, "", append([]string{"__complete"}, tt.args...)...)
			if r.err != nil {
				t.Fatal(r.err)
			}
			lines := strings.Split(strings.TrimSpace(r.out), "\n")
			if got := lines[len(lines)-1]; got != tt.directive {
				t.Errorf("directive = %q, want %q\n%s", got, tt.directive, r.out)
			}
			for _, want := range tt.want {
				if !strings.Contains(r.out, want+"\n") {
					t.Errorf("completions missing %q:\n%s", want, r.out)
				}
			}
		})
	}
}

func TestFormatChoices(t *testing.T) {
	if got := formatChoices("parse"); got != nil {
		t.Errorf("parse has no -f flag, got %v", got)
	}
	if got := formatChoices("visualize"); len(got) != len(visualizeFormats) {
		t.Errorf("visualize formats = %v", got)
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		stats  layout.Stats
		cached bool
		want   []string
		absent []string
	}{
		{
			name:  "plural",
			stats: layout.Stats{Nodes: 9, Columns: 2, Convergences: 2},
			want:  []string{"9 nodes", "2 columns", "2 convergences", "fresh"},
		},
		{
			name:   "singular",
			stats:  layout.Stats{Nodes: 1},
			cached: true,
			want:   []string{"1 node", "cached"},
			absent: []string{"1 nodes", "column"},
		},
		{
			name:   "linear",
			stats:  layout.Stats{Nodes: 3},
			want:   []string{"3 nodes"},
			absent: []string{"column", "convergence"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(tt.stats, tt.cached)
			for _, s := range tt.want {
				if !strings.Contains(line, s) {
					t.Errorf("%q missing %q", line, s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(line, s) {
					t.Errorf("%q should not contain %q", line, s)
				}
			}
		})
	}
}

func TestStatusHelpers(t *testing.T) {
	var buf bytes.Buffer
	defer swapStdout(&buf)()

	printSuccess("Rendered %s", "basic")
	printWarning("careful")
	printFile("out/basic.svg")
	printNextStep("Draw it", "flowdiagram visualize basic.layout.json")

	out := buf.String()
	for _, want := range []string{iconSuccess, "Rendered basic", "careful", "out/basic.svg", "flowdiagram visualize"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

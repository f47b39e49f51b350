package sink

import (
	"strings"
	"testing"
)

func TestRenderTree(t *testing.T) {
	out := RenderTree(scenarioTree(t), "Demo")

	for _, want := range []string{
		"Demo",
		"Start",
		"fork main (rejoins)",
		"column 1",
		"column 2",
		"Process A ⤓",
		"Additional Step B ⤓",
		"Consolidate",
		"Complete",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTree() missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "Start") > strings.Index(out, "fork main") ||
		strings.Index(out, "fork main") > strings.Index(out, "Consolidate") {
		t.Errorf("RenderTree() out of order:\n%s", out)
	}
}

func TestRenderTreeMarkers(t *testing.T) {
	tree := renderRaw(t, []any{
		map[string]any{"id": "start", "title": "Begin", "content": "x"},
		[]any{[]any{"A", []any{[]any{"B"}}}, []any{}},
	})
	out := RenderTree(tree, "")

	for _, want := range []string{
		"flow",
		"Begin (start) ◆",
		"fork main-col-0-item-1",
		"(empty)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTree() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "⤓") || strings.Contains(out, "(rejoins)") {
		t.Errorf("RenderTree() marked convergence without a suffix:\n%s", out)
	}
}

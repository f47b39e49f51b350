package sink

import (
	"testing"

	"github.com/matzehuels/flowdiagram/pkg/flow"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
)

func scenarioTree(t *testing.T) *layout.Tree {
	t.Helper()
	p, err := flow.ParseRaw([]any{
		"Start",
		[]any{
			[]any{"Branch A", "Process A"},
			[]any{"Branch B", "Process B", "Additional Step B"},
		},
		"Consolidate",
		"Complete",
	})
	if err != nil {
		t.Fatalf("ParseRaw: %v", err)
	}
	return layout.Render(p)
}

func renderRaw(t *testing.T, raw []any) *layout.Tree {
	t.Helper()
	p, err := flow.ParseRaw(raw)
	if err != nil {
		t.Fatalf("ParseRaw: %v", err)
	}
	return layout.Render(p)
}

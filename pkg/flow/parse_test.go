package flow

import (
	"errors"
	"reflect"
	"testing"
)

func ids(nodes []NodeRef) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        []any
		wantPrefix []string
		wantSuffix []string
		wantFork   bool
		wantCols   int
	}{
		{
			name:       "PrefixSuffixSplit",
			raw:        []any{"A", "B", []any{[]any{"X"}, []any{"Y"}}, "C", "D"},
			wantPrefix: []string{"A", "B"},
			wantSuffix: []string{"C", "D"},
			wantFork:   true,
			wantCols:   2,
		},
		{
			name:       "NoFork",
			raw:        []any{"A", "B", "C"},
			wantPrefix: []string{"A", "B", "C"},
		},
		{
			name:     "ForkOnly",
			raw:      []any{[]any{[]any{"A"}}},
			wantFork: true,
			wantCols: 1,
		},
		{
			name:       "ForkWithoutSuffix",
			raw:        []any{"Start", []any{[]any{"A"}, []any{"B"}, []any{"C"}}},
			wantPrefix: []string{"Start"},
			wantFork:   true,
			wantCols:   3,
		},
		{
			name:     "EmptyForkIsStillAFork",
			raw:      []any{[]any{}, "After"},
			wantFork: true,
			wantCols: 0,
			// an empty array has no non-array element
			wantSuffix: []string{"After"},
		},
		{
			name: "Empty",
			raw:  []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseRaw(tt.raw)
			if err != nil {
				t.Fatalf("ParseRaw: %v", err)
			}
			if got := ids(p.Prefix); len(got)+len(tt.wantPrefix) > 0 && !reflect.DeepEqual(got, tt.wantPrefix) {
				t.Errorf("prefix = %v, want %v", got, tt.wantPrefix)
			}
			if got := ids(p.Suffix); len(got)+len(tt.wantSuffix) > 0 && !reflect.DeepEqual(got, tt.wantSuffix) {
				t.Errorf("suffix = %v, want %v", got, tt.wantSuffix)
			}
			if p.HasFork != tt.wantFork {
				t.Errorf("HasFork = %v, want %v", p.HasFork, tt.wantFork)
			}
			if len(p.Fork) != tt.wantCols {
				t.Errorf("columns = %d, want %d", len(p.Fork), tt.wantCols)
			}
			if p.HasSuffix != (len(tt.wantSuffix) > 0) {
				t.Errorf("HasSuffix = %v, want %v", p.HasSuffix, len(tt.wantSuffix) > 0)
			}
			if !p.HasFork && (p.Fork != nil || len(p.Suffix) != 0) {
				t.Errorf("no fork must imply nil fork and empty suffix, got fork=%v suffix=%v", p.Fork, p.Suffix)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		def      Definition
		wantKind error
		wantPath string
	}{
		{
			name:     "DuplicateFork",
			def:      Definition{Node("A"), Fork(Col(Node("B"))), Fork(Col(Node("C")))},
			wantKind: ErrMultipleForks,
			wantPath: "[2]",
		},
		{
			name:     "ColumnAfterFork",
			def:      Definition{Fork(Col(Node("B"))), Node("C"), Col(Node("D"))},
			wantKind: ErrMultipleForks,
			wantPath: "[2]",
		},
		{
			name:     "MalformedFork",
			def:      Definition{Node("A"), Col(Node("B"), Node("C"))},
			wantKind: ErrNotColumns,
			wantPath: "[1]",
		},
		{
			name:     "NilItem",
			def:      Definition{Node("A"), nil},
			wantKind: ErrUnrecognized,
			wantPath: "[1]",
		},
		{
			name:     "NilInsideColumn",
			def:      Definition{Fork(Col(Node("A")), Column{Node("B"), nil})},
			wantKind: ErrUnrecognized,
			wantPath: "[0][1][1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.def)
			if err == nil {
				t.Fatalf("Parse = %+v, want error", p)
			}
			if p != nil {
				t.Errorf("Parse returned partial result %+v", p)
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %v", err, tt.wantKind)
			}
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not a *StructuralError", err)
			}
			if se.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", se.Path, tt.wantPath)
			}
		})
	}
}

func TestParseRawStructuralErrors(t *testing.T) {
	// ["A", [["B"]], [["C"]]]
	_, err := ParseRaw([]any{"A", []any{[]any{"B"}}, []any{[]any{"C"}}})
	if !errors.Is(err, ErrMultipleForks) {
		t.Errorf("duplicate fork: error = %v, want %v", err, ErrMultipleForks)
	}

	// ["A", ["B","C"]]
	_, err = ParseRaw([]any{"A", []any{"B", "C"}})
	if !errors.Is(err, ErrNotColumns) {
		t.Errorf("malformed fork: error = %v, want %v", err, ErrNotColumns)
	}
	if !IsStructural(err) {
		t.Error("IsStructural = false, want true")
	}
}

func TestParseIdempotent(t *testing.T) {
	raw := []any{
		"Start",
		[]any{
			[]any{"A1", []any{[]any{"N1"}, []any{"N2"}}, "A2"},
			[]any{map[string]any{"id": "b", "title": "B"}},
		},
		"End",
	}
	p1, err := ParseRaw(raw)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	p2, err := ParseRaw(raw)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("parses differ:\n%+v\n%+v", p1, p2)
	}
}

func TestParseScenario(t *testing.T) {
	p, err := ParseRaw([]any{
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

	if got := ids(p.Prefix); !reflect.DeepEqual(got, []string{"Start"}) {
		t.Errorf("prefix = %v", got)
	}
	if got := ids(p.Suffix); !reflect.DeepEqual(got, []string{"Consolidate", "Complete"}) {
		t.Errorf("suffix = %v", got)
	}
	if !p.HasSuffix {
		t.Error("HasSuffix = false, want true")
	}
	if len(p.Fork) != 2 {
		t.Fatalf("columns = %d, want 2", len(p.Fork))
	}
	if len(p.Fork[0]) != 2 || len(p.Fork[1]) != 3 {
		t.Errorf("column lengths = %d, %d, want 2, 3", len(p.Fork[0]), len(p.Fork[1]))
	}
	if got := p.NodeCount(); got != 8 {
		t.Errorf("NodeCount = %d, want 8", got)
	}
	if got := p.ForkDepth(); got != 1 {
		t.Errorf("ForkDepth = %d, want 1", got)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on a malformed definition")
		}
	}()
	MustParse(Definition{Col(Node("A"))})
}

func TestForkDepth(t *testing.T) {
	p := MustParse(Definition{
		Fork(
			Col(Node("A"), Fork(Col(Node("B"), Fork(Col(Node("C"))))), Node("D")),
			Col(Node("E")),
		),
	})
	if got := p.ForkDepth(); got != 3 {
		t.Errorf("ForkDepth = %d, want 3", got)
	}
	if got := p.NodeCount(); got != 5 {
		t.Errorf("NodeCount = %d, want 5", got)
	}
}

package flow

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors for structural problems. A [*StructuralError] unwraps to
// exactly one of these, so callers can branch with errors.Is.
var (
	// ErrMultipleForks is returned when a definition holds more than one fork.
	ErrMultipleForks = errors.New("multiple fork definitions")

	// ErrNotColumns is returned when an array used as a fork has an element
	// that is not itself an array of items.
	ErrNotColumns = errors.New("expected array of columns, found non-column element")

	// ErrUnrecognized is returned for values that are neither a node
	// reference nor an array.
	ErrUnrecognized = errors.New("unrecognized item")
)

// StructuralError reports a malformed definition.
//
// Path locates the offending value using index notation relative to the
// definition root ("[2]", "[2][0][1]"). Item is a JSON rendering of the
// value, truncated for long inputs.
type StructuralError struct {
	Kind error
	Path string
	Item string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Item)
}

// Unwrap returns the sentinel describing the kind of problem.
func (e *StructuralError) Unwrap() error { return e.Kind }

// IsStructural reports whether err is (or wraps) a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

const maxItemLen = 120

func newStructuralError(kind error, path string, v any) *StructuralError {
	return &StructuralError{Kind: kind, Path: path, Item: describe(v)}
}

// describe renders v as compact JSON. Typed items are encoded back to their
// raw form first so messages look like the authored input.
func describe(v any) string {
	if item, ok := v.(Item); ok {
		v = encodeItem(item)
	}
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", v))
	}
	s := string(data)
	if len(s) > maxItemLen {
		cut := maxItemLen - 3
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}

func childPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

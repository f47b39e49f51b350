package flow

import "fmt"

// Keys recognized in object-form node references.
const (
	keyID      = "id"
	keyTitle   = "title"
	keyContent = "content"
	keyElement = "element" // accepted alias for content
)

// =============================================================================
// Decode - Raw → Typed
// =============================================================================

// Decode classifies an untyped definition tree into a [Definition].
//
// Accepted shapes:
//
//   - string: a node whose ID is the string
//   - map with a scalar "id" (optional string "title", optional "content"): a
//     node; numeric and boolean ids are formatted as strings
//   - array whose every element is an array: a fork ([ColumnsGroup])
//   - any other array at the top level: a [Column]; [Parse] rejects it with
//     [ErrNotColumns], matching how an authored definition fails
//
// Once a fork has been decoded, any further top-level array fails with
// [ErrMultipleForks] without its contents being inspected.
//
// Inside a column, an array must be a fork; any other array is reported as
// [ErrNotColumns]. Every other shape (numbers, booleans, nil, maps without
// an id) fails with [ErrUnrecognized]. Decode never returns a partial
// definition.
func Decode(raw []any) (Definition, error) {
	def := make(Definition, 0, len(raw))
	seenFork := false
	for i, v := range raw {
		path := childPath("", i)
		if _, ok := asSlice(v); ok && seenFork {
			return nil, newStructuralError(ErrMultipleForks, path, v)
		}
		item, err := decodeItem(v, path)
		if err != nil {
			return nil, err
		}
		if _, ok := item.(ColumnsGroup); ok {
			seenFork = true
		}
		def = append(def, item)
	}
	return def, nil
}

// ParseRaw decodes raw and parses the result in one step.
func ParseRaw(raw []any) (*Parsed, error) {
	def, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Parse(def)
}

func decodeItem(v any, path string) (Item, error) {
	if arr, ok := asSlice(v); ok {
		if allSlices(arr) {
			return decodeGroup(arr, path)
		}
		return decodeColumn(arr, path)
	}
	return decodeNode(v, path)
}

func decodeColumnItem(v any, path string) (ColumnItem, error) {
	if arr, ok := asSlice(v); ok {
		if !allSlices(arr) {
			return nil, newStructuralError(ErrNotColumns, path, v)
		}
		return decodeGroup(arr, path)
	}
	return decodeNode(v, path)
}

func decodeGroup(arr []any, path string) (ColumnsGroup, error) {
	group := make(ColumnsGroup, 0, len(arr))
	for i, v := range arr {
		colArr, _ := asSlice(v)
		col, err := decodeColumn(colArr, childPath(path, i))
		if err != nil {
			return nil, err
		}
		group = append(group, col)
	}
	return group, nil
}

func decodeColumn(arr []any, path string) (Column, error) {
	col := make(Column, 0, len(arr))
	for i, v := range arr {
		item, err := decodeColumnItem(v, childPath(path, i))
		if err != nil {
			return nil, err
		}
		col = append(col, item)
	}
	return col, nil
}

func decodeNode(v any, path string) (NodeRef, error) {
	switch n := v.(type) {
	case string:
		return NodeRef{ID: n}, nil
	case NodeRef:
		return n, nil
	}

	m, ok := asMap(v)
	if !ok {
		return NodeRef{}, newStructuralError(ErrUnrecognized, path, v)
	}
	id, ok := scalarID(m[keyID])
	if !ok {
		return NodeRef{}, newStructuralError(ErrUnrecognized, path, v)
	}
	node := NodeRef{ID: id, Content: m[keyContent]}
	if node.Content == nil {
		node.Content = m[keyElement]
	}
	if t, present := m[keyTitle]; present && t != nil {
		title, ok := t.(string)
		if !ok {
			return NodeRef{}, newStructuralError(ErrUnrecognized, path, v)
		}
		node.Title = title
	}
	return node, nil
}

// scalarID formats a node id. Missing, nil and composite ids are rejected.
func scalarID(v any) (string, bool) {
	switch id := v.(type) {
	case nil:
		return "", false
	case string:
		return id, true
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(id), true
	}
	return "", false
}

// asSlice accepts the slice types produced by the JSON, YAML and TOML
// decoders used in pkg/io.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	case []string:
		out := make([]any, len(s))
		for i, str := range s {
			out[i] = str
		}
		return out, true
	}
	return nil, false
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// allSlices reports whether every element of arr is an array. An empty
// array qualifies, so [] decodes as a fork with no columns.
func allSlices(arr []any) bool {
	for _, v := range arr {
		if _, ok := asSlice(v); !ok {
			return false
		}
	}
	return true
}

// =============================================================================
// Encode - Typed → Raw
// =============================================================================

// Encode converts a Definition back to its untyped form. Nodes without a
// title or content encode as plain strings; others as maps.
func Encode(def Definition) []any {
	out := make([]any, len(def))
	for i, item := range def {
		out[i] = encodeItem(item)
	}
	return out
}

func encodeItem(item Item) any {
	switch v := item.(type) {
	case NodeRef:
		return encodeNode(v)
	case Column:
		return encodeColumn(v)
	case ColumnsGroup:
		return encodeGroup(v)
	}
	return nil
}

func encodeNode(n NodeRef) any {
	if n.Title == "" && n.Content == nil {
		return n.ID
	}
	m := map[string]any{keyID: n.ID}
	if n.Title != "" {
		m[keyTitle] = n.Title
	}
	if n.Content != nil {
		m[keyContent] = n.Content
	}
	return m
}

func encodeColumn(col Column) []any {
	out := make([]any, len(col))
	for i, item := range col {
		out[i] = encodeItem(item)
	}
	return out
}

func encodeGroup(g ColumnsGroup) []any {
	out := make([]any, len(g))
	for i, col := range g {
		out[i] = encodeColumn(col)
	}
	return out
}

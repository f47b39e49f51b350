package sink

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
)

// MarshalJSON exports the tree as a pretty-printed JSON document. This is
// the interchange format for external renderers: every node, container,
// column and connector carries its final coordinates, so a consumer only
// has to draw.
//
// It does not modify t and is safe to call concurrently.
func MarshalJSON(t *layout.Tree, opts ...ExportOption) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(newEnvelope(t, opts)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an envelope written by [MarshalJSON].
func UnmarshalJSON(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

package sink

import (
	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
)

// FormatVersion is the version of the exported layout envelope. Decoders
// reject envelopes written with a different version.
const FormatVersion = 1

// Envelope is the serialized form of a layout tree. Stats are derived from
// the tree at export time and kept for consumers that only need counts.
type Envelope struct {
	Version int          `json:"version"`
	Style   string       `json:"style,omitempty"`
	Title   string       `json:"title,omitempty"`
	Stats   layout.Stats `json:"stats"`
	Tree    *layout.Tree `json:"tree"`
}

// ExportOption configures [MarshalJSON] and [MarshalCBOR].
type ExportOption func(*Envelope)

// WithExportStyle records the style name the tree is meant to be drawn
// with, so a later render can reproduce it.
func WithExportStyle(name string) ExportOption { return func(e *Envelope) { e.Style = name } }

// WithExportTitle records the document title.
func WithExportTitle(title string) ExportOption { return func(e *Envelope) { e.Title = title } }

func newEnvelope(t *layout.Tree, opts []ExportOption) *Envelope {
	e := &Envelope{Version: FormatVersion, Stats: t.Stats(), Tree: t}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Envelope) validate() error {
	if e.Version != FormatVersion {
		return errors.New(errors.ErrCodeUnsupported, "layout format version %d (want %d)", e.Version, FormatVersion)
	}
	if e.Tree == nil {
		return errors.New(errors.ErrCodeInvalidInput, "layout has no tree")
	}
	return nil
}

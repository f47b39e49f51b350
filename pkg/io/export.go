package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow"
)

// document is the object form written by Marshal. Field order is the
// order keys appear in the output.
type document struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Graph       []any  `json:"graph" yaml:"graph"`
}

// Marshal encodes doc in the given format. JSON and JSONC produce the same
// indented JSON; YAML uses two-space indentation. TOML export is not
// supported because TOML cannot express the mixed arrays a graph uses
// without inline-table rewriting.
func Marshal(doc *Document, format Format) ([]byte, error) {
	out := document{
		Title:       doc.Title,
		Description: doc.Description,
		Graph:       flow.Encode(doc.Graph),
	}

	var buf bytes.Buffer
	switch format {
	case FormatJSON, FormatJSONC:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(out); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		return nil, errors.New(errors.ErrCodeUnsupported, "writing TOML definitions is not supported")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q", format)
	}
	return buf.Bytes(), nil
}

// Write encodes doc in the given format and writes it to w.
func Write(w io.Writer, doc *Document, format Format) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes doc to path in the format implied by its extension.
func WriteFile(path string, doc *Document) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

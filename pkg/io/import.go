package io

import (
	"bytes"
	"cmp"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow"
)

// Keys of the object document form.
const (
	keyTitle       = "title"
	keyDescription = "description"
	keyGraph       = "graph"
)

// Read decodes a document in the given format from r.
//
// The body may be a bare graph array or an object with "title",
// "description" and "graph" keys. Read returns an error if the body is not
// valid in the format, if the object form has no "graph" array, or if the
// graph contains an element [flow.Decode] does not recognize. Structural
// errors stay reachable through errors.Is and errors.As.
//
// The returned document has an empty Name; [ReadFile] fills it in. Read
// does not close r.
func Read(r io.Reader, format Format) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return decodeDocument(src, format)
}

// ReadFile reads the document at path. The format is taken from the file
// extension. A missing file yields an error with code FILE_NOT_FOUND.
func ReadFile(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := decodeDocument(src, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Name = nameFromPath(path)
	return doc, nil
}

// ReadDir reads every definition file directly inside dir, sorted by file
// name. Subdirectories and files with other extensions are skipped. The
// first unreadable document aborts the scan.
func ReadDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read directory %s", dir)
		}
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var docs []*Document
	for _, e := range entries {
		if e.IsDir() || !IsDefinitionFile(e.Name()) {
			continue
		}
		doc, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	slices.SortFunc(docs, func(a, b *Document) int { return cmp.Compare(a.Name, b.Name) })
	return docs, nil
}

func decodeDocument(src []byte, format Format) (*Document, error) {
	raw, err := decodeRaw(src, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", format)
	}

	doc := &Document{Source: src, Format: format}
	var graph []any
	switch v := raw.(type) {
	case []any:
		graph = v
	case map[string]any:
		if graph, err = documentFields(doc, v); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document must be a graph array or an object with a %q key", keyGraph)
	}

	def, err := flow.Decode(graph)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "graph")
	}
	doc.Graph = def
	return doc, nil
}

func documentFields(doc *Document, m map[string]any) ([]any, error) {
	for _, f := range []struct {
		key string
		dst *string
	}{
		{keyTitle, &doc.Title},
		{keyDescription, &doc.Description},
	} {
		v, ok := m[f.key]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%q must be a string", f.key)
		}
		*f.dst = s
	}

	v, ok := m[keyGraph]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no %q key", keyGraph)
	}
	graph, ok := asArray(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%q must be an array", keyGraph)
	}
	return graph, nil
}

// decodeRaw unmarshals src into the generic value tree of the format.
func decodeRaw(src []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatJSON:
		if err := unmarshalJSON(src, &raw); err != nil {
			return nil, err
		}
	case FormatJSONC:
		if err := unmarshalJSON(jsonc.ToJSON(src), &raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(src, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		var m map[string]any
		if _, err := toml.Decode(string(src), &m); err != nil {
			return nil, err
		}
		raw = m
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q", format)
	}
	return raw, nil
}

// unmarshalJSON rejects trailing data after the first value.
func unmarshalJSON(src []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(src))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after the document")
	}
	return nil
}

// asArray accepts the array types the decoders above produce for "graph".
func asArray(v any) ([]any, bool) {
	switch a := v.(type) {
	case []any:
		return a, true
	case []map[string]any:
		out := make([]any, len(a))
		for i, m := range a {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

package io

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow"
)

// Format is a definition file format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// Formats lists every readable format.
var Formats = []Format{FormatJSON, FormatJSONC, FormatYAML, FormatTOML}

var formatByExt = map[string]Format{
	".json":  FormatJSON,
	".jsonc": FormatJSONC,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
	".toml":  FormatTOML,
}

// Extensions returns the recognized definition file extensions without
// the leading dot, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(formatByExt))
	for ext := range formatByExt {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	slices.Sort(exts)
	return exts
}

// ParseFormat validates a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		return FormatYAML, nil
	}
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q (want json, jsonc, yaml or toml)", s)
	}
	return f, nil
}

// DetectFormat returns the format implied by a file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatByExt[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect definition format of %s", path)
}

// IsDefinitionFile reports whether path has a supported extension.
func IsDefinitionFile(path string) bool {
	_, err := DetectFormat(path)
	return err == nil
}

// Document is a flow graph with its presentation metadata.
type Document struct {
	Name        string          // file name without extension
	Title       string          // display title, optional
	Description string          // markdown, optional
	Graph       flow.Definition // the graph itself
	Source      []byte          // raw file contents as read
	Format      Format          // format Source is written in
}

// DisplayTitle returns Title, falling back to Name.
func (d *Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Parse normalizes the document's graph.
func (d *Document) Parse() (*flow.Parsed, error) {
	return flow.Parse(d.Graph)
}

// nameFromPath strips directory and extension.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/flowdiagram/pkg/cache"
	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
)

// Parse normalizes a document's graph. Structural failures carry the
// INVALID_STRUCTURE code and stay matchable with errors.Is against the
// flow sentinels.
func Parse(doc *flowio.Document) (*flow.Parsed, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no document")
	}
	p, err := doc.Parse()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "parse %s", doc.DisplayTitle())
	}
	return p, nil
}

// DefinitionHash hashes the normalized graph. Documents that differ only
// in format, whitespace or comments hash the same.
func DefinitionHash(p *flow.Parsed) string {
	raw := flow.Encode(Normalized(p))
	data, err := json.Marshal(raw)
	if err != nil {
		// YAML content with non-string map keys has no JSON form.
		data = []byte(fmt.Sprintf("%#v", raw))
	}
	return cache.Hash(data)
}

// DocumentHash hashes the parts of a document an HTML page embeds besides
// the diagram.
func DocumentHash(doc *flowio.Document) string {
	data, _ := json.Marshal([]any{doc.DisplayTitle(), doc.Description, doc.Format, string(doc.Source)})
	return cache.Hash(data)
}

// Normalized rebuilds a definition from the parsed parts: the prefix
// nodes, the fork if any, then the suffix nodes.
func Normalized(p *flow.Parsed) flow.Definition {
	def := make(flow.Definition, 0, len(p.Prefix)+len(p.Suffix)+1)
	for _, n := range p.Prefix {
		def = append(def, n)
	}
	if p.HasFork {
		def = append(def, p.Fork)
	}
	for _, n := range p.Suffix {
		def = append(def, n)
	}
	return def
}

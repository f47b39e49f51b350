package pipeline

import (
	"github.com/matzehuels/flowdiagram/pkg/flow"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	"github.com/matzehuels/flowdiagram/pkg/flow/sink"
)

// GenerateLayout positions a parsed graph with the options' geometry. The
// same tree serves both viz types: nodelink output is drawn from the
// parsed graph, and the tree still backs JSON, CBOR and the stats line.
func GenerateLayout(p *flow.Parsed, opts Options) *layout.Tree {
	return layout.Render(p, layout.WithGeometry(opts.Geometry))
}

// marshalLayout is the cache encoding of a tree.
func marshalLayout(t *layout.Tree) ([]byte, error) {
	return sink.MarshalCBOR(t)
}

// unmarshalLayout reads a tree written by marshalLayout.
func unmarshalLayout(data []byte) (*layout.Tree, error) {
	e, err := sink.UnmarshalCBOR(data)
	if err != nil {
		return nil, err
	}
	return e.Tree, nil
}

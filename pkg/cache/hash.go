package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a BLAKE3-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Keyer derives cache keys for the two cached stages.
type Keyer interface {
	// LayoutKey keys a computed layout tree by definition hash and the
	// options that change positions.
	LayoutKey(defHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered output by layout hash and the options
	// that change the bytes written.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs besides the definition. Geometry is
// hashed through its JSON form.
type LayoutKeyOpts struct {
	VizType  string `json:"viz_type"`
	Geometry any    `json:"geometry,omitempty"`
}

// ArtifactKeyOpts are the render inputs besides the layout. Document is
// the hash of whatever the artifact embeds from the source document
// beyond the tree, such as the description and source of an HTML page.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	VizType  string  `json:"viz_type,omitempty"`
	Style    string  `json:"style,omitempty"`
	Title    string  `json:"title,omitempty"`
	Frames   bool    `json:"frames,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Document string  `json:"document,omitempty"`
}

// DefaultKeyer is the standard key scheme: "layout:<hash>" and
// "artifact:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(defHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", defHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

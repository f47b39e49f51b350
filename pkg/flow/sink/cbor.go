package sink

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
)

// CBOR modes shared by every call. Encoding uses Core Deterministic
// Encoding (RFC 8949 §4.2), so the same tree always produces the same
// bytes and exports can be hashed or cached by content. Decoding turns
// untyped maps (node content) into map[string]any, matching what the JSON
// decoder produces.
var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor: failed to create encoding mode: " + err.Error())
	}
	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cbor: failed to create decoding mode: " + err.Error())
	}
}

// MarshalCBOR exports the tree as deterministic CBOR. The structure is the
// same as [MarshalJSON], keyed by the JSON field names.
func MarshalCBOR(t *layout.Tree, opts ...ExportOption) ([]byte, error) {
	data, err := cborEncMode.Marshal(newEnvelope(t, opts))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return data, nil
}

// UnmarshalCBOR reads an envelope written by [MarshalCBOR].
func UnmarshalCBOR(data []byte) (*Envelope, error) {
	var e Envelope
	if err := cborDecMode.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

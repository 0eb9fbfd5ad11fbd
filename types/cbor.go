package types

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

/*
Cbor is the codec of the wire format. Encoding is canonical so the same
value always serializes to the same bytes, which is what signatures and
message hashes are computed over.
*/
var Cbor = newCborHandler()

type cborHandler struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCborHandler() cborHandler {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("creating CBOR encoder: %w", err))
	}
	dec, err := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Errorf("creating CBOR decoder: %w", err))
	}
	return cborHandler{enc: enc, dec: dec}
}

func (c cborHandler) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c cborHandler) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}

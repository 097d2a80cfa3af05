package core

import (
	"crypto/sha256"

	"github.com/fxamacker/cbor/v2"
)

// canonicalEncMode is the single deterministic CBOR encoder used for every
// wire body, persisted record, and OperationId hash input: sorted map keys,
// minimal integer widths, no indefinite-length items. Any two runtime
// replicas must derive the same bytes from the same Go value, which is the
// whole point of §4.4's "canonical hashing" requirement — so this mode is
// built once and reused everywhere rather than re-derived per call site.
var canonicalEncMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("bridge: building canonical CBOR encoder: " + err.Error())
	}
	return mode
}()

// strictDecMode rejects unknown fields, per §6.2: "Unknown fields in a
// request body are rejected." Used only for decoding dispatch request
// bodies, not for round-tripping our own persisted records.
var strictDecMode = func() cbor.DecMode {
	mode, err := cbor.DecOptions{ExtraReturnErrors: cbor.ExtraDecErrorUnknownField}.DecMode()
	if err != nil {
		panic("bridge: building strict CBOR decoder: " + err.Error())
	}
	return mode
}()

func encodeCBOR(v interface{}) ([]byte, error) {
	return canonicalEncMode.Marshal(v)
}

func decodeCBOR(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}

func decodeRequestBody(data []byte, v interface{}) error {
	return strictDecMode.Unmarshal(data, v)
}

// hashOperation computes the OperationId: the SHA-256 digest of the
// canonical CBOR encoding of op. Deterministic field ordering and minimal
// integer encoding are guaranteed by canonicalEncMode, so the same Release
// body always yields the same OperationId regardless of how its Go value
// was constructed (§8 P5).
func hashOperation(op Operation) (OperationId, error) {
	raw, err := encodeCBOR(op)
	if err != nil {
		return OperationId{}, err
	}
	return OperationId(sha256.Sum256(raw)), nil
}

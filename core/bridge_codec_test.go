package core

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestHashOperationDeterministic(t *testing.T) {
	op := NewReleaseOperation(42, addrFromByte(1), Amount{Quantity: 1000, Denomination: "oETH"})

	id1, err := hashOperation(op)
	if err != nil {
		t.Fatalf("hashOperation: %v", err)
	}
	id2, err := hashOperation(op)
	if err != nil {
		t.Fatalf("hashOperation: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("hashOperation not deterministic: %s != %s", id1, id2)
	}

	other := NewReleaseOperation(42, addrFromByte(1), Amount{Quantity: 2000, Denomination: "oETH"})
	id3, err := hashOperation(other)
	if err != nil {
		t.Fatalf("hashOperation: %v", err)
	}
	if id1 == id3 {
		t.Fatal("distinct operations must hash to distinct ids")
	}
}

func TestStrictDecodeRejectsUnknownFields(t *testing.T) {
	raw, err := encodeCBOR(map[string]interface{}{"id": uint64(1), "sig": []byte{0x01}, "bogus": true})
	if err != nil {
		t.Fatalf("encodeCBOR: %v", err)
	}
	var req WitnessRequest
	if err := decodeRequestBody(raw, &req); err == nil {
		t.Fatal("expected an error decoding a body with an unknown field")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	slot := &OutgoingSlot{
		ID:         7,
		Op:         NewLockOperation(RemoteAddress{0xaa}, Amount{Quantity: 5, Denomination: "NATIVE"}),
		Witnesses:  []uint16{0, 1},
		Signatures: [][]byte{{0x01}, {0x02}},
	}
	raw, err := encodeCBOR(slot)
	if err != nil {
		t.Fatalf("encodeCBOR: %v", err)
	}
	var out OutgoingSlot
	if err := decodeCBOR(raw, &out); err != nil {
		t.Fatalf("decodeCBOR: %v", err)
	}
	if out.ID != slot.ID || len(out.Witnesses) != 2 || len(out.Signatures) != 2 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestOperationExternallyTagged(t *testing.T) {
	lockOp := NewLockOperation(RemoteAddress{0xaa}, Amount{Quantity: 5, Denomination: "NATIVE"})
	raw, err := encodeCBOR(lockOp)
	if err != nil {
		t.Fatalf("encodeCBOR: %v", err)
	}

	var wire map[string]cbor.RawMessage
	if err := cbor.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("decoding as a tagged map: %v", err)
	}
	if len(wire) != 1 {
		t.Fatalf("expected exactly one variant key on the wire, got %d", len(wire))
	}
	if _, ok := wire["lock"]; !ok {
		t.Fatalf("expected the \"lock\" variant key, got %v", wire)
	}

	var out Operation
	if err := decodeCBOR(raw, &out); err != nil {
		t.Fatalf("decodeCBOR: %v", err)
	}
	if out.Kind != OpLock || out.LockTarget != lockOp.LockTarget || out.LockAmount != lockOp.LockAmount {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	releaseOp := NewReleaseOperation(9, addrFromByte(1), Amount{Quantity: 7, Denomination: "oETH"})
	raw, err = encodeCBOR(releaseOp)
	if err != nil {
		t.Fatalf("encodeCBOR: %v", err)
	}
	wire = nil
	if err := cbor.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("decoding as a tagged map: %v", err)
	}
	if _, ok := wire["release"]; !ok || len(wire) != 1 {
		t.Fatalf("expected exactly the \"release\" variant key, got %v", wire)
	}

	var outRelease Operation
	if err := decodeCBOR(raw, &outRelease); err != nil {
		t.Fatalf("decodeCBOR: %v", err)
	}
	if outRelease.Kind != OpRelease || outRelease.ReleaseID != releaseOp.ReleaseID ||
		outRelease.ReleaseTarget != releaseOp.ReleaseTarget || outRelease.ReleaseAmount != releaseOp.ReleaseAmount {
		t.Fatalf("round trip mismatch: %+v", outRelease)
	}
}

func TestOperationUnmarshalRejectsBadVariant(t *testing.T) {
	raw, err := encodeCBOR(map[string]interface{}{"lock": map[string]interface{}{}, "release": map[string]interface{}{}})
	if err != nil {
		t.Fatalf("encodeCBOR: %v", err)
	}
	var out Operation
	if err := decodeCBOR(raw, &out); err == nil {
		t.Fatal("expected an error decoding an Operation with two variant keys")
	}

	raw, err = encodeCBOR(map[string]interface{}{"bogus": map[string]interface{}{}})
	if err != nil {
		t.Fatalf("encodeCBOR: %v", err)
	}
	if err := decodeCBOR(raw, &out); err == nil {
		t.Fatal("expected an error decoding an Operation with an unknown variant key")
	}
}

package core

import (
	"encoding/binary"
	"fmt"
)

// Key layout (§6.3): module prefix + one-byte sub-prefix + per-record key.
// Big-endian is mandatory for the id suffix so lexicographic iteration
// matches numeric order.
var bridgeKeyPrefix = []byte("bridge/")

const (
	subPrefixParameters    = 0x00
	subPrefixNextOutSeq    = 0x01
	subPrefixNextInSeq     = 0x02
	subPrefixOutgoingSlots = 0x03
	subPrefixIncomingSlots = 0x04
)

func bridgeKey(subPrefix byte, rest ...[]byte) []byte {
	size := len(bridgeKeyPrefix) + 1
	for _, r := range rest {
		size += len(r)
	}
	key := make([]byte, 0, size)
	key = append(key, bridgeKeyPrefix...)
	key = append(key, subPrefix)
	for _, r := range rest {
		key = append(key, r...)
	}
	return key
}

func seqKey(id uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	return buf
}

func parametersKey() []byte    { return bridgeKey(subPrefixParameters) }
func nextOutSeqKey() []byte    { return bridgeKey(subPrefixNextOutSeq) }
func nextInSeqKey() []byte     { return bridgeKey(subPrefixNextInSeq) }
func outgoingSlotKey(id uint64) []byte { return bridgeKey(subPrefixOutgoingSlots, seqKey(id)) }
func incomingSlotKey(id uint64) []byte { return bridgeKey(subPrefixIncomingSlots, seqKey(id)) }

// getParameters loads the genesis-installed Parameters. Callers never
// mutate the result: Parameters are immutable after genesis (§2).
func getParameters() (Parameters, error) {
	raw, err := CurrentStore().Get(parametersKey())
	if err != nil {
		return Parameters{}, err
	}
	if raw == nil {
		return DefaultParameters(), nil
	}
	var p Parameters
	if err := decodeCBOR(raw, &p); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

func setParameters(p Parameters) error {
	raw, err := encodeCBOR(p)
	if err != nil {
		return err
	}
	return CurrentStore().Set(parametersKey(), raw)
}

// getUint64 reads a persisted counter, defaulting to 0 for an absent key
// (NEXT_OUT_SEQUENCE / NEXT_IN_SEQUENCE default to 0, §3).
func getUint64(key []byte) (uint64, error) {
	raw, err := CurrentStore().Get(key)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, fmt.Errorf("bridge: corrupt counter at %x", key)
	}
	return binary.BigEndian.Uint64(raw), nil
}

func setUint64(key []byte, v uint64) error {
	return CurrentStore().Set(key, seqKey(v))
}

func getNextOutSequence() (uint64, error) { return getUint64(nextOutSeqKey()) }
func setNextOutSequence(v uint64) error   { return setUint64(nextOutSeqKey(), v) }
func getNextInSequence() (uint64, error)  { return getUint64(nextInSeqKey()) }
func setNextInSequence(v uint64) error    { return setUint64(nextInSeqKey(), v) }

func getOutgoingSlot(id uint64) (*OutgoingSlot, error) {
	raw, err := CurrentStore().Get(outgoingSlotKey(id))
	if err != nil || raw == nil {
		return nil, err
	}
	var slot OutgoingSlot
	if err := decodeCBOR(raw, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func setOutgoingSlot(slot *OutgoingSlot) error {
	raw, err := encodeCBOR(slot)
	if err != nil {
		return err
	}
	return CurrentStore().Set(outgoingSlotKey(slot.ID), raw)
}

func deleteOutgoingSlot(id uint64) error {
	return CurrentStore().Delete(outgoingSlotKey(id))
}

func getIncomingSlot(id uint64) (*IncomingSlot, error) {
	raw, err := CurrentStore().Get(incomingSlotKey(id))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return newIncomingSlot(), nil
	}
	var wire incomingSlotWire
	if err := decodeCBOR(raw, &wire); err != nil {
		return nil, err
	}
	slot := newIncomingSlot()
	slot.Witnesses = wire.Witnesses
	for _, b := range wire.Buckets {
		b := b
		slot.Ops[b.ID] = &b
	}
	return slot, nil
}

// incomingSlotWire is the persisted shape of an IncomingSlot: CBOR maps
// with a non-comparable key type (OperationId is an array and is fine as a
// map key in Go, but encoding a Go map keyed by a byte array is needlessly
// fragile across CBOR implementations) are sidestepped by persisting the
// buckets as a slice and rebuilding the map on load.
type incomingSlotWire struct {
	Witnesses []uint16         `cbor:"wits"`
	Buckets   []IncomingBucket `cbor:"ops"`
}

func setIncomingSlot(id uint64, slot *IncomingSlot) error {
	wire := incomingSlotWire{Witnesses: slot.Witnesses}
	for _, b := range slot.Ops {
		wire.Buckets = append(wire.Buckets, *b)
	}
	raw, err := encodeCBOR(wire)
	if err != nil {
		return err
	}
	return CurrentStore().Set(incomingSlotKey(id), raw)
}

func deleteIncomingSlot(id uint64) error {
	return CurrentStore().Delete(incomingSlotKey(id))
}

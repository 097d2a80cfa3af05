package core

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// RemoteAddress is a fixed 20-byte opaque identifier on the remote chain:
// hex-encoded in human-readable form, raw bytes in binary form. Unlike
// Address it is never resolved against a local account — it is only ever
// handed back to the remote chain by an off-chain relayer.
type RemoteAddress [20]byte

func (r RemoteAddress) String() string { return hex.EncodeToString(r[:]) }

// UnmarshalCBOR rejects a byte string that is not exactly 20 bytes long,
// so a short or long remote address never decodes silently.
func (r *RemoteAddress) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("bridge: decoding RemoteAddress: %w", err)
	}
	if len(b) != len(r) {
		return fmt.Errorf("bridge: remote address: want %d bytes, got %d", len(r), len(b))
	}
	copy(r[:], b)
	return nil
}

// Amount pairs a quantity with the denomination it is expressed in.
type Amount struct {
	Quantity     uint64       `cbor:"qty"`
	Denomination Denomination `cbor:"denom"`
}

// OpKind discriminates the two Operation variants in memory. It never
// reaches the wire: MarshalCBOR/UnmarshalCBOR below encode Operation as an
// externally-tagged one-key map ("lock"/"release"), matching
// original_source's `#[serde(rename = "lock"/"release")] enum Operation`
// (§9's "stable variant tags" contract).
type OpKind uint8

const (
	OpLock OpKind = iota + 1
	OpRelease
)

// Operation is the tagged payload of a signature-collection slot and the
// input to canonical hashing (§3, §4.4). Exactly one of the two variants is
// populated, selected by Kind.
type Operation struct {
	Kind OpKind

	// Lock fields.
	LockTarget RemoteAddress
	LockAmount Amount

	// Release fields.
	ReleaseID     uint64
	ReleaseTarget Address
	ReleaseAmount Amount
}

// lockPayload and releasePayload are Operation's two wire shapes: only the
// fields of the active variant are ever encoded, exactly as
// original_source's `Operation::Lock(Lock)` / `Operation::Release(Release)`
// externally-tagged enum serializes only its active arm.
type lockPayload struct {
	Target RemoteAddress `cbor:"target"`
	Amount Amount        `cbor:"amount"`
}

type releasePayload struct {
	ID     uint64  `cbor:"id"`
	Target Address `cbor:"target"`
	Amount Amount  `cbor:"amount"`
}

// MarshalCBOR encodes op as a one-key map keyed by its stable variant tag
// ("lock"/"release"), using the package's canonical encoder so that the
// OperationId hash (§4.4) stays byte-for-byte deterministic across
// replicas regardless of how the Go value was constructed (§8 P5).
func (op Operation) MarshalCBOR() ([]byte, error) {
	switch op.Kind {
	case OpLock:
		return canonicalEncMode.Marshal(map[string]lockPayload{
			"lock": {Target: op.LockTarget, Amount: op.LockAmount},
		})
	case OpRelease:
		return canonicalEncMode.Marshal(map[string]releasePayload{
			"release": {ID: op.ReleaseID, Target: op.ReleaseTarget, Amount: op.ReleaseAmount},
		})
	default:
		return nil, fmt.Errorf("bridge: cannot encode Operation with unknown kind %d", op.Kind)
	}
}

// UnmarshalCBOR decodes the externally-tagged map MarshalCBOR produces,
// rejecting anything that isn't exactly one of "lock"/"release" (mirrors
// original_source's `#[serde(deny_unknown_fields)]` on the enum).
func (op *Operation) UnmarshalCBOR(data []byte) error {
	var wire map[string]cbor.RawMessage
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("bridge: decoding Operation: %w", err)
	}
	if len(wire) != 1 {
		return fmt.Errorf("bridge: Operation must have exactly one variant key, got %d", len(wire))
	}
	if raw, ok := wire["lock"]; ok {
		var p lockPayload
		if err := cbor.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("bridge: decoding Operation lock variant: %w", err)
		}
		*op = Operation{Kind: OpLock, LockTarget: p.Target, LockAmount: p.Amount}
		return nil
	}
	if raw, ok := wire["release"]; ok {
		var p releasePayload
		if err := cbor.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("bridge: decoding Operation release variant: %w", err)
		}
		*op = Operation{Kind: OpRelease, ReleaseID: p.ID, ReleaseTarget: p.Target, ReleaseAmount: p.Amount}
		return nil
	}
	return fmt.Errorf("bridge: Operation has unknown variant key")
}

// NewLockOperation builds the Operation carried by an outgoing slot.
func NewLockOperation(target RemoteAddress, amount Amount) Operation {
	return Operation{Kind: OpLock, LockTarget: target, LockAmount: amount}
}

// NewReleaseOperation builds the Operation a Release call proposes.
func NewReleaseOperation(id uint64, target Address, amount Amount) Operation {
	return Operation{Kind: OpRelease, ReleaseID: id, ReleaseTarget: target, ReleaseAmount: amount}
}

// OperationId is the canonical-binary hash of an Operation (§3). Two
// attestations proposing different Operation values for the same incoming
// sequence number produce distinct OperationIds, which is exactly the
// mechanism the incoming state machine uses to bucket divergent proposals.
type OperationId [32]byte

func (id OperationId) String() string { return hex.EncodeToString(id[:]) }

// OutgoingSlot tracks signature collection for one allocated outgoing id.
// Deleted the instant threshold is reached (§4.3); the terminal event
// carries its last contents.
type OutgoingSlot struct {
	ID         uint64   `cbor:"id"`
	Op         Operation `cbor:"op"`
	Witnesses  []uint16  `cbor:"wits"`
	Signatures [][]byte  `cbor:"sigs"`
}

// IncomingBucket isolates one divergent proposal for an incoming sequence
// id, keyed by OperationId at the slot level (§3, §4.4).
type IncomingBucket struct {
	ID        OperationId `cbor:"id"`
	Op        Operation   `cbor:"op"`
	Witnesses []uint16    `cbor:"wits"`
}

// IncomingSlot tracks every witness that has attested *any* proposal for an
// incoming sequence id, plus the per-proposal buckets. Witnesses is the
// union across all buckets and is what the slot-level uniqueness check
// (§4.4 step 6) is enforced against; it is what makes a single Byzantine
// witness unable to vote in more than one bucket for the same slot.
type IncomingSlot struct {
	Witnesses []uint16               `cbor:"wits"`
	Ops       map[OperationId]*IncomingBucket `cbor:"ops"`
}

func newIncomingSlot() *IncomingSlot {
	return &IncomingSlot{Ops: make(map[OperationId]*IncomingBucket)}
}

// Event codes, §6.4.
const (
	EventCodeLock            = 1
	EventCodeRelease         = 2
	EventCodeWitnessesSigned = 3
)

// LockEvent is emitted on a successful Lock (§4.2 step 7). CorrelationID is
// an off-chain tracing aid only: it plays no role in sequencing or
// idempotence, both of which stay keyed on ID.
type LockEvent struct {
	ID            uint64        `cbor:"id"`
	Owner         Address       `cbor:"owner"`
	Target        RemoteAddress `cbor:"target"`
	Amount        Amount        `cbor:"amount"`
	CorrelationID string        `cbor:"cid"`
}

// ReleaseEvent is emitted on a successful Release finalization (§4.4 step 10).
type ReleaseEvent struct {
	ID            uint64  `cbor:"id"`
	Target        Address `cbor:"target"`
	Amount        Amount  `cbor:"amount"`
	CorrelationID string  `cbor:"cid"`
}

// WitnessesSignedEvent is emitted once an outgoing slot reaches threshold
// (§4.3 step 7); it is the off-chain signal to submit a remote release.
type WitnessesSignedEvent struct {
	ID            uint64   `cbor:"id"`
	Witnesses     []uint16 `cbor:"wits"`
	Signatures    [][]byte `cbor:"sigs"`
	CorrelationID string   `cbor:"cid"`
}

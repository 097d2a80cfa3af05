package core

import (
	"fmt"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
)

var bridgeLog = logrus.WithField("module", "bridge")

// LockRequest is the body of bridge.Lock.
type LockRequest struct {
	Target RemoteAddress `cbor:"target"`
	Amount Amount        `cbor:"amount"`
}

// LockResult is the result of bridge.Lock.
type LockResult struct {
	ID uint64 `cbor:"id"`
}

// Lock implements §4.2: the user locks assets locally so witnesses can
// co-sign a remote mint/release.
func Lock(ctx *Context, req LockRequest) (LockResult, error) {
	params, err := getParameters()
	if err != nil {
		return LockResult{}, err
	}

	state, _ := params.classify(req.Amount.Denomination)
	if state == denomUnknown {
		return LockResult{}, errUnsupportedDenomination(string(req.Amount.Denomination))
	}

	if ctx.CheckMode {
		return LockResult{}, nil
	}

	// The debit must precede sequence allocation: a failed transfer must
	// consume no id (§4.2 tie-break note).
	if err := ctx.Ledger.Transfer(ctx.Caller, custodyAddress, req.Amount.Denomination, req.Amount.Quantity); err != nil {
		return LockResult{}, mapAccountsError(err)
	}

	id, err := getNextOutSequence()
	if err != nil {
		return LockResult{}, err
	}
	if err := setNextOutSequence(id + 1); err != nil {
		return LockResult{}, err
	}

	slot := &OutgoingSlot{
		ID:        id,
		Op:        NewLockOperation(req.Target, req.Amount),
		Witnesses: []uint16{},
		Signatures: [][]byte{},
	}
	if err := setOutgoingSlot(slot); err != nil {
		return LockResult{}, err
	}
	metrics.outgoingOpened.Inc()

	// The burn must follow slot persistence so the slot reflects the
	// original amount (§4.2 tie-break note).
	if state == denomRemote {
		if err := ctx.Ledger.Burn(custodyAddress, req.Amount.Denomination, req.Amount.Quantity); err != nil {
			return LockResult{}, mapAccountsError(err)
		}
	}

	ev := LockEvent{ID: id, Owner: ctx.Caller, Target: req.Target, Amount: req.Amount, CorrelationID: uuid.NewString()}
	if err := emitLock(ev); err != nil {
		return LockResult{}, err
	}

	bridgeLog.WithFields(logrus.Fields{
		"id": id, "owner": ctx.Caller, "target": req.Target, "amount": req.Amount.Quantity, "denom": req.Amount.Denomination,
	}).Info("bridge: locked")

	return LockResult{ID: id}, nil
}

// WitnessRequest is the body of bridge.Witness.
type WitnessRequest struct {
	ID        uint64 `cbor:"id"`
	Signature []byte `cbor:"sig"`
}

// Witness implements §4.3: a witness acknowledges an outgoing Lock by
// submitting its signature over the remote mint/release it authorizes.
func Witness(ctx *Context, req WitnessRequest) error {
	if ctx.CheckMode {
		return nil
	}

	params, err := getParameters()
	if err != nil {
		return err
	}

	idx, ok := params.IndexOf(ctx.Caller)
	if !ok {
		bridgeLog.WithField("caller", ctx.Caller).Warn("bridge: witness call from non-witness")
		return errNotAuthorized(ctx.Caller.String())
	}

	slot, err := getOutgoingSlot(req.ID)
	if err != nil {
		return err
	}
	if slot == nil {
		return errInvalidSequenceNumber(fmt.Sprintf("outgoing id %d", req.ID))
	}

	for _, w := range slot.Witnesses {
		if w == idx {
			return errAlreadySubmittedSignature(fmt.Sprintf("witness %d, outgoing id %d", idx, req.ID))
		}
	}

	// Deferred hook: signature validity against the module's signing
	// domain, and binding to the remote denomination, are pluggable checks
	// that belong here (§9 "deferred cryptographic checks"). The core does
	// not itself validate foreign signatures (§1).
	if err := verifyWitnessSignature(ctx.Caller, slot.Op, req.Signature); err != nil {
		return errInvalidArgument(err.Error())
	}

	slot.Witnesses = append(slot.Witnesses, idx)
	slot.Signatures = append(slot.Signatures, req.Signature)

	if len(slot.Witnesses) < params.Threshold {
		return setOutgoingSlot(slot)
	}

	if err := deleteOutgoingSlot(slot.ID); err != nil {
		return err
	}
	metrics.outgoingFinalized.Inc()
	ev := WitnessesSignedEvent{ID: slot.ID, Witnesses: slot.Witnesses, Signatures: slot.Signatures, CorrelationID: uuid.NewString()}
	if err := emitWitnessesSigned(ev); err != nil {
		return err
	}
	bridgeLog.WithFields(logrus.Fields{"id": slot.ID, "witnesses": slot.Witnesses}).Info("bridge: witnesses signed")
	return nil
}

// WitnessSignatureVerifier validates a witness's signature over op before
// it is recorded. The default accepts any non-empty signature: real
// cryptographic verification against the remote chain's signing scheme is
// explicitly out of scope for the core (§1) and is installed by the host
// via SetWitnessSignatureVerifier.
type WitnessSignatureVerifier func(witness Address, op Operation, signature []byte) error

var witnessSignatureVerifier WitnessSignatureVerifier = func(_ Address, _ Operation, sig []byte) error {
	if len(sig) == 0 {
		return fmt.Errorf("empty signature")
	}
	return nil
}

// SetWitnessSignatureVerifier installs the pluggable signature-validation
// hook (§9). Passing nil restores the permissive default.
func SetWitnessSignatureVerifier(fn WitnessSignatureVerifier) {
	if fn == nil {
		fn = func(_ Address, _ Operation, sig []byte) error {
			if len(sig) == 0 {
				return fmt.Errorf("empty signature")
			}
			return nil
		}
	}
	witnessSignatureVerifier = fn
}

func verifyWitnessSignature(witness Address, op Operation, signature []byte) error {
	return witnessSignatureVerifier(witness, op, signature)
}

func emitLock(ev LockEvent) error {
	raw, err := encodeCBOR(ev)
	if err != nil {
		return err
	}
	return Broadcast(topicForEvent(EventCodeLock), raw)
}

func emitWitnessesSigned(ev WitnessesSignedEvent) error {
	raw, err := encodeCBOR(ev)
	if err != nil {
		return err
	}
	return Broadcast(topicForEvent(EventCodeWitnessesSigned), raw)
}

func emitRelease(ev ReleaseEvent) error {
	raw, err := encodeCBOR(ev)
	if err != nil {
		return err
	}
	return Broadcast(topicForEvent(EventCodeRelease), raw)
}

func topicForEvent(code int) string {
	switch code {
	case EventCodeLock:
		return "bridge:lock"
	case EventCodeRelease:
		return "bridge:release"
	case EventCodeWitnessesSigned:
		return "bridge:witnesses-signed"
	default:
		return "bridge:unknown"
	}
}

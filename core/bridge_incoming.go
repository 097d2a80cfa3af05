package core

import (
	"fmt"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
)

// ReleaseRequest is the body of bridge.Release.
type ReleaseRequest struct {
	ID     uint64  `cbor:"id"`
	Target Address `cbor:"target"`
	Amount Amount  `cbor:"amount"`
}

// Release implements §4.4: a witness attests a remote event. Strict
// sequence order is enforced on the slot id, but divergent proposals for
// the same id are tolerated via per-operation-hash bucketing. A witness that
// has already voted in any bucket of the slot is rejected with
// AlreadySubmittedSignature, and the slot is left unchanged.
func Release(ctx *Context, req ReleaseRequest) error {
	params, err := getParameters()
	if err != nil {
		return err
	}

	state, _ := params.classify(req.Amount.Denomination)
	if state == denomUnknown {
		return errUnsupportedDenomination(string(req.Amount.Denomination))
	}

	if ctx.CheckMode {
		return nil
	}

	idx, ok := params.IndexOf(ctx.Caller)
	if !ok {
		bridgeLog.WithField("caller", ctx.Caller).Warn("bridge: release call from non-witness")
		return errNotAuthorized(ctx.Caller.String())
	}

	expected, err := getNextInSequence()
	if err != nil {
		return err
	}
	if req.ID != expected {
		return errInvalidSequenceNumber(fmt.Sprintf("got %d, expected %d", req.ID, expected))
	}

	slot, err := getIncomingSlot(req.ID)
	if err != nil {
		return err
	}

	// Enforced at the slot level, across all buckets: a witness
	// contributes to at most one bucket per slot (§4.4 step 6).
	for _, w := range slot.Witnesses {
		if w == idx {
			return errAlreadySubmittedSignature(fmt.Sprintf("witness %d, incoming id %d", idx, req.ID))
		}
	}

	op := NewReleaseOperation(req.ID, req.Target, req.Amount)
	opID, err := hashOperation(op)
	if err != nil {
		return err
	}

	bucket, ok := slot.Ops[opID]
	if !ok {
		bucket = &IncomingBucket{ID: opID, Op: op, Witnesses: []uint16{}}
		slot.Ops[opID] = bucket
		if len(slot.Ops) > 1 {
			metrics.divergentBuckets.Inc()
		}
	}

	slot.Witnesses = append(slot.Witnesses, idx)
	bucket.Witnesses = append(bucket.Witnesses, idx)

	if len(bucket.Witnesses) < params.Threshold {
		return setIncomingSlot(req.ID, slot)
	}

	if err := deleteIncomingSlot(req.ID); err != nil {
		return err
	}
	if err := setNextInSequence(expected + 1); err != nil {
		return err
	}
	metrics.incomingFinalized.Inc()

	if state == denomRemote {
		if err := ctx.Ledger.Mint(custodyAddress, req.Amount.Denomination, req.Amount.Quantity); err != nil {
			return mapAccountsError(err)
		}
	}
	if err := ctx.Ledger.Transfer(custodyAddress, req.Target, req.Amount.Denomination, req.Amount.Quantity); err != nil {
		return mapAccountsError(err)
	}

	ev := ReleaseEvent{ID: req.ID, Target: req.Target, Amount: req.Amount, CorrelationID: uuid.NewString()}
	if err := emitRelease(ev); err != nil {
		return err
	}

	bridgeLog.WithFields(logrus.Fields{
		"id": req.ID, "target": req.Target, "amount": req.Amount.Quantity, "denom": req.Amount.Denomination, "bucket": opID,
	}).Info("bridge: released")
	return nil
}

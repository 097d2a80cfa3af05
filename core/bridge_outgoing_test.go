package core

import (
	"errors"
	"testing"
)

func addrFromByte(b byte) Address {
	var a Address
	a[len(a)-1] = b
	return a
}

func testParams(witnesses []Address, threshold int, local, remote []string) Parameters {
	p := Parameters{
		Threshold:           threshold,
		Witnesses:           witnesses,
		LocalDenominations:  map[Denomination]struct{}{},
		RemoteDenominations: map[Denomination]RemoteDenomination{},
	}
	for _, d := range local {
		p.LocalDenominations[Denomination(d)] = struct{}{}
	}
	for _, d := range remote {
		p.RemoteDenominations[Denomination(d)] = RemoteDenomination{0x01}
	}
	return p
}

func newTestEnv(t *testing.T, params Parameters) *MemLedger {
	t.Helper()
	SetStore(NewMemStore())
	if err := setParameters(params); err != nil {
		t.Fatalf("setParameters: %v", err)
	}
	return NewMemLedger()
}

func TestLockWitnessHappyPath(t *testing.T) {
	alice, bob, charlie := addrFromByte(1), addrFromByte(2), addrFromByte(3)
	params := testParams([]Address{bob, charlie}, 2, []string{"NATIVE"}, nil)
	ledger := newTestEnv(t, params)
	ledger.Fund(alice, "NATIVE", 1_000_000)

	ctx := &Context{Caller: alice, Ledger: ledger}
	res, err := Lock(ctx, LockRequest{Target: RemoteAddress{0x00}, Amount: Amount{Quantity: 1000, Denomination: "NATIVE"}})
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if res.ID != 0 {
		t.Fatalf("expected id 0, got %d", res.ID)
	}
	if got := ledger.Balance(alice, "NATIVE"); got != 999_000 {
		t.Fatalf("alice balance = %d, want 999000", got)
	}
	if got := ledger.Balance(custodyAddress, "NATIVE"); got != 1000 {
		t.Fatalf("custody balance = %d, want 1000", got)
	}

	bobCtx := &Context{Caller: bob, Ledger: ledger}
	if err := Witness(bobCtx, WitnessRequest{ID: 0, Signature: []byte{0x01}}); err != nil {
		t.Fatalf("bob witness: %v", err)
	}
	if slot, err := getOutgoingSlot(0); err != nil || slot == nil {
		t.Fatalf("slot should still exist after one witness: %v %v", slot, err)
	}

	var captured WitnessesSignedEvent
	SetBroadcaster(func(topic string, data []byte) error {
		if topic == topicForEvent(EventCodeWitnessesSigned) {
			return decodeCBOR(data, &captured)
		}
		return nil
	})
	defer SetBroadcaster(nil)

	charlieCtx := &Context{Caller: charlie, Ledger: ledger}
	if err := Witness(charlieCtx, WitnessRequest{ID: 0, Signature: []byte{0x02}}); err != nil {
		t.Fatalf("charlie witness: %v", err)
	}
	if slot, _ := getOutgoingSlot(0); slot != nil {
		t.Fatalf("slot should be deleted after threshold reached")
	}
	if len(captured.Witnesses) != 2 || captured.Witnesses[0] != 0 || captured.Witnesses[1] != 1 {
		t.Fatalf("unexpected witnesses in event: %v", captured.Witnesses)
	}
}

func TestWitnessDuplicate(t *testing.T) {
	bob, charlie := addrFromByte(2), addrFromByte(3)
	params := testParams([]Address{bob, charlie}, 2, []string{"NATIVE"}, nil)
	ledger := newTestEnv(t, params)
	if err := setOutgoingSlot(&OutgoingSlot{ID: 0, Op: NewLockOperation(RemoteAddress{}, Amount{Quantity: 1000, Denomination: "NATIVE"})}); err != nil {
		t.Fatal(err)
	}

	bobCtx := &Context{Caller: bob, Ledger: ledger}
	if err := Witness(bobCtx, WitnessRequest{ID: 0, Signature: []byte{0x01}}); err != nil {
		t.Fatalf("first witness: %v", err)
	}
	err := Witness(bobCtx, WitnessRequest{ID: 0, Signature: []byte{0x01}})
	var merr *ModuleError
	if !errors.As(err, &merr) || merr.Code != ErrCodeAlreadySubmittedSignature {
		t.Fatalf("expected AlreadySubmittedSignature, got %v", err)
	}
}

func TestWitnessUnauthorized(t *testing.T) {
	alice, bob, charlie := addrFromByte(1), addrFromByte(2), addrFromByte(3)
	params := testParams([]Address{bob, charlie}, 2, []string{"NATIVE"}, nil)
	ledger := newTestEnv(t, params)
	if err := setOutgoingSlot(&OutgoingSlot{ID: 0, Op: NewLockOperation(RemoteAddress{}, Amount{Quantity: 1000, Denomination: "NATIVE"})}); err != nil {
		t.Fatal(err)
	}

	aliceCtx := &Context{Caller: alice, Ledger: ledger}
	err := Witness(aliceCtx, WitnessRequest{ID: 0, Signature: []byte{0x01}})
	var merr *ModuleError
	if !errors.As(err, &merr) || merr.Code != ErrCodeNotAuthorized {
		t.Fatalf("expected NotAuthorized, got %v", err)
	}
}

func TestWitnessInvalidOutgoingID(t *testing.T) {
	bob, charlie := addrFromByte(2), addrFromByte(3)
	params := testParams([]Address{bob, charlie}, 2, []string{"NATIVE"}, nil)
	ledger := newTestEnv(t, params)

	bobCtx := &Context{Caller: bob, Ledger: ledger}
	err := Witness(bobCtx, WitnessRequest{ID: 0, Signature: []byte{0x01}})
	var merr *ModuleError
	if !errors.As(err, &merr) || merr.Code != ErrCodeInvalidSequenceNumber {
		t.Fatalf("expected InvalidSequenceNumber, got %v", err)
	}
}

func TestLockCheckModeIsNoop(t *testing.T) {
	alice, bob := addrFromByte(1), addrFromByte(2)
	params := testParams([]Address{bob}, 1, []string{"NATIVE"}, nil)
	ledger := newTestEnv(t, params)
	ledger.Fund(alice, "NATIVE", 100)

	ctx := &Context{Caller: alice, Ledger: ledger, CheckMode: true}
	res, err := Lock(ctx, LockRequest{Target: RemoteAddress{}, Amount: Amount{Quantity: 50, Denomination: "NATIVE"}})
	if err != nil {
		t.Fatalf("Lock check mode: %v", err)
	}
	if res.ID != 0 {
		t.Fatalf("check mode result should be placeholder, got %+v", res)
	}
	if got := ledger.Balance(alice, "NATIVE"); got != 100 {
		t.Fatalf("check mode must not mutate balances, got %d", got)
	}
	if next, _ := getNextOutSequence(); next != 0 {
		t.Fatalf("check mode must not allocate a sequence id, got %d", next)
	}
}

func TestLockUnsupportedDenomination(t *testing.T) {
	alice, bob := addrFromByte(1), addrFromByte(2)
	params := testParams([]Address{bob}, 1, []string{"NATIVE"}, nil)
	ledger := newTestEnv(t, params)

	ctx := &Context{Caller: alice, Ledger: ledger}
	_, err := Lock(ctx, LockRequest{Target: RemoteAddress{}, Amount: Amount{Quantity: 1, Denomination: "NOPE"}})
	var merr *ModuleError
	if !errors.As(err, &merr) || merr.Code != ErrCodeUnsupportedDenomination {
		t.Fatalf("expected UnsupportedDenomination, got %v", err)
	}
}

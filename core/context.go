package core

// Context is the per-call execution context the host runtime builds for
// every dispatched transaction, trimmed to what module handlers need:
// who is calling, whether this is a check-only pass, and a handle on the
// accounts collaborator. It mirrors the shape of the repo's existing
// transaction context (Caller, State) without the VM-evaluation fields
// (Stack, Memory, GasLimit, ...) that the bridge module never touches.
type Context struct {
	Caller    Address
	CheckMode bool
	Ledger    CustodyLedger
}

// Denomination identifies a fungible asset type recognized by the bridge.
// Local denominations originate on this chain; remote denominations
// originate on the remote chain and are only ever minted/burned here.
type Denomination string

// RemoteDenomination is the opaque remote-chain identifier a local
// denomination maps to. Capped at 32 bytes per §3; the cap is enforced when
// genesis is decoded (decodeRemoteDenomination in bridge_lifecycle.go) and by
// Parameters.Validate, not here, since this type carries no invariant of its
// own beyond byte-slice identity.
type RemoteDenomination []byte

// CustodyLedger is the adapter over the external accounts collaborator
// (out of scope per §1: balance transfer/mint/burn live in a separate
// module). The bridge core only ever calls these three primitives, scoped
// to the deterministic custody address derived by ModuleAddress.
type CustodyLedger interface {
	Transfer(from, to Address, denom Denomination, amount uint64) error
	Mint(to Address, denom Denomination, amount uint64) error
	Burn(from Address, denom Denomination, amount uint64) error
	Balance(addr Address, denom Denomination) uint64
}

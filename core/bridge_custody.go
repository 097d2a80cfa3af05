package core

// custodyAddress is the deterministic module-owned address whose balance
// represents assets currently bridged (§3, §9: "a pure function of the
// module name and a fixed label, not a run-time singleton"). Computed once
// at package init since it never changes.
var custodyAddress = ModuleAddress("bridge:custody")

// CustodyAddress returns the bridge's custody address for callers outside
// the core package.
func CustodyAddress() Address { return custodyAddress }

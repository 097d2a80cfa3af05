package core

import "fmt"

// maxWitnesses is the §3 ceiling: witness count must fit a non-negative
// integer index ≤ 65535 (stored as uint16 in slots).
const maxWitnesses = 65535

// Parameters are the genesis-configured invariants of the bridge module:
// immutable once installed (§2, §4.1). There is no runtime path that
// mutates a Parameters value after genesis — witness-set changes are a
// genesis/parameter matter per §1.
type Parameters struct {
	Witnesses           []Address
	Threshold           int
	LocalDenominations  map[Denomination]struct{}
	RemoteDenominations map[Denomination]RemoteDenomination
}

// DefaultParameters returns the unusable-by-design zero value: no
// witnesses, threshold 1 (§4.1). Genesis must install explicit parameters.
func DefaultParameters() Parameters {
	return Parameters{
		Threshold:           1,
		LocalDenominations:  map[Denomination]struct{}{},
		RemoteDenominations: map[Denomination]RemoteDenomination{},
	}
}

// Validate enforces the genesis-time invariants named in §4.1.
func (p Parameters) Validate() error {
	if len(p.Witnesses) > maxWitnesses {
		return fmt.Errorf("%w: %d witnesses exceeds %d", ErrTooManyWitnesses, len(p.Witnesses), maxWitnesses)
	}
	seen := make(map[Address]struct{}, len(p.Witnesses))
	for _, w := range p.Witnesses {
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateWitness, w)
		}
		seen[w] = struct{}{}
	}
	if p.Threshold <= 0 || p.Threshold > len(p.Witnesses) {
		return fmt.Errorf("%w: threshold %d, %d witnesses", ErrInvalidThreshold, p.Threshold, len(p.Witnesses))
	}
	for d := range p.LocalDenominations {
		if _, overlap := p.RemoteDenominations[d]; overlap {
			return fmt.Errorf("%w: %s", ErrDenominationLocalAndRemote, d)
		}
	}
	for d, rd := range p.RemoteDenominations {
		if len(rd) > maxRemoteDenominationBytes {
			return fmt.Errorf("%w: %s is %d bytes", ErrRemoteDenominationTooLong, d, len(rd))
		}
	}
	return nil
}

// IndexOf resolves addr to its ordinal witness index, mirroring the
// original's params.witnesses.iter().position(...) (linear scan, bounded by
// 65535 entries, so a table lookup would be premature — see DESIGN.md).
func (p Parameters) IndexOf(addr Address) (uint16, bool) {
	for i, w := range p.Witnesses {
		if w == addr {
			return uint16(i), true
		}
	}
	return 0, false
}

// denomState is the three-way classification §4.1 drives every handler
// from: a denomination is either local (custodied), remote (mint/burn), or
// unknown (rejected before any state mutation).
type denomState int

const (
	denomUnknown denomState = iota
	denomLocal
	denomRemote
)

// classify resolves denom into one of the three states, returning the
// remote mapping when applicable. This single helper is what keeps the
// custody-vs-mint/burn policy identical across Lock and Release.
func (p Parameters) classify(denom Denomination) (denomState, RemoteDenomination) {
	if _, ok := p.LocalDenominations[denom]; ok {
		return denomLocal, nil
	}
	if rd, ok := p.RemoteDenominations[denom]; ok {
		return denomRemote, rd
	}
	return denomUnknown, nil
}

var (
	ErrTooManyWitnesses           = fmt.Errorf("bridge: too many witnesses")
	ErrDuplicateWitness           = fmt.Errorf("bridge: duplicate witness key")
	ErrInvalidThreshold           = fmt.Errorf("bridge: invalid threshold")
	ErrDenominationLocalAndRemote = fmt.Errorf("bridge: denomination is both local and remote")
	ErrRemoteDenominationTooLong  = fmt.Errorf("bridge: remote denomination exceeds 32 bytes")
)

const maxRemoteDenominationBytes = 32

package core

import (
	"errors"
	"sync"
)

// ErrInsufficientBalance is returned by CustodyLedger implementations when a
// transfer or burn would underflow the source balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// MemLedger is a minimal in-memory CustodyLedger, grounded on the repo's
// Coin/TokenLedger accounting style (a mutex-guarded balance map) but
// trimmed to the three primitives the bridge collaborator contract
// requires. It exists for tests and local experimentation; the production
// accounts sub-module (out of scope per §1) is expected to satisfy the same
// CustodyLedger interface against its own real ledger.
type MemLedger struct {
	mu       sync.Mutex
	balances map[Address]map[Denomination]uint64
}

// NewMemLedger constructs an empty ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{balances: make(map[Address]map[Denomination]uint64)}
}

// Fund credits addr with amount of denom, for test setup only.
func (l *MemLedger) Fund(addr Address, denom Denomination, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(addr, denom, amount)
}

func (l *MemLedger) credit(addr Address, denom Denomination, amount uint64) {
	m, ok := l.balances[addr]
	if !ok {
		m = make(map[Denomination]uint64)
		l.balances[addr] = m
	}
	m[denom] += amount
}

func (l *MemLedger) Transfer(from, to Address, denom Denomination, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal := l.balances[from][denom]
	if bal < amount {
		return ErrInsufficientBalance
	}
	l.balances[from][denom] = bal - amount
	l.credit(to, denom, amount)
	return nil
}

func (l *MemLedger) Mint(to Address, denom Denomination, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(to, denom, amount)
	return nil
}

func (l *MemLedger) Burn(from Address, denom Denomination, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal := l.balances[from][denom]
	if bal < amount {
		return ErrInsufficientBalance
	}
	l.balances[from][denom] = bal - amount
	return nil
}

func (l *MemLedger) Balance(addr Address, denom Denomination) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[addr][denom]
}

package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Address is a 20-byte local account identifier, hex-encoded in
// human-readable contexts (JSON, CLI, logs) and kept raw in binary form.
type Address [20]byte

func (a Address) String() string { return hex.EncodeToString(a[:]) }

func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Address) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if len(b) != len(a) {
		return fmt.Errorf("address: want %d bytes, got %d", len(a), len(b))
	}
	copy(a[:], b)
	return nil
}

// ParseAddress decodes a hex-encoded local address.
func ParseAddress(s string) (Address, error) {
	var a Address
	err := a.UnmarshalText([]byte(s))
	return a, err
}

// Hash is a 32-byte cryptographic digest.
type Hash [32]byte

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// ModuleAddress deterministically derives a module-owned address from a
// single label, which by convention names the module and the purpose
// (e.g. "bridge:custody"). It is a pure function: the same label always
// yields the same address, with no runtime registry involved.
func ModuleAddress(label string) Address {
	sum := sha256.Sum256([]byte("module:" + label))
	var a Address
	copy(a[:], sum[:20])
	return a
}

package core

import (
	"encoding/hex"
	"fmt"
)

// GenesisConfig is the YAML-decoded shape genesis installs (§10; loaded by
// pkg/config's bridge loader). RemoteDenominations values are hex strings
// on the wire; InitOrMigrate decodes and length-checks them before
// converting to Parameters.
type GenesisConfig struct {
	Witnesses           []string          `yaml:"witnesses" mapstructure:"witnesses"`
	Threshold           int               `yaml:"threshold" mapstructure:"threshold"`
	LocalDenominations  []string          `yaml:"local_denominations" mapstructure:"local_denominations"`
	RemoteDenominations map[string]string `yaml:"remote_denominations" mapstructure:"remote_denominations"`
}

// ToParameters converts and validates a GenesisConfig, enforcing the
// decode-time length checks spec.md §9(a)/(b) flags as missing in the
// original: RemoteAddress's 20-byte length is checked by its own
// UnmarshalCBOR, but RemoteDenomination's 32-byte ceiling is only enforced
// here, at the genesis/decode boundary, not deep inside the hot path.
func (g GenesisConfig) ToParameters() (Parameters, error) {
	p := Parameters{
		Threshold:           g.Threshold,
		LocalDenominations:  make(map[Denomination]struct{}, len(g.LocalDenominations)),
		RemoteDenominations: make(map[Denomination]RemoteDenomination, len(g.RemoteDenominations)),
	}
	for _, w := range g.Witnesses {
		addr, err := ParseAddress(w)
		if err != nil {
			return Parameters{}, fmt.Errorf("bridge: genesis witness %q: %w", w, err)
		}
		p.Witnesses = append(p.Witnesses, addr)
	}
	for _, d := range g.LocalDenominations {
		p.LocalDenominations[Denomination(d)] = struct{}{}
	}
	for d, hexID := range g.RemoteDenominations {
		raw, err := decodeRemoteDenomination(hexID)
		if err != nil {
			return Parameters{}, fmt.Errorf("bridge: genesis remote denomination %q: %w", d, err)
		}
		p.RemoteDenominations[Denomination(d)] = raw
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

func decodeRemoteDenomination(hexID string) (RemoteDenomination, error) {
	raw, err := hex.DecodeString(hexID)
	if err != nil {
		return nil, err
	}
	if len(raw) > maxRemoteDenominationBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrRemoteDenominationTooLong, len(raw))
	}
	return RemoteDenomination(raw), nil
}

// InitGenesis installs genesis-configured Parameters (version 0). Sequence
// counters are left absent: NEXT_OUT_SEQUENCE/NEXT_IN_SEQUENCE default to 0
// implicitly on first read (§4.6).
func InitGenesis(cfg GenesisConfig) error {
	params, err := cfg.ToParameters()
	if err != nil {
		return err
	}
	return setParameters(params)
}

// InitOrMigrate implements §4.6's lifecycle hook: genesis (fromVersion 0)
// installs params; anything else is an unsupported migration and is a
// deliberate no-op that reports no changes were applied, the way the
// original's init_or_migrate signals "nothing to do" rather than erroring
// (§12).
func InitOrMigrate(fromVersion uint32, cfg GenesisConfig) (changed bool, err error) {
	if fromVersion != 0 {
		return false, nil
	}
	if err := InitGenesis(cfg); err != nil {
		return false, err
	}
	return true, nil
}

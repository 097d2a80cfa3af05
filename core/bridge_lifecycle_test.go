package core

import "testing"

func TestInitGenesisInstallsParameters(t *testing.T) {
	SetStore(NewMemStore())
	cfg := GenesisConfig{
		Witnesses:          []string{addrFromByte(2).String(), addrFromByte(3).String()},
		Threshold:          2,
		LocalDenominations: []string{"NATIVE"},
		RemoteDenominations: map[string]string{
			"oETH": "01",
		},
	}
	if err := InitGenesis(cfg); err != nil {
		t.Fatalf("InitGenesis: %v", err)
	}
	p, err := getParameters()
	if err != nil {
		t.Fatalf("getParameters: %v", err)
	}
	if p.Threshold != 2 || len(p.Witnesses) != 2 {
		t.Fatalf("unexpected parameters: %+v", p)
	}
	if _, ok := p.LocalDenominations["NATIVE"]; !ok {
		t.Fatal("NATIVE should be a local denomination")
	}
	if rd, ok := p.RemoteDenominations["oETH"]; !ok || len(rd) != 1 {
		t.Fatalf("oETH should decode to a 1-byte remote denomination, got %v %v", rd, ok)
	}
}

func TestInitOrMigrateNoopOnNonZeroVersion(t *testing.T) {
	SetStore(NewMemStore())
	cfg := GenesisConfig{
		Witnesses: []string{addrFromByte(2).String()},
		Threshold: 1,
	}
	changed, err := InitOrMigrate(1, cfg)
	if err != nil {
		t.Fatalf("InitOrMigrate: %v", err)
	}
	if changed {
		t.Fatal("migration from a non-zero version must report no changes")
	}
	if _, err := getOutgoingSlot(0); err != nil {
		t.Fatalf("store should still be usable after a no-op migration: %v", err)
	}
}

func TestGenesisRejectsOversizedRemoteDenomination(t *testing.T) {
	big := make([]byte, 66)
	hexBig := make([]byte, len(big)*2)
	const hexdigits = "0123456789abcdef"
	for i, b := range big {
		hexBig[2*i] = hexdigits[b>>4]
		hexBig[2*i+1] = hexdigits[b&0x0f]
	}
	cfg := GenesisConfig{
		Witnesses:           []string{addrFromByte(2).String()},
		Threshold:           1,
		RemoteDenominations: map[string]string{"oETH": string(hexBig)},
	}
	if _, err := cfg.ToParameters(); err == nil {
		t.Fatal("expected an error for an oversized remote denomination")
	}
}

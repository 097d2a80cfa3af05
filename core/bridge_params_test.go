package core

import "testing"

func TestParametersValidate(t *testing.T) {
	bob, charlie := addrFromByte(2), addrFromByte(3)

	t.Run("ok", func(t *testing.T) {
		p := testParams([]Address{bob, charlie}, 2, []string{"NATIVE"}, []string{"oETH"})
		if err := p.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("duplicate witness", func(t *testing.T) {
		p := testParams([]Address{bob, bob}, 1, nil, nil)
		if err := p.Validate(); err == nil {
			t.Fatal("expected duplicate witness error")
		}
	})

	t.Run("invalid threshold", func(t *testing.T) {
		p := testParams([]Address{bob}, 0, nil, nil)
		if err := p.Validate(); err == nil {
			t.Fatal("expected invalid threshold error")
		}
		p = testParams([]Address{bob}, 2, nil, nil)
		if err := p.Validate(); err == nil {
			t.Fatal("expected invalid threshold error for threshold > witness count")
		}
	})

	t.Run("denomination overlap", func(t *testing.T) {
		p := testParams([]Address{bob}, 1, []string{"DUP"}, []string{"DUP"})
		if err := p.Validate(); err == nil {
			t.Fatal("expected local/remote overlap error")
		}
	})

	t.Run("default is unusable", func(t *testing.T) {
		if err := DefaultParameters().Validate(); err == nil {
			t.Fatal("default parameters must fail validation (no witnesses, threshold 1)")
		}
	})
}

func TestParametersIndexOf(t *testing.T) {
	bob, charlie, alice := addrFromByte(2), addrFromByte(3), addrFromByte(1)
	p := testParams([]Address{bob, charlie}, 1, nil, nil)

	idx, ok := p.IndexOf(bob)
	if !ok || idx != 0 {
		t.Fatalf("IndexOf(bob) = %d, %v; want 0, true", idx, ok)
	}
	idx, ok = p.IndexOf(charlie)
	if !ok || idx != 1 {
		t.Fatalf("IndexOf(charlie) = %d, %v; want 1, true", idx, ok)
	}
	if _, ok := p.IndexOf(alice); ok {
		t.Fatal("IndexOf(alice) should fail: not a witness")
	}
}

func TestParametersClassify(t *testing.T) {
	p := testParams(nil, 1, []string{"NATIVE"}, []string{"oETH"})

	if state, _ := p.classify("NATIVE"); state != denomLocal {
		t.Fatalf("NATIVE should classify as local, got %v", state)
	}
	if state, rd := p.classify("oETH"); state != denomRemote || len(rd) == 0 {
		t.Fatalf("oETH should classify as remote with a mapping, got %v %v", state, rd)
	}
	if state, _ := p.classify("NOPE"); state != denomUnknown {
		t.Fatalf("NOPE should classify as unknown, got %v", state)
	}
}

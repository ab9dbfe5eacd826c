package util

import (
	"strconv"
	"testing"
)

type stringerKey uint64

func (k stringerKey) String() string { return "sk-" + strconv.FormatUint(uint64(k), 10) }

// Each supported key type must map to a stable, predictable string.
func TestKeyString_SupportedTypes(t *testing.T) {
	t.Parallel()

	if got := KeyString("plain"); got != "plain" {
		t.Fatalf("string: %q", got)
	}

	// Byte slices and fixed-size byte arrays are hex-encoded.
	if got := KeyString[any]([]byte{0xde, 0xad}); got != "dead" {
		t.Fatalf("[]byte: %q", got)
	}
	var a16 [16]byte
	a16[0], a16[15] = 0xab, 0x01
	if got := KeyString(a16); got != "ab000000000000000000000000000001" {
		t.Fatalf("[16]byte: %q", got)
	}
	var a32 [32]byte
	if got := KeyString(a32); len(got) != 64 {
		t.Fatalf("[32]byte: want 64 hex chars, got %d", len(got))
	}
	var a64 [64]byte
	if got := KeyString(a64); len(got) != 128 {
		t.Fatalf("[64]byte: want 128 hex chars, got %d", len(got))
	}

	// Signed widths keep the sign, unsigned widths cover the full range.
	if got := KeyString(int8(-5)); got != "-5" {
		t.Fatalf("int8: %q", got)
	}
	if got := KeyString(int16(-300)); got != "-300" {
		t.Fatalf("int16: %q", got)
	}
	if got := KeyString(int32(1 << 20)); got != "1048576" {
		t.Fatalf("int32: %q", got)
	}
	if got := KeyString(int64(-1 << 40)); got != "-1099511627776" {
		t.Fatalf("int64: %q", got)
	}
	if got := KeyString(-42); got != "-42" {
		t.Fatalf("int: %q", got)
	}
	if got := KeyString(uint8(255)); got != "255" {
		t.Fatalf("uint8: %q", got)
	}
	if got := KeyString(uint16(65535)); got != "65535" {
		t.Fatalf("uint16: %q", got)
	}
	if got := KeyString(uint32(1 << 31)); got != "2147483648" {
		t.Fatalf("uint32: %q", got)
	}
	if got := KeyString(uint64(1<<63 + 1)); got != "9223372036854775809" {
		t.Fatalf("uint64: %q", got)
	}
	if got := KeyString(uint(7)); got != "7" {
		t.Fatalf("uint: %q", got)
	}
	if got := KeyString(uintptr(9)); got != "9" {
		t.Fatalf("uintptr: %q", got)
	}

	// Named types without a matching width arm fall through to Stringer.
	if got := KeyString(stringerKey(3)); got != "sk-3" {
		t.Fatalf("Stringer: %q", got)
	}
}

// Distinct keys of the same type must never collide.
func TestKeyString_Distinctness(t *testing.T) {
	t.Parallel()

	seen := map[string]int64{}
	for _, k := range []int64{-2, -1, 0, 1, 2, 10, -10, 1 << 32} {
		s := KeyString(k)
		if prev, dup := seen[s]; dup {
			t.Fatalf("collision: %d and %d both map to %q", prev, k, s)
		}
		seen[s] = k
	}
}

// Unsupported key types panic so a misconfiguration fails loudly at first
// use instead of silently colliding in the cold store.
func TestKeyString_UnsupportedPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an unsupported key type")
		}
	}()
	type pos struct{ x, y int }
	_ = KeyString(pos{1, 2})
}

package util

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// KeyString maps common key types to a stable string for the cold store.
// Unlike Fnv64a the mapping must be collision-free: two distinct keys of the
// same type always produce distinct strings. Supported: string, []byte
// (hex-encoded), [16|32|64]byte, all int/uint widths, uintptr, fmt.Stringer.
// Panicking on unsupported types is deliberate; supply Options.KeyString for
// anything else.
func KeyString[K comparable](k K) string {
	switch v := any(k).(type) {
	case string:
		return v
	case []byte:
		return hex.EncodeToString(v)
	case [16]byte:
		return hex.EncodeToString(v[:])
	case [32]byte:
		return hex.EncodeToString(v[:])
	case [64]byte:
		return hex.EncodeToString(v[:])

	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uintptr:
		return strconv.FormatUint(uint64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.FormatInt(int64(v), 10)

	// Stringer keys are assumed to produce unique strings.
	case fmt.Stringer:
		return v.String()
	default:
		panic(fmt.Sprintf("util.KeyString: unsupported key type %T; provide Options.KeyString", k))
	}
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OptionalInt is an integer field that distinguishes "value known",
// "explicitly unknown" and "never set". It replaces the historic
// convention of storing the literal 1 to mean "unknown", which
// collides with a genuine value of 1.
//
// JSON forms: a number (known), the string "unknown", or null (unset).
// The zero value is Unset.
type OptionalInt struct {
	value   int
	known   bool
	unknown bool
}

// KnownInt returns an OptionalInt carrying n.
func KnownInt(n int) OptionalInt {
	return OptionalInt{value: n, known: true}
}

// UnknownInt returns the explicit "unknown" marker.
func UnknownInt() OptionalInt {
	return OptionalInt{unknown: true}
}

// UnsetInt returns the zero OptionalInt.
func UnsetInt() OptionalInt {
	return OptionalInt{}
}

// legacyUnknownSentinel is the magic value old records and scraped
// payloads used for "unknown".
const legacyUnknownSentinel = 1

// FromLegacyInt converts a nullable integer under the old sentinel
// convention: nil = unset, 1 = unknown, anything else = known.
func FromLegacyInt(n *int) OptionalInt {
	switch {
	case n == nil:
		return UnsetInt()
	case *n == legacyUnknownSentinel:
		return UnknownInt()
	default:
		return KnownInt(*n)
	}
}

// ToLegacyInt renders the value back into the sentinel convention used
// by the storage schema: nil = unset, 1 = unknown.
func (o OptionalInt) ToLegacyInt() *int {
	switch {
	case o.known:
		v := o.value
		return &v
	case o.unknown:
		v := legacyUnknownSentinel
		return &v
	default:
		return nil
	}
}

// Value returns the integer and true when the value is known.
func (o OptionalInt) Value() (int, bool) {
	return o.value, o.known
}

// IsKnown reports whether a concrete value is present.
func (o OptionalInt) IsKnown() bool { return o.known }

// IsUnknown reports whether the field is the explicit "unknown" marker.
func (o OptionalInt) IsUnknown() bool { return o.unknown }

// IsSet reports whether the field is anything other than unset.
func (o OptionalInt) IsSet() bool { return o.known || o.unknown }

// MarshalJSON renders number | "unknown" | null.
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	switch {
	case o.known:
		return json.Marshal(o.value)
	case o.unknown:
		return json.Marshal("unknown")
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts number | "unknown" | null.
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = UnsetInt()
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != "unknown" {
			return fmt.Errorf("%w: optional integer string must be \"unknown\", got %q", ErrValidation, s)
		}
		*o = UnknownInt()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: optional integer: %v", ErrValidation, err)
	}
	*o = KnownInt(n)
	return nil
}

// String implements fmt.Stringer for log output.
func (o OptionalInt) String() string {
	switch {
	case o.known:
		return fmt.Sprintf("%d", o.value)
	case o.unknown:
		return "unknown"
	default:
		return "unset"
	}
}

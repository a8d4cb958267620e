package domain

import "math"

// Float64FromPtrWithDefault returns the first non-nil *float64 value, or the fallback.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// PositiveFloatPtr returns p when it points at a value above zero, else nil.
// Zero and negative weights are treated as "not set".
func PositiveFloatPtr(p *float64) *float64 {
	if p == nil || *p <= 0 {
		return nil
	}
	return p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

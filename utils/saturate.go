// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// SaturateInt16 clamps v to the signed 16-bit range.
func SaturateInt16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// SaturateRange clamps v to [lo, hi].
func SaturateRange(v, lo, hi int32) int32 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp16 linearly interpolates between a and b.
// frac is the position between a (0) and b (1).
func Lerp16(a, b int16, frac float32) float32 {
	return float32(a)*(1-frac) + float32(b)*frac
}

package domain

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// FormatFloat renders v with the fewest digits that still round-trip.
// Trailing zeros are dropped (6.0 -> "6") and negative zero is written as "0".
func FormatFloat(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatVec3 renders a vector as space separated components, the URDF attribute layout.
func FormatVec3(v mgl64.Vec3) string {
	parts := make([]string, 3)
	for i, c := range v {
		parts[i] = FormatFloat(c)
	}
	return strings.Join(parts, " ")
}

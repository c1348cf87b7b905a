package threshold

import (
	"github.com/kpfaulkner/deblock-go/util"
)

const (
	MaxLoopFilter = 63
	MaxSharpness  = 7

	// SIMDWidth is the broadcast width of every threshold. Kernels only read
	// element 0; the replication lets vector code load a full register.
	SIMDWidth = 16

	NumLevels = MaxLoopFilter + 1
)

// Thresholds holds the limits for one filter level, each value replicated
// SIMDWidth times.
type Thresholds struct {
	Mblim  [SIMDWidth]uint8
	Lim    [SIMDWidth]uint8
	HevThr [SIMDWidth]uint8
}

func (t *Thresholds) Blimit() uint8 {
	return t.Mblim[0]
}

func (t *Thresholds) Limit() uint8 {
	return t.Lim[0]
}

func (t *Thresholds) HevThresh() uint8 {
	return t.HevThr[0]
}

func broadcast(dst *[SIMDWidth]uint8, v uint8) {
	for i := range dst {
		dst[i] = v
	}
}

// interiorLimit is the per-pixel gradient limit for a level under the given
// sharpness. Higher sharpness shrinks it.
func interiorLimit(level int, sharpness int) int {
	shift := 0
	if sharpness > 0 {
		shift++
	}
	if sharpness > 4 {
		shift++
	}
	lim := level >> shift

	if sharpness > 0 && lim > 9-sharpness {
		lim = 9 - sharpness
	}
	if lim < 1 {
		lim = 1
	}
	return lim
}

// BuildThresholds computes the broadcast thresholds for one level. Out of range
// levels and sharpness values are clamped.
func BuildThresholds(level int, sharpness int) Thresholds {
	level = util.Clamp(level, 0, MaxLoopFilter)
	sharpness = util.Clamp(sharpness, 0, MaxSharpness)

	lim := interiorLimit(level, sharpness)

	var t Thresholds
	broadcast(&t.Lim, uint8(lim))
	broadcast(&t.Mblim, uint8(2*(level+2)+lim))
	broadcast(&t.HevThr, uint8(level>>4))
	return t
}

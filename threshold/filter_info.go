package threshold

import (
	"github.com/kpfaulkner/deblock-go/util"
)

const (
	MaxSegments     = 8
	MaxRefLFDeltas  = 4
	MaxModeLFDeltas = 2
)

type RefFrame int

const (
	IntraFrame RefFrame = iota
	LastFrame
	GoldenFrame
	AltRefFrame
	MaxRefFrames
)

type PredictionMode int

const (
	DCPred PredictionMode = iota
	VPred
	HPred
	D45Pred
	D135Pred
	D117Pred
	D153Pred
	D207Pred
	D63Pred
	TMPred
	NearestMV
	NearMV
	ZeroMV
	NewMV
	MBModeCount
)

// modeLFLut maps a prediction mode to its mode delta slot. Intra modes and
// ZeroMV share slot 0.
var modeLFLut = [MBModeCount]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 1,
}

// LoopFilterParams is the frame header's loop filter section.
type LoopFilterParams struct {
	Level               int
	Sharpness           int
	ModeRefDeltaEnabled bool
	RefDeltas           [MaxRefLFDeltas]int
	ModeDeltas          [MaxModeLFDeltas]int
}

// DefaultLoopFilterParams returns the deltas a decoder resets to on key frames.
func DefaultLoopFilterParams(level int, sharpness int) LoopFilterParams {
	return LoopFilterParams{
		Level:               level,
		Sharpness:           sharpness,
		ModeRefDeltaEnabled: true,
		RefDeltas:           [MaxRefLFDeltas]int{1, 0, -1, -1},
		ModeDeltas:          [MaxModeLFDeltas]int{0, 0},
	}
}

// Segmentation carries only the ALT_LF segment feature.
type Segmentation struct {
	Enabled bool

	// AbsDelta selects absolute levels instead of deltas from the frame level.
	AbsDelta bool

	AltLFActive [MaxSegments]bool
	AltLF       [MaxSegments]int
}

func (s *Segmentation) altLFActive(segment int) bool {
	return s != nil && s.Enabled && s.AltLFActive[segment]
}

// FilterInfoTable is the per-frame lookup from block attributes to thresholds.
// It is written by NewFilterInfoTable and FrameInit and read-only while
// filtering.
type FilterInfoTable struct {
	thresholds [NumLevels]Thresholds

	// Lvl is indexed [segment][ref][mode delta slot].
	Lvl [MaxSegments][MaxRefFrames][MaxModeLFDeltas]uint8

	sharpness int
	built     bool
}

func NewFilterInfoTable(sharpness int) *FilterInfoTable {
	t := &FilterInfoTable{}
	t.UpdateSharpness(sharpness)
	return t
}

// UpdateSharpness rebuilds all 64 threshold entries.
func (t *FilterInfoTable) UpdateSharpness(sharpness int) {
	sharpness = util.Clamp(sharpness, 0, MaxSharpness)
	for lvl := 0; lvl < NumLevels; lvl++ {
		t.thresholds[lvl] = BuildThresholds(lvl, sharpness)
	}
	t.sharpness = sharpness
	t.built = true
}

func (t *FilterInfoTable) Sharpness() int {
	return t.sharpness
}

// Thresholds returns the entry for level. Out of range levels are clamped.
func (t *FilterInfoTable) Thresholds(level uint8) *Thresholds {
	if int(level) > MaxLoopFilter {
		level = MaxLoopFilter
	}
	return &t.thresholds[level]
}

// FrameInit resolves the level table for a new frame. Limits are only rebuilt
// when the sharpness differs from the last call.
func (t *FilterInfoTable) FrameInit(lf LoopFilterParams, seg *Segmentation) {
	sharpness := util.Clamp(lf.Sharpness, 0, MaxSharpness)
	if !t.built || sharpness != t.sharpness {
		t.UpdateSharpness(sharpness)
	}

	defaultLevel := util.Clamp(lf.Level, 0, MaxLoopFilter)

	// deltas are doubled once the frame level reaches 32
	scale := 1 << (defaultLevel >> 5)

	for segID := 0; segID < MaxSegments; segID++ {
		lvlSeg := defaultLevel
		if seg.altLFActive(segID) {
			data := seg.AltLF[segID]
			if seg.AbsDelta {
				lvlSeg = util.Clamp(data, 0, MaxLoopFilter)
			} else {
				lvlSeg = util.Clamp(defaultLevel+data, 0, MaxLoopFilter)
			}
		}

		if !lf.ModeRefDeltaEnabled {
			for ref := range t.Lvl[segID] {
				for mode := range t.Lvl[segID][ref] {
					t.Lvl[segID][ref][mode] = uint8(lvlSeg)
				}
			}
			continue
		}

		intraLvl := lvlSeg + lf.RefDeltas[IntraFrame]*scale
		t.Lvl[segID][IntraFrame][0] = uint8(util.Clamp(intraLvl, 0, MaxLoopFilter))
		t.Lvl[segID][IntraFrame][1] = 0

		for ref := LastFrame; ref < MaxRefFrames; ref++ {
			for mode := 0; mode < MaxModeLFDeltas; mode++ {
				interLvl := lvlSeg + lf.RefDeltas[ref]*scale + lf.ModeDeltas[mode]*scale
				t.Lvl[segID][ref][mode] = uint8(util.Clamp(interLvl, 0, MaxLoopFilter))
			}
		}
	}
}

// Level returns the filter level for a block. Intra blocks always read slot 0.
func (t *FilterInfoTable) Level(segment int, ref RefFrame, mode PredictionMode) uint8 {
	segment = util.Clamp(segment, 0, MaxSegments-1)
	if ref < IntraFrame || ref >= MaxRefFrames {
		ref = IntraFrame
	}
	slot := 0
	if mode >= 0 && mode < MBModeCount {
		slot = modeLFLut[mode]
	}
	if ref == IntraFrame {
		slot = 0
	}
	return t.Lvl[segment][ref][slot]
}

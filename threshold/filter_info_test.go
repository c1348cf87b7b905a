package threshold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameInitNoDeltas(t *testing.T) {
	table := NewFilterInfoTable(0)
	table.FrameInit(LoopFilterParams{Level: 20}, nil)

	for seg := 0; seg < MaxSegments; seg++ {
		for ref := IntraFrame; ref < MaxRefFrames; ref++ {
			for mode := 0; mode < MaxModeLFDeltas; mode++ {
				assert.Equal(t, uint8(20), table.Lvl[seg][ref][mode])
			}
		}
	}
}

func TestFrameInitSharpnessChange(t *testing.T) {
	table := NewFilterInfoTable(0)
	assert.Equal(t, uint8(20), table.Thresholds(20).Limit())

	table.FrameInit(LoopFilterParams{Level: 20, Sharpness: 4}, nil)
	assert.Equal(t, 4, table.Sharpness())
	assert.Equal(t, uint8(5), table.Thresholds(20).Limit())

	// unchanged sharpness keeps the table
	before := *table.Thresholds(40)
	table.FrameInit(LoopFilterParams{Level: 40, Sharpness: 4}, nil)
	assert.Equal(t, before, *table.Thresholds(40))
}

func TestFrameInitLevels(t *testing.T) {

	for _, tc := range []struct {
		name    string
		lf      LoopFilterParams
		seg     *Segmentation
		segment int
		ref     RefFrame
		mode    PredictionMode
		want    uint8
	}{
		{
			name: "default deltas intra",
			lf:   DefaultLoopFilterParams(20, 0),
			ref:  IntraFrame, mode: DCPred,
			want: 21,
		},
		{
			name: "default deltas last frame newmv",
			lf:   DefaultLoopFilterParams(20, 0),
			ref:  LastFrame, mode: NewMV,
			want: 20,
		},
		{
			name: "default deltas golden zeromv",
			lf:   DefaultLoopFilterParams(20, 0),
			ref:  GoldenFrame, mode: ZeroMV,
			want: 19,
		},
		{
			name: "scale doubles deltas at level 32",
			lf:   DefaultLoopFilterParams(40, 0),
			ref:  AltRefFrame, mode: NearMV,
			want: 38,
		},
		{
			name: "mode delta applies to nearest but not zeromv",
			lf: LoopFilterParams{
				Level: 10, ModeRefDeltaEnabled: true,
				ModeDeltas: [MaxModeLFDeltas]int{0, 3},
			},
			ref: LastFrame, mode: NearestMV,
			want: 13,
		},
		{
			name: "intra ignores mode delta",
			lf: LoopFilterParams{
				Level: 10, ModeRefDeltaEnabled: true,
				ModeDeltas: [MaxModeLFDeltas]int{5, 5},
			},
			ref: IntraFrame, mode: TMPred,
			want: 10,
		},
		{
			name: "clamped to zero",
			lf: LoopFilterParams{
				Level: 2, ModeRefDeltaEnabled: true,
				RefDeltas: [MaxRefLFDeltas]int{-10, 0, 0, 0},
			},
			ref: IntraFrame, mode: DCPred,
			want: 0,
		},
		{
			name: "clamped to max",
			lf: LoopFilterParams{
				Level: 60, ModeRefDeltaEnabled: true,
				RefDeltas: [MaxRefLFDeltas]int{0, 10, 0, 0},
			},
			ref: LastFrame, mode: ZeroMV,
			want: MaxLoopFilter,
		},
		{
			name: "segment delta",
			lf:   LoopFilterParams{Level: 30},
			seg: &Segmentation{
				Enabled:     true,
				AltLFActive: [MaxSegments]bool{false, false, true},
				AltLF:       [MaxSegments]int{0, 0, -12},
			},
			segment: 2, ref: LastFrame, mode: NewMV,
			want: 18,
		},
		{
			name: "segment absolute",
			lf:   LoopFilterParams{Level: 30},
			seg: &Segmentation{
				Enabled:     true,
				AbsDelta:    true,
				AltLFActive: [MaxSegments]bool{false, true},
				AltLF:       [MaxSegments]int{0, 7},
			},
			segment: 1, ref: IntraFrame, mode: DCPred,
			want: 7,
		},
		{
			name: "segment feature inactive when segmentation disabled",
			lf:   LoopFilterParams{Level: 30},
			seg: &Segmentation{
				AltLFActive: [MaxSegments]bool{false, true},
				AltLF:       [MaxSegments]int{0, 7},
			},
			segment: 1, ref: IntraFrame, mode: DCPred,
			want: 30,
		},
		{
			name: "other segments keep frame level",
			lf:   LoopFilterParams{Level: 30},
			seg: &Segmentation{
				Enabled:     true,
				AltLFActive: [MaxSegments]bool{false, false, true},
				AltLF:       [MaxSegments]int{0, 0, -12},
			},
			segment: 0, ref: LastFrame, mode: NewMV,
			want: 30,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			table := NewFilterInfoTable(0)
			table.FrameInit(tc.lf, tc.seg)
			assert.Equal(t, tc.want, table.Level(tc.segment, tc.ref, tc.mode))
		})
	}
}

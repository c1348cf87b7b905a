package threshold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildThresholds(t *testing.T) {

	for _, tc := range []struct {
		name      string
		level     int
		sharpness int
		mblim     uint8
		lim       uint8
		hevThr    uint8
	}{
		{name: "level 0 sharpness 0", level: 0, sharpness: 0, mblim: 5, lim: 1, hevThr: 0},
		{name: "level 10 sharpness 0", level: 10, sharpness: 0, mblim: 34, lim: 10, hevThr: 0},
		{name: "level 32 sharpness 0", level: 32, sharpness: 0, mblim: 100, lim: 32, hevThr: 2},
		{name: "level 63 sharpness 0", level: 63, sharpness: 0, mblim: 193, lim: 63, hevThr: 3},
		{name: "level 20 sharpness 1 capped", level: 20, sharpness: 1, mblim: 52, lim: 8, hevThr: 1},
		{name: "level 6 sharpness 3 shifted", level: 6, sharpness: 3, mblim: 19, lim: 3, hevThr: 0},
		{name: "level 40 sharpness 5 double shift capped", level: 40, sharpness: 5, mblim: 88, lim: 4, hevThr: 2},
		{name: "level 1 sharpness 7 floored", level: 1, sharpness: 7, mblim: 7, lim: 1, hevThr: 0},
		{name: "level clamped high", level: 200, sharpness: 0, mblim: 193, lim: 63, hevThr: 3},
		{name: "level clamped low", level: -4, sharpness: 0, mblim: 5, lim: 1, hevThr: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			th := BuildThresholds(tc.level, tc.sharpness)
			assert.Equal(t, tc.mblim, th.Blimit())
			assert.Equal(t, tc.lim, th.Limit())
			assert.Equal(t, tc.hevThr, th.HevThresh())

			for i := 0; i < SIMDWidth; i++ {
				assert.Equal(t, th.Mblim[0], th.Mblim[i])
				assert.Equal(t, th.Lim[0], th.Lim[i])
				assert.Equal(t, th.HevThr[0], th.HevThr[i])
			}
		})
	}
}

func TestBuildThresholdsFormula(t *testing.T) {
	for sharp := 0; sharp <= MaxSharpness; sharp++ {
		for lvl := 0; lvl <= MaxLoopFilter; lvl++ {
			th := BuildThresholds(lvl, sharp)
			lim := int(th.Limit())
			require.GreaterOrEqual(t, lim, 1)
			if sharp > 0 {
				require.LessOrEqual(t, lim, 9-sharp)
			}
			require.Equal(t, 2*(lvl+2)+lim, int(th.Blimit()))
			require.Equal(t, lvl>>4, int(th.HevThresh()))
		}
	}
}

func TestNewFilterInfoTable(t *testing.T) {
	table := NewFilterInfoTable(2)
	assert.Equal(t, 2, table.Sharpness())

	for lvl := 0; lvl < NumLevels; lvl++ {
		assert.Equal(t, BuildThresholds(lvl, 2), *table.Thresholds(uint8(lvl)))
	}

	// out of range level reads the top entry
	assert.Equal(t, BuildThresholds(MaxLoopFilter, 2), *table.Thresholds(255))
}

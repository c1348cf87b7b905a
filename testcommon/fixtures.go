package testcommon

import (
	"math/rand"

	"github.com/kpfaulkner/deblock-go/image"
	"github.com/kpfaulkner/deblock-go/mask"
	"github.com/kpfaulkner/deblock-go/util"
)

// NewBlockyFrame builds a 4:2:0 frame of miRows x miCols mode-info units that
// looks like a coarsely quantised picture: every 8x8 block has its own base
// value plus a little noise, so block edges are steps worth filtering.
func NewBlockyFrame(miRows, miCols int, seed int64) *image.FrameBuffer {
	rnd := rand.New(rand.NewSource(seed))
	fb := image.NewFrameBuffer(miCols*8, miRows*8)

	for plane, p := range fb.Planes {
		for by := 0; by < p.Height; by += 8 {
			for bx := 0; bx < p.Width; bx += 8 {
				base := 70 + rnd.Intn(60)
				noise := 1 + rnd.Intn(3)
				if rnd.Intn(4) == 0 {
					noise = 12
				}
				for y := by; y < min(by+8, p.Height); y++ {
					for x := bx; x < min(bx+8, p.Width); x++ {
						fb.Set(plane, x, y, byte(base+rnd.Intn(noise)))
					}
				}
			}
		}
	}
	return fb
}

// SuperblockCount is the number of masks a frame of miRows x miCols needs.
func SuperblockCount(miRows, miCols int) int {
	return ((miRows + 7) >> 3) * ((miCols + 7) >> 3)
}

// RandomMasks gives each unit inside the frame one transform size for its left
// and above edges (or none), internal 4x4 edges only with the 4x4 size, and a
// random filter level from levels.
func RandomMasks(miRows, miCols int, seed int64, levels []uint8) []mask.SuperblockEdgeMask {
	rnd := rand.New(rand.NewSource(seed))
	sbCols := (miCols + 7) >> 3
	masks := make([]mask.SuperblockEdgeMask, SuperblockCount(miRows, miCols))

	for i := range masks {
		m := &masks[i]
		sbRow := i / sbCols
		sbCol := i % sbCols

		for r := 0; r < mask.MIBlockSize; r++ {
			for c := 0; c < mask.MIBlockSize; c++ {
				if sbRow*8+r >= miRows || sbCol*8+c >= miCols {
					continue
				}
				m.SetLevel(r, c, levels[rnd.Intn(len(levels))])

				for _, dir := range []mask.Direction{mask.Left, mask.Above} {
					tx := rnd.Intn(int(mask.TxSizes) + 1)
					if tx == int(mask.TxSizes) {
						continue
					}
					m.SetLuma(dir, mask.TxSize(tx), r, c)
					if mask.TxSize(tx) == mask.Tx4x4 && rnd.Intn(2) == 0 {
						m.SetLumaInternal(r, c)
					}
				}

				if r&1 == 0 && c&1 == 0 {
					for _, dir := range []mask.Direction{mask.Left, mask.Above} {
						tx := rnd.Intn(int(mask.TxSizes) + 1)
						if tx == int(mask.TxSizes) {
							continue
						}
						m.SetChroma(dir, mask.TxSize(tx), r>>1, c>>1)
						if mask.TxSize(tx) == mask.Tx4x4 && rnd.Intn(2) == 0 {
							m.SetChromaInternal(r>>1, c>>1)
						}
					}
				}
			}
		}
	}
	return masks
}

// UniformMasks marks every left and above edge inside the frame with tx, plus
// internal edges when tx is 4x4, all at one level.
func UniformMasks(miRows, miCols int, tx mask.TxSize, level uint8) []mask.SuperblockEdgeMask {
	sbCols := (miCols + 7) >> 3
	masks := make([]mask.SuperblockEdgeMask, SuperblockCount(miRows, miCols))

	for i := range masks {
		m := &masks[i]
		sbRow := i / sbCols
		sbCol := i % sbCols

		for r := 0; r < mask.MIBlockSize; r++ {
			for c := 0; c < mask.MIBlockSize; c++ {
				if sbRow*8+r >= miRows || sbCol*8+c >= miCols {
					continue
				}
				m.SetLevel(r, c, level)
				m.SetLuma(mask.Left, tx, r, c)
				m.SetLuma(mask.Above, tx, r, c)
				if tx == mask.Tx4x4 {
					m.SetLumaInternal(r, c)
				}
				if r&1 == 0 && c&1 == 0 {
					m.SetChroma(mask.Left, tx, r>>1, c>>1)
					m.SetChroma(mask.Above, tx, r>>1, c>>1)
					if tx == mask.Tx4x4 {
						m.SetChromaInternal(r>>1, c>>1)
					}
				}
			}
		}
	}
	return masks
}

// FullMasks sets every bit of every mask regardless of the frame size, the
// way a careless builder would.
func FullMasks(count int, level uint8) []mask.SuperblockEdgeMask {
	masks := make([]mask.SuperblockEdgeMask, count)
	for i := range masks {
		m := &masks[i]
		m.LeftY[mask.Tx16x16] = ^uint64(0)
		m.AboveY[mask.Tx16x16] = ^uint64(0)
		m.Int4x4Y = ^uint64(0)
		m.LeftUV[mask.Tx16x16] = ^uint16(0)
		m.AboveUV[mask.Tx16x16] = ^uint16(0)
		m.Int4x4UV = ^uint16(0)
		util.FillBytes(m.LflY[:], level)
	}
	return masks
}

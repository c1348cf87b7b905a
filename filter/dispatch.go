package filter

import (
	"github.com/kpfaulkner/deblock-go/dsp"
	"github.com/kpfaulkner/deblock-go/mask"
	"github.com/kpfaulkner/deblock-go/threshold"
)

type PlaneType int

const (
	PlaneTypeY PlaneType = iota
	PlaneTypeUV
)

// rowGeometry gives the width in units of one mask row for the plane type.
func rowGeometry(pt PlaneType) (shift int, cutoff uint) {
	if pt == PlaneTypeUV {
		return mask.ChromaBlockSize, 0xf
	}
	return mask.MIBlockSize, 0xff
}

func limitsFor(table *threshold.FilterInfoTable, lvl uint8) dsp.Limits {
	t := table.Thresholds(lvl)
	return dsp.Limits{Blimit: t.Blimit(), Limit: t.Limit(), Thresh: t.HevThresh()}
}

// edgeLoop is the signature shared by dsp.LoopFilter4/8/16.
type edgeLoop func(p []byte, off, step, pitch, lines int, lim dsp.Limits)

// vertPair runs one vertical edge kind for a column of a row pair. Both rows set
// means 16 lines; the wide filter uses row 0 thresholds for all of them.
func vertPair(f edgeLoop, buf []byte, off, pitch int, row0, row1 bool, lim0, lim1 dsp.Limits, sharedLimits bool) {
	switch {
	case row0 && row1:
		if sharedLimits {
			f(buf, off, 1, pitch, 16, lim0)
			return
		}
		f(buf, off, 1, pitch, 8, lim0)
		f(buf, off+8*pitch, 1, pitch, 8, lim1)
	case row0:
		f(buf, off, 1, pitch, 8, lim0)
	case row1:
		f(buf, off+8*pitch, 1, pitch, 8, lim1)
	}
}

// filterSelectivelyVertRow2 filters the vertical edges of two mode-info rows.
// bits holds row 0 in its low half and row 1 above it. off is the top-left pixel
// of the pair; lfl starts at row 0's first level and row 1's follow one row
// later.
func filterSelectivelyVertRow2(pt PlaneType, buf []byte, off, pitch int, bits mask.EdgeBits, table *threshold.FilterInfoTable, lfl []uint8) {
	shift, cutoff := rowGeometry(pt)

	m16 := [2]uint{bits.W16 & cutoff, (bits.W16 >> shift) & cutoff}
	m8 := [2]uint{bits.W8 & cutoff, (bits.W8 >> shift) & cutoff}
	m4 := [2]uint{bits.W4 & cutoff, (bits.W4 >> shift) & cutoff}
	m4i := [2]uint{bits.W4Int & cutoff, (bits.W4Int >> shift) & cutoff}

	pending := m16[0] | m8[0] | m4[0] | m4i[0] | m16[1] | m8[1] | m4[1] | m4i[1]
	for c := 0; pending != 0; c++ {
		if pending&1 != 0 {
			s := off + c*8
			lim0 := limitsFor(table, lfl[c])
			lim1 := limitsFor(table, lfl[c+shift])

			vertPair(dsp.LoopFilter16, buf, s, pitch, m16[0]&1 != 0, m16[1]&1 != 0, lim0, lim1, true)
			vertPair(dsp.LoopFilter8, buf, s, pitch, m8[0]&1 != 0, m8[1]&1 != 0, lim0, lim1, false)
			vertPair(dsp.LoopFilter4, buf, s, pitch, m4[0]&1 != 0, m4[1]&1 != 0, lim0, lim1, false)
			vertPair(dsp.LoopFilter4, buf, s+4, pitch, m4i[0]&1 != 0, m4i[1]&1 != 0, lim0, lim1, false)
		}

		pending >>= 1
		for i := 0; i < 2; i++ {
			m16[i] >>= 1
			m8[i] >>= 1
			m4[i] >>= 1
			m4i[i] >>= 1
		}
	}
}

// horizPair runs one horizontal edge kind over one or two adjacent columns
// (count lines of 8 pixels) with each column's own thresholds.
func horizPair(f edgeLoop, buf []byte, off, pitch, count int, lim0, lim1 dsp.Limits) {
	f(buf, off, pitch, 1, 8, lim0)
	if count == 2 {
		f(buf, off+8, pitch, 1, 8, lim1)
	}
}

// filterSelectivelyHoriz filters the horizontal edges of one mode-info row.
// Each column gets at most one of the 16, 8 or 4 edges, widest first, plus the
// internal 4x4 edge 4 rows down.
func filterSelectivelyHoriz(buf []byte, off, pitch int, bits mask.EdgeBits, table *threshold.FilterInfoTable, lfl []uint8) {
	m16, m8, m4, m4i := bits.W16, bits.W8, bits.W4, bits.W4Int

	c := 0
	pending := m16 | m8 | m4 | m4i
	for pending != 0 {
		count := 1
		s := off + c*8

		if pending&1 != 0 {
			lim := limitsFor(table, lfl[c])

			switch {
			case m16&1 != 0:
				if m16&3 == 3 {
					count = 2
				}
				dsp.LoopFilter16(buf, s, pitch, 1, 8*count, lim)

			case m8&1 != 0 || m4&1 != 0:
				f := dsp.LoopFilter4
				pair := m4
				if m8&1 != 0 {
					f = dsp.LoopFilter8
					pair = m8
				}

				if pair&3 == 3 {
					count = 2
					limn := limitsFor(table, lfl[c+1])
					horizPair(f, buf, s, pitch, 2, lim, limn)

					switch {
					case m4i&3 == 3:
						horizPair(dsp.LoopFilter4, buf, s+4*pitch, pitch, 2, lim, limn)
					case m4i&1 != 0:
						dsp.LoopFilter4(buf, s+4*pitch, pitch, 1, 8, lim)
					case m4i&2 != 0:
						dsp.LoopFilter4(buf, s+8+4*pitch, pitch, 1, 8, limn)
					}
				} else {
					f(buf, s, pitch, 1, 8, lim)
					if m4i&1 != 0 {
						dsp.LoopFilter4(buf, s+4*pitch, pitch, 1, 8, lim)
					}
				}

			case m4i&1 != 0:
				dsp.LoopFilter4(buf, s+4*pitch, pitch, 1, 8, lim)
			}
		}

		c += count
		pending >>= count
		m16 >>= count
		m8 >>= count
		m4 >>= count
		m4i >>= count
	}
}

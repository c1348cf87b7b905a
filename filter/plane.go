package filter

import (
	"github.com/kpfaulkner/deblock-go/mask"
	"github.com/kpfaulkner/deblock-go/threshold"
)

// FilterBlockPlaneY filters the luma edges of the superblock whose top-left
// mode-info unit is (miRow, miCol). off is that superblock's top-left pixel in
// buf. All vertical edges are filtered before any horizontal edge.
//
// Edges on the frame's top row and left column are never filtered, and units
// outside the miRows x miCols grid are ignored whatever lfm says.
func FilterBlockPlaneY(table *threshold.FilterInfoTable, lfm *mask.SuperblockEdgeMask, buf []byte, off, stride int, miRows, miCols, miRow, miCol int) {
	rows := min(miRows-miRow, mask.MIBlockSize)
	inside := mask.LumaUnits(rows, miCols-miCol)

	for r := 0; r < rows; r += 2 {
		bits := lfm.LumaLeftPair(r).And(uint((inside >> (r * mask.MIBlockSize)) & 0xffff))
		if miCol == 0 {
			bits = bits.Border(uint(mask.LeftColumnY & 0xffff))
		}
		filterSelectivelyVertRow2(PlaneTypeY, buf, off+r*mask.MIBlockSize*stride, stride, bits, table, lfm.LflY[r*mask.MIBlockSize:])
	}

	for r := 0; r < rows; r++ {
		bits := lfm.LumaAbove(r).And(uint((inside >> (r * mask.MIBlockSize)) & 0xff))
		if miRow+r == 0 {
			bits = bits.Border(0xff)
		}
		filterSelectivelyHoriz(buf, off+r*mask.MIBlockSize*stride, stride, bits, table, lfm.LflY[r*mask.MIBlockSize:])
	}
}

// FilterBlockPlaneUV is FilterBlockPlaneY for one 4:2:0 chroma plane. miRows,
// miCols, miRow and miCol stay in luma units; off is the chroma pixel offset.
// Levels come from the top-left luma unit of each 2x2 group and lfm is not
// modified.
func FilterBlockPlaneUV(table *threshold.FilterInfoTable, lfm *mask.SuperblockEdgeMask, buf []byte, off, stride int, miRows, miCols, miRow, miCol int) {
	rows := min(miRows-miRow, mask.MIBlockSize)
	inside := mask.ChromaUnits((rows+1)>>1, (miCols-miCol+1)>>1)
	// a half-width last chroma column has no internal vertical edge
	insideInt := mask.ChromaUnits((rows+1)>>1, (miCols-miCol)>>1)
	lfl := lfm.ChromaLevels()

	// r counts luma rows; two of them make one chroma row
	for r := 0; r < rows; r += 4 {
		cr := r >> 1
		bits := lfm.ChromaLeftPair(cr).And(uint((inside >> (cr * mask.ChromaBlockSize)) & 0xff))
		bits.W4Int &= uint((insideInt >> (cr * mask.ChromaBlockSize)) & 0xff)
		if miCol == 0 {
			bits = bits.Border(uint(mask.LeftColumnUV & 0xff))
		}
		filterSelectivelyVertRow2(PlaneTypeUV, buf, off+cr*mask.MIBlockSize*stride, stride, bits, table, lfl[cr*mask.ChromaBlockSize:])
	}

	for r := 0; r < rows; r += 2 {
		cr := r >> 1
		bits := lfm.ChromaAbove(cr).And(uint((inside >> (cr * mask.ChromaBlockSize)) & 0xf))
		bits.W4Int &= uint((insideInt >> (cr * mask.ChromaBlockSize)) & 0xf)
		if miRow+r == 0 {
			bits = bits.Border(0xf)
		}
		// a chroma row backed by a single luma row has no internal edge
		if miRow+r == miRows-1 {
			bits.W4Int = 0
		}
		filterSelectivelyHoriz(buf, off+cr*mask.MIBlockSize*stride, stride, bits, table, lfl[cr*mask.ChromaBlockSize:])
	}
}

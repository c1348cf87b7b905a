package mask

// Edge masks for one 64x64 superblock. Luma masks have one bit per 8x8
// mode-info unit in raster order, 8 bits per row; chroma (4:2:0) masks have one
// bit per 8x8 chroma block, 4 bits per row. Bit (r, c) set in a left mask means
// the vertical edge on the left of that unit is filtered; in an above mask the
// horizontal edge on its top.

const (
	// MIBlockSize is the superblock edge in mode-info units.
	MIBlockSize = 8

	// MISizeLog2 converts mode-info units to pixels.
	MISizeLog2 = 3

	SuperblockSize = MIBlockSize << MISizeLog2

	ChromaBlockSize = MIBlockSize >> 1
)

type TxSize int

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32
	TxSizes
)

type Direction int

const (
	Left Direction = iota
	Above
)

type SuperblockEdgeMask struct {
	LeftY   [TxSizes]uint64
	AboveY  [TxSizes]uint64
	Int4x4Y uint64

	LeftUV   [TxSizes]uint16
	AboveUV  [TxSizes]uint16
	Int4x4UV uint16

	// LflY is the filter level of each luma unit.
	LflY [MIBlockSize * MIBlockSize]uint8
}

// EdgeBits are the per-kind masks for one row group, shifted so bit 0 is the
// group's first unit.
type EdgeBits struct {
	W16   uint
	W8    uint
	W4    uint
	W4Int uint
}

func (e EdgeBits) Any() uint {
	return e.W16 | e.W8 | e.W4 | e.W4Int
}

// And keeps only the units in keep.
func (e EdgeBits) And(keep uint) EdgeBits {
	return EdgeBits{
		W16:   e.W16 & keep,
		W8:    e.W8 & keep,
		W4:    e.W4 & keep,
		W4Int: e.W4Int & keep,
	}
}

// Border drops the transform edges in clear but keeps internal 4x4 edges,
// which never lie on the frame border.
func (e EdgeBits) Border(clear uint) EdgeBits {
	return EdgeBits{
		W16:   e.W16 &^ clear,
		W8:    e.W8 &^ clear,
		W4:    e.W4 &^ clear,
		W4Int: e.W4Int,
	}
}

func lumaBits(m *[TxSizes]uint64, int4 uint64, shift int, width uint64) EdgeBits {
	return EdgeBits{
		W16:   uint(((m[Tx16x16] | m[Tx32x32]) >> shift) & width),
		W8:    uint((m[Tx8x8] >> shift) & width),
		W4:    uint((m[Tx4x4] >> shift) & width),
		W4Int: uint((int4 >> shift) & width),
	}
}

func chromaBits(m *[TxSizes]uint16, int4 uint16, shift int, width uint16) EdgeBits {
	return EdgeBits{
		W16:   uint(((m[Tx16x16] | m[Tx32x32]) >> shift) & width),
		W8:    uint((m[Tx8x8] >> shift) & width),
		W4:    uint((m[Tx4x4] >> shift) & width),
		W4Int: uint((int4 >> shift) & width),
	}
}

// LumaLeftPair returns the left edges of luma rows r and r+1 (16 bits, row r in
// the low byte). r must be even.
func (m *SuperblockEdgeMask) LumaLeftPair(r int) EdgeBits {
	return lumaBits(&m.LeftY, m.Int4x4Y, r*MIBlockSize, 0xffff)
}

// LumaAbove returns the above edges of luma row r (8 bits).
func (m *SuperblockEdgeMask) LumaAbove(r int) EdgeBits {
	return lumaBits(&m.AboveY, m.Int4x4Y, r*MIBlockSize, 0xff)
}

// ChromaLeftPair returns the left edges of chroma rows cr and cr+1 (8 bits).
func (m *SuperblockEdgeMask) ChromaLeftPair(cr int) EdgeBits {
	return chromaBits(&m.LeftUV, m.Int4x4UV, cr*ChromaBlockSize, 0xff)
}

// ChromaAbove returns the above edges of chroma row cr (4 bits).
func (m *SuperblockEdgeMask) ChromaAbove(cr int) EdgeBits {
	return chromaBits(&m.AboveUV, m.Int4x4UV, cr*ChromaBlockSize, 0xf)
}

// ChromaLevels samples the luma levels at the top-left unit of each 2x2 group.
func (m *SuperblockEdgeMask) ChromaLevels() [ChromaBlockSize * ChromaBlockSize]uint8 {
	var lfl [ChromaBlockSize * ChromaBlockSize]uint8
	for cr := 0; cr < ChromaBlockSize; cr++ {
		for c := 0; c < ChromaBlockSize; c++ {
			lfl[cr*ChromaBlockSize+c] = m.LflY[(cr*2)*MIBlockSize+c*2]
		}
	}
	return lfl
}

// LumaUnits is the mask of luma units in the first rows rows and cols columns.
func LumaUnits(rows, cols int) uint64 {
	rows = min(max(rows, 0), MIBlockSize)
	cols = min(max(cols, 0), MIBlockSize)

	row := uint64(1)<<cols - 1
	var m uint64
	for r := 0; r < rows; r++ {
		m |= row << (r * MIBlockSize)
	}
	return m
}

// ChromaUnits is LumaUnits for the 4x4 chroma grid.
func ChromaUnits(rows, cols int) uint16 {
	rows = min(max(rows, 0), ChromaBlockSize)
	cols = min(max(cols, 0), ChromaBlockSize)

	row := uint16(1)<<cols - 1
	var m uint16
	for r := 0; r < rows; r++ {
		m |= row << (r * ChromaBlockSize)
	}
	return m
}

const (
	// LeftColumnY selects column 0 of every luma row.
	LeftColumnY uint64 = 0x0101010101010101
	// LeftColumnUV selects column 0 of every chroma row.
	LeftColumnUV uint16 = 0x1111
)

func lumaBit(r, c int) uint64 {
	return 1 << (r*MIBlockSize + c)
}

func chromaBit(r, c int) uint16 {
	return 1 << (r*ChromaBlockSize + c)
}

// SetLuma marks the dir edge of luma unit (r, c) with transform size tx.
func (m *SuperblockEdgeMask) SetLuma(dir Direction, tx TxSize, r, c int) {
	if dir == Left {
		m.LeftY[tx] |= lumaBit(r, c)
	} else {
		m.AboveY[tx] |= lumaBit(r, c)
	}
}

// SetLumaInternal marks the internal 4x4 edges of luma unit (r, c).
func (m *SuperblockEdgeMask) SetLumaInternal(r, c int) {
	m.Int4x4Y |= lumaBit(r, c)
}

func (m *SuperblockEdgeMask) SetChroma(dir Direction, tx TxSize, r, c int) {
	if dir == Left {
		m.LeftUV[tx] |= chromaBit(r, c)
	} else {
		m.AboveUV[tx] |= chromaBit(r, c)
	}
}

func (m *SuperblockEdgeMask) SetChromaInternal(r, c int) {
	m.Int4x4UV |= chromaBit(r, c)
}

// SetLevel sets the filter level of luma unit (r, c).
func (m *SuperblockEdgeMask) SetLevel(r, c int, level uint8) {
	m.LflY[r*MIBlockSize+c] = level
}

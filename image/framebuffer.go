package image

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/kpfaulkner/deblock-go/util"
)

const (
	PlaneY = 0
	PlaneU = 1
	PlaneV = 2

	MaxPlanes = 3

	// StrideAlign is the row alignment NewFrameBuffer uses.
	StrideAlign = 32

	// BlockAlign is the plane size granularity NewFrameBuffer uses.
	BlockAlign = 8
)

var (
	ErrPlaneOutOfBounds = errors.New("plane outside frame data")
	ErrPlaneOverlap     = errors.New("planes overlap")
	ErrBadPlaneLayout   = errors.New("bad plane layout")
)

// PlaneLayout locates one plane inside FrameBuffer.Data.
type PlaneLayout struct {
	Offset int
	Stride int
	Width  int
	Height int
}

// End is one past the last byte the plane covers.
func (p PlaneLayout) End() int {
	if p.Height == 0 {
		return p.Offset
	}
	return p.Offset + (p.Height-1)*p.Stride + p.Width
}

func (p PlaneLayout) Index(x, y int) int {
	return p.Offset + y*p.Stride + x
}

// FrameBuffer is a reconstructed frame: one allocation holding every plane.
type FrameBuffer struct {
	Data   []byte
	Planes []PlaneLayout

	pooled bool
}

func planeLayouts(width, height int) ([]PlaneLayout, int) {
	w := util.AlignUp(width, BlockAlign)
	h := util.AlignUp(height, BlockAlign)
	cw := util.AlignUp((w+1)>>1, BlockAlign)
	ch := util.AlignUp((h+1)>>1, BlockAlign)

	y := PlaneLayout{Stride: util.AlignUp(w, StrideAlign), Width: w, Height: h}
	u := PlaneLayout{Offset: y.Stride * h, Stride: util.AlignUp(cw, StrideAlign), Width: cw, Height: ch}
	v := u
	v.Offset = u.Offset + u.Stride*ch

	return []PlaneLayout{y, u, v}, v.Offset + v.Stride*ch
}

// NewFrameBuffer allocates a zeroed 4:2:0 frame from the shared byte pool.
// Every plane is rounded up to whole 8x8 blocks, so a chroma plane covers the
// half-block a luma plane with an odd number of 8x8 units needs. Release hands
// the memory back.
func NewFrameBuffer(width, height int) *FrameBuffer {
	planes, size := planeLayouts(width, height)
	return &FrameBuffer{
		Data:   util.GetPooledBytes(size),
		Planes: planes,
		pooled: true,
	}
}

// NewFrameBufferFromPlanes wraps caller owned memory.
func NewFrameBufferFromPlanes(data []byte, planes []PlaneLayout) (*FrameBuffer, error) {
	fb := &FrameBuffer{Data: data, Planes: planes}
	if err := fb.Validate(); err != nil {
		return nil, err
	}
	return fb, nil
}

// Validate checks every plane fits inside Data and no two planes share bytes.
func (fb *FrameBuffer) Validate() error {
	for i, p := range fb.Planes {
		if p.Width < 0 || p.Height < 0 || p.Offset < 0 || (p.Height > 1 && p.Stride < p.Width) {
			return fmt.Errorf("plane %d %+v: %w", i, p, ErrBadPlaneLayout)
		}
		if p.End() > len(fb.Data) {
			return fmt.Errorf("plane %d ends at %d, data is %d bytes: %w", i, p.End(), len(fb.Data), ErrPlaneOutOfBounds)
		}
	}

	order := make([]int, len(fb.Planes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return fb.Planes[order[a]].Offset < fb.Planes[order[b]].Offset
	})
	for i := 1; i < len(order); i++ {
		prev := fb.Planes[order[i-1]]
		cur := fb.Planes[order[i]]
		if prev.End() > cur.Offset && cur.End() > cur.Offset {
			return fmt.Errorf("planes %d and %d: %w", order[i-1], order[i], ErrPlaneOverlap)
		}
	}
	return nil
}

func (fb *FrameBuffer) At(plane, x, y int) byte {
	return fb.Data[fb.Planes[plane].Index(x, y)]
}

func (fb *FrameBuffer) Set(plane, x, y int, v byte) {
	fb.Data[fb.Planes[plane].Index(x, y)] = v
}

// Row returns the visible pixels of row y of a plane.
func (fb *FrameBuffer) Row(plane, y int) []byte {
	p := fb.Planes[plane]
	start := p.Index(0, y)
	return fb.Data[start : start+p.Width]
}

// Clone copies the frame into pooled memory.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	data := util.GetPooledBytes(len(fb.Data))
	copy(data, fb.Data)
	planes := make([]PlaneLayout, len(fb.Planes))
	copy(planes, fb.Planes)
	return &FrameBuffer{Data: data, Planes: planes, pooled: true}
}

// Release returns pooled memory. The frame must not be used afterwards.
func (fb *FrameBuffer) Release() {
	if fb.pooled {
		util.ReturnBytesToPool(fb.Data)
	}
	fb.Data = nil
	fb.pooled = false
}

// Equals compares the visible pixels of two frames with the same plane sizes.
// Padding bytes are ignored.
func (fb *FrameBuffer) Equals(other *FrameBuffer) bool {
	_, _, _, same := fb.FirstDifference(other)
	return same
}

// FirstDifference returns the first differing pixel in plane, row, column
// order. ok is true when there is none.
func (fb *FrameBuffer) FirstDifference(other *FrameBuffer) (plane, x, y int, ok bool) {
	if other == nil || len(fb.Planes) != len(other.Planes) {
		return -1, 0, 0, false
	}
	for i, p := range fb.Planes {
		o := other.Planes[i]
		if p.Width != o.Width || p.Height != o.Height {
			return i, 0, 0, false
		}
		for row := 0; row < p.Height; row++ {
			a := fb.Row(i, row)
			b := other.Row(i, row)
			if bytes.Equal(a, b) {
				continue
			}
			for col := range a {
				if a[col] != b[col] {
					return i, col, row, false
				}
			}
		}
	}
	return 0, 0, 0, true
}

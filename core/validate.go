package core

import (
	"errors"
	"fmt"

	"github.com/kpfaulkner/deblock-go/image"
	"github.com/kpfaulkner/deblock-go/mask"
	"github.com/kpfaulkner/deblock-go/threshold"
	"github.com/kpfaulkner/deblock-go/util"
)

var (
	ErrInvalidFrame = errors.New("invalid frame buffer")
	ErrInvalidMasks = errors.New("invalid edge masks")
	ErrInvalidRange = errors.New("invalid row range")
	ErrMissingTable = errors.New("missing filter info table")
)

// validateFrame checks everything the filter would otherwise find out about
// by indexing out of range halfway through a frame.
func validateFrame(rowStart, rowStop, numPlanes, miRows, miCols int, fb *image.FrameBuffer,
	table *threshold.FilterInfoTable, masks []mask.SuperblockEdgeMask) error {

	if fb == nil {
		return fmt.Errorf("nil frame: %w", ErrInvalidFrame)
	}
	if table == nil {
		return ErrMissingTable
	}
	if numPlanes != 1 && numPlanes != image.MaxPlanes {
		return fmt.Errorf("%d planes requested, need 1 or %d: %w", numPlanes, image.MaxPlanes, ErrInvalidFrame)
	}
	if len(fb.Planes) < numPlanes {
		return fmt.Errorf("frame has %d planes, %d requested: %w", len(fb.Planes), numPlanes, ErrInvalidFrame)
	}

	if miRows < 0 || miCols < 0 {
		return fmt.Errorf("grid %dx%d: %w", miRows, miCols, ErrInvalidRange)
	}
	if rowStart < 0 || rowStart%mask.MIBlockSize != 0 {
		return fmt.Errorf("row start %d not on a superblock row: %w", rowStart, ErrInvalidRange)
	}
	if rowStop > miRows || rowStart > rowStop {
		return fmt.Errorf("rows %d-%d outside 0-%d: %w", rowStart, rowStop, miRows, ErrInvalidRange)
	}

	if err := fb.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	for i := 0; i < numPlanes; i++ {
		w, h := miCols*mask.MIBlockSize, miRows*mask.MIBlockSize
		if i != image.PlaneY {
			// chroma planes are filtered in whole 8x8 blocks
			w = util.CeilDiv(miCols, 2) * mask.MIBlockSize
			h = util.CeilDiv(miRows, 2) * mask.MIBlockSize
		}
		p := fb.Planes[i]
		if p.Width < w || p.Height < h {
			return fmt.Errorf("plane %d is %dx%d, grid needs %dx%d: %w", i, p.Width, p.Height, w, h, ErrInvalidFrame)
		}
	}

	sbCols := util.CeilDiv(miCols, mask.MIBlockSize)
	if need := util.CeilDiv(rowStop, mask.MIBlockSize) * sbCols; len(masks) < need {
		return fmt.Errorf("%d masks for %d superblocks: %w", len(masks), need, ErrInvalidMasks)
	}
	return nil
}

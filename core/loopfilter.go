package core

import (
	"errors"
	"sync/atomic"

	"github.com/kpfaulkner/deblock-go/dsp"
	"github.com/kpfaulkner/deblock-go/image"
	"github.com/kpfaulkner/deblock-go/mask"
	"github.com/kpfaulkner/deblock-go/options"
	"github.com/kpfaulkner/deblock-go/threshold"
	"github.com/kpfaulkner/deblock-go/util"
)

var ErrInvalidOption = errors.New("invalid loop filter option")

type LoopFilterOption func(lf *LoopFilter) error

func WithLumaWorkers(n int) LoopFilterOption {
	return func(lf *LoopFilter) error {
		if n < 1 {
			return ErrInvalidOption
		}
		lf.options.LumaWorkers = n
		return nil
	}
}

func WithPrefetch(enabled bool) LoopFilterOption {
	return func(lf *LoopFilter) error {
		lf.options.Prefetch = enabled
		return nil
	}
}

func WithChromaInline(inline bool) LoopFilterOption {
	return func(lf *LoopFilter) error {
		lf.options.ChromaInline = inline
		return nil
	}
}

// WithPrefetcher replaces the cache line prefetcher. It is only used while
// prefetching is enabled.
func WithPrefetcher(p dsp.Prefetcher) LoopFilterOption {
	return func(lf *LoopFilter) error {
		if p == nil {
			return ErrInvalidOption
		}
		lf.prefetcher = p
		return nil
	}
}

// LoopFilter deblocks a stream of frames with one set of options and keeps
// running totals. Safe for concurrent use by several decoders.
type LoopFilter struct {
	options    *options.LoopFilterOptions
	prefetcher dsp.Prefetcher

	frames      atomic.Uint64
	superblocks atomic.Uint64
}

func NewLoopFilter(opts ...LoopFilterOption) (*LoopFilter, error) {
	lf := &LoopFilter{
		options: options.NewLoopFilterOptions(nil),
	}

	for _, opt := range opts {
		if err := opt(lf); err != nil {
			return nil, err
		}
	}
	if lf.prefetcher == nil {
		lf.prefetcher = defaultPrefetcher()
	}
	return lf, nil
}

func (lf *LoopFilter) Options() options.LoopFilterOptions {
	return *lf.options
}

// FilterFrame is core.FilterFrame with the session's options.
func (lf *LoopFilter) FilterFrame(rowStart, rowStop, numPlanes, miRows, miCols int, fb *image.FrameBuffer,
	table *threshold.FilterInfoTable, masks []mask.SuperblockEdgeMask) error {

	var prefetcher dsp.Prefetcher
	if lf.options.Prefetch {
		prefetcher = lf.prefetcher
	}
	if err := filterFrame(rowStart, rowStop, numPlanes, miRows, miCols, fb, table, masks, lf.options, prefetcher); err != nil {
		return err
	}

	sbRows := util.CeilDiv(rowStop-rowStart, mask.MIBlockSize)
	sbCols := util.CeilDiv(miCols, mask.MIBlockSize)
	lf.frames.Add(1)
	lf.superblocks.Add(uint64(sbRows * sbCols * numPlanes))
	return nil
}

func (lf *LoopFilter) FramesFiltered() uint64 {
	return lf.frames.Load()
}

// SuperblocksFiltered counts superblocks per plane, so a three plane frame
// adds three per superblock.
func (lf *LoopFilter) SuperblocksFiltered() uint64 {
	return lf.superblocks.Load()
}

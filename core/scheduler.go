package core

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/deblock-go/dsp"
	"github.com/kpfaulkner/deblock-go/filter"
	"github.com/kpfaulkner/deblock-go/image"
	"github.com/kpfaulkner/deblock-go/mask"
	"github.com/kpfaulkner/deblock-go/options"
	"github.com/kpfaulkner/deblock-go/threshold"
	"github.com/kpfaulkner/deblock-go/util"
)

const (
	// prefetchMargin is how far above and left of a superblock the filters reach.
	prefetchMargin = 8
)

var defaultPrefetcher = sync.OnceValue(func() dsp.Prefetcher {
	return dsp.NewCachePrefetcher()
})

// jobCounter is a count of superblocks a luma worker may start. The worker
// filtering the row above grants them as it finishes columns.
type jobCounter struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

func newJobCounter(count int) *jobCounter {
	jc := &jobCounter{count: count}
	jc.cond = sync.NewCond(&jc.mu)
	return jc
}

// take blocks until a token is available and consumes it.
func (jc *jobCounter) take() {
	jc.mu.Lock()
	for jc.count == 0 {
		jc.cond.Wait()
	}
	jc.count--
	jc.mu.Unlock()
}

func (jc *jobCounter) grant(n int) {
	if n <= 0 {
		return
	}
	jc.mu.Lock()
	jc.count += n
	jc.mu.Unlock()
	jc.cond.Broadcast()
}

// RowJob is one worker's share of a frame: every Step mode-info rows starting
// at StartRow, up to StopRow, for each plane in Planes.
type RowJob struct {
	StartRow int
	StopRow  int
	Step     int
	Planes   []int
}

// frameJob holds what every worker of one FilterFrame call reads.
type frameJob struct {
	fb     *image.FrameBuffer
	table  *threshold.FilterInfoTable
	masks  []mask.SuperblockEdgeMask
	miRows int
	miCols int
	sbCols int

	// nil when prefetching is off
	prefetcher dsp.Prefetcher
}

func (fj *frameJob) filterSuperblock(plane, miRow, sbCol int) {
	miCol := sbCol << mask.MISizeLog2
	lfm := &fj.masks[(miRow>>mask.MISizeLog2)*fj.sbCols+sbCol]
	p := fj.fb.Planes[plane]

	unit, size := mask.MIBlockSize, mask.SuperblockSize
	if plane != image.PlaneY {
		unit, size = mask.ChromaBlockSize, mask.SuperblockSize/2
	}
	x, y := miCol*unit, miRow*unit
	off := p.Index(x, y)

	if fj.prefetcher != nil {
		fj.prefetch(p, x, y, size)
	}

	if plane == image.PlaneY {
		filter.FilterBlockPlaneY(fj.table, lfm, fj.fb.Data, off, p.Stride, fj.miRows, fj.miCols, miRow, miCol)
		return
	}
	filter.FilterBlockPlaneUV(fj.table, lfm, fj.fb.Data, off, p.Stride, fj.miRows, fj.miCols, miRow, miCol)
}

// prefetch warms the superblock at (x, y) plus the margin above and left of it
// that its edges reach into, clipped to the plane.
func (fj *frameJob) prefetch(p image.PlaneLayout, x, y, size int) {
	x0 := util.Max(x-prefetchMargin, 0)
	y0 := util.Max(y-prefetchMargin, 0)
	w := util.Min(x+size, p.Width) - x0
	h := util.Min(y+size, p.Height) - y0
	fj.prefetcher.PrefetchBox(fj.fb.Data, p.Index(x0, y0), w, h, p.Stride)
}

// lumaRows filters the luma superblock rows of job. Before each superblock it
// takes a token from own; afterwards it passes tokens to next so the row below
// can start a column once this row has finished the column to its right.
func (fj *frameJob) lumaRows(job RowJob, own *jobCounter, next *jobCounter) {
	last := fj.sbCols - 1
	for miRow := job.StartRow; miRow < job.StopRow; miRow += job.Step {
		for sbCol := 0; sbCol <= last; sbCol++ {
			own.take()
			fj.filterSuperblock(image.PlaneY, miRow, sbCol)

			grant := 0
			if sbCol > 0 {
				grant++
			}
			if sbCol == last {
				grant++
			}
			next.grant(grant)
		}
	}
}

// rows filters every superblock of job in raster order, one plane at a time.
func (fj *frameJob) rows(job RowJob) {
	for _, plane := range job.Planes {
		for miRow := job.StartRow; miRow < job.StopRow; miRow += job.Step {
			for sbCol := 0; sbCol < fj.sbCols; sbCol++ {
				fj.filterSuperblock(plane, miRow, sbCol)
			}
		}
	}
}

func planeList(numPlanes int) []int {
	if numPlanes == 1 {
		return []int{image.PlaneY}
	}
	return []int{image.PlaneY, image.PlaneU, image.PlaneV}
}

// FilterFrame deblocks mode-info rows [rowStart, rowStop) of fb in place.
// masks covers the whole frame in raster superblock order. Luma is shared by
// opts.LumaWorkers goroutines interleaving superblock rows; chroma is filtered
// concurrently with it. The call returns once every plane is done.
//
// Invalid input is reported before any pixel is touched.
func FilterFrame(rowStart, rowStop, numPlanes, miRows, miCols int, fb *image.FrameBuffer,
	table *threshold.FilterInfoTable, masks []mask.SuperblockEdgeMask, opts *options.LoopFilterOptions) error {

	opt := options.NewLoopFilterOptions(opts)
	var prefetcher dsp.Prefetcher
	if opt.Prefetch {
		prefetcher = defaultPrefetcher()
	}
	return filterFrame(rowStart, rowStop, numPlanes, miRows, miCols, fb, table, masks, opt, prefetcher)
}

// FilterFrameSerial is FilterFrame on the calling goroutine. Every plane is
// filtered in raster superblock order.
func FilterFrameSerial(rowStart, rowStop, numPlanes, miRows, miCols int, fb *image.FrameBuffer,
	table *threshold.FilterInfoTable, masks []mask.SuperblockEdgeMask) error {

	if err := validateFrame(rowStart, rowStop, numPlanes, miRows, miCols, fb, table, masks); err != nil {
		return err
	}
	fj := newFrameJob(miRows, miCols, fb, table, masks, nil)
	fj.rows(RowJob{StartRow: rowStart, StopRow: rowStop, Step: mask.MIBlockSize, Planes: planeList(numPlanes)})
	return nil
}

func newFrameJob(miRows, miCols int, fb *image.FrameBuffer, table *threshold.FilterInfoTable,
	masks []mask.SuperblockEdgeMask, prefetcher dsp.Prefetcher) *frameJob {
	return &frameJob{
		fb:         fb,
		table:      table,
		masks:      masks,
		miRows:     miRows,
		miCols:     miCols,
		sbCols:     util.CeilDiv(miCols, mask.MIBlockSize),
		prefetcher: prefetcher,
	}
}

func filterFrame(rowStart, rowStop, numPlanes, miRows, miCols int, fb *image.FrameBuffer,
	table *threshold.FilterInfoTable, masks []mask.SuperblockEdgeMask, opt *options.LoopFilterOptions,
	prefetcher dsp.Prefetcher) error {

	if err := validateFrame(rowStart, rowStop, numPlanes, miRows, miCols, fb, table, masks); err != nil {
		return err
	}
	if rowStart == rowStop || miCols == 0 {
		return nil
	}

	fj := newFrameJob(miRows, miCols, fb, table, masks, prefetcher)
	sbRows := util.CeilDiv(rowStop-rowStart, mask.MIBlockSize)
	workers := util.Min(opt.LumaWorkers, sbRows)

	log.Debugf("loop filter rows %d-%d of %dx%d, %d luma workers, %d planes", rowStart, rowStop, miRows, miCols, workers, numPlanes)

	if workers <= 1 {
		fj.rows(RowJob{StartRow: rowStart, StopRow: rowStop, Step: mask.MIBlockSize, Planes: planeList(numPlanes)})
		return nil
	}

	counters := make([]*jobCounter, workers)
	for i := range counters {
		counters[i] = newJobCounter(0)
	}
	// the first row has nothing above it to wait for
	counters[0].grant(fj.sbCols)

	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		job := RowJob{
			StartRow: rowStart + w*mask.MIBlockSize,
			StopRow:  rowStop,
			Step:     workers * mask.MIBlockSize,
			Planes:   []int{image.PlaneY},
		}
		own := counters[w]
		next := counters[(w+1)%workers]
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log.Tracef("luma worker %d starting at row %d", id, job.StartRow)
			fj.lumaRows(job, own, next)
			log.Tracef("luma worker %d done", id)
		}(w)
	}

	if numPlanes > 1 {
		chroma := RowJob{StartRow: rowStart, StopRow: rowStop, Step: mask.MIBlockSize, Planes: []int{image.PlaneU, image.PlaneV}}
		if opt.ChromaInline {
			fj.rows(chroma)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				log.Tracef("chroma worker starting at row %d", chroma.StartRow)
				fj.rows(chroma)
				log.Tracef("chroma worker done")
			}()
		}
	}

	wg.Wait()
	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/deblock-go/core"
	"github.com/kpfaulkner/deblock-go/dsp"
	"github.com/kpfaulkner/deblock-go/testcommon"
	"github.com/kpfaulkner/deblock-go/threshold"
	"github.com/kpfaulkner/deblock-go/util"
)

func main() {

	// 1920x1080
	const miRows, miCols = 135, 240
	const frames = 50

	//p := profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	defer p.Stop()

	fmt.Printf("cpu %s\n", dsp.CPUSummary())

	fb := testcommon.NewBlockyFrame(miRows, miCols, 1)
	defer fb.Release()
	masks := testcommon.RandomMasks(miRows, miCols, 1, []uint8{8, 16, 24, 32, 40, 48})

	table := threshold.NewFilterInfoTable(0)
	table.FrameInit(threshold.DefaultLoopFilterParams(32, 0), nil)

	for _, workers := range []int{1, 2, 4} {
		lf, err := core.NewLoopFilter(core.WithLumaWorkers(workers))
		if err != nil {
			log.Errorf("Error creating loop filter: %v\n", err)
			return
		}

		start := time.Now()
		for count := 0; count < frames; count++ {
			if err := lf.FilterFrame(0, miRows, 3, miRows, miCols, fb, table, masks); err != nil {
				log.Errorf("Error filtering: %v\n", err)
				return
			}
		}
		elapsed := time.Since(start)
		fmt.Printf("%d luma workers: %d frames in %d ms (%.2f ms/frame), %d superblocks\n",
			workers, lf.FramesFiltered(), elapsed.Milliseconds(),
			float64(elapsed.Microseconds())/1000/frames, lf.SuperblocksFiltered())
	}

	fmt.Printf("pool %v\n", util.GetPoolMetrics())
}

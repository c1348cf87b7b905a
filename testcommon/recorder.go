package testcommon

import (
	"sync"

	"github.com/kpfaulkner/deblock-go/dsp"
)

type PrefetchBox struct {
	Off    int
	Width  int
	Height int
	Stride int
}

// PrefetchRecorder records every box requested and forwards to an optional
// real prefetcher. Safe for concurrent use.
type PrefetchRecorder struct {
	mu    sync.Mutex
	Boxes []PrefetchBox

	real dsp.Prefetcher
}

func NewPrefetchRecorder(real dsp.Prefetcher) *PrefetchRecorder {
	return &PrefetchRecorder{real: real}
}

func (pr *PrefetchRecorder) PrefetchBox(buf []byte, off, width, height, stride int) {
	if pr.real != nil {
		pr.real.PrefetchBox(buf, off, width, height, stride)
	}
	pr.mu.Lock()
	pr.Boxes = append(pr.Boxes, PrefetchBox{Off: off, Width: width, Height: height, Stride: stride})
	pr.mu.Unlock()
}

func (pr *PrefetchRecorder) Count() int {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return len(pr.Boxes)
}

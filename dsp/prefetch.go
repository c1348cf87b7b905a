package dsp

import (
	"fmt"
	"sync/atomic"

	"github.com/klauspost/cpuid"

	"github.com/kpfaulkner/deblock-go/util"
)

// Prefetcher warms a rectangle of a plane before it is filtered.
type Prefetcher interface {
	PrefetchBox(buf []byte, off, width, height, stride int)
}

type NoopPrefetcher struct{}

func (NoopPrefetcher) PrefetchBox(buf []byte, off, width, height, stride int) {}

// CachePrefetcher touches one byte per cache line of the box. Boxes larger than
// the budget are skipped since they would evict themselves.
type CachePrefetcher struct {
	lineSize int
	budget   int

	// sink keeps the loads from being discarded. Workers share one prefetcher.
	sink atomic.Uint32
}

const (
	defaultCacheLine = 64
	defaultL2        = 256 * 1024
)

func NewCachePrefetcher() *CachePrefetcher {
	line := cpuid.CPU.CacheLine
	if line <= 0 {
		line = defaultCacheLine
	}
	l2 := cpuid.CPU.Cache.L2
	if l2 <= 0 {
		l2 = defaultL2
	}
	return &CachePrefetcher{lineSize: line, budget: util.Max(l2/2, line)}
}

func (c *CachePrefetcher) LineSize() int {
	return c.lineSize
}

func (c *CachePrefetcher) PrefetchBox(buf []byte, off, width, height, stride int) {
	if width <= 0 || height <= 0 || width*height > c.budget {
		return
	}

	var acc byte
	for y := 0; y < height; y++ {
		row := off + y*stride
		if row < 0 {
			continue
		}
		if row >= len(buf) {
			break
		}
		end := min(row+width, len(buf))
		for x := row; x < end; x += c.lineSize {
			acc ^= buf[x]
		}
		acc ^= buf[end-1]
	}
	c.sink.Store(uint32(acc))
}

// CPUSummary describes the features the kernels and prefetcher care about.
func CPUSummary() string {
	return fmt.Sprintf("%s: %d cores, cacheline %d, L1D %d, L2 %d, SSE2 %v, AVX2 %v",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.CacheLine,
		cpuid.CPU.Cache.L1D, cpuid.CPU.Cache.L2, cpuid.CPU.SSE2(), cpuid.CPU.AVX2())
}

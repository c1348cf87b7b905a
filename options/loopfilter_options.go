package options

const (
	// DefaultLumaWorkers is the number of goroutines sharing the luma plane. Two
	// workers alternate superblock rows.
	DefaultLumaWorkers = 2
)

type LoopFilterOptions struct {
	// LumaWorkers is the number of goroutines that interleave luma superblock rows.
	// Zero or negative means DefaultLumaWorkers.
	LumaWorkers int

	// Prefetch enables the per-superblock cache warm-up hint.
	Prefetch bool

	// ChromaInline filters the chroma planes on the calling goroutine while the
	// luma workers run, instead of on a goroutine of their own.
	ChromaInline bool
}

// NewLoopFilterOptions copies options (if supplied) and fills in defaults.
func NewLoopFilterOptions(options *LoopFilterOptions) *LoopFilterOptions {

	opt := &LoopFilterOptions{
		LumaWorkers: DefaultLumaWorkers,
		Prefetch:    true,
	}
	if options != nil {
		if options.LumaWorkers > 0 {
			opt.LumaWorkers = options.LumaWorkers
		}
		opt.Prefetch = options.Prefetch
		opt.ChromaInline = options.ChromaInline
	}
	return opt
}

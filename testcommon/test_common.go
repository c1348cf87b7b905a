package testcommon

import (
	"testing"

	"github.com/kpfaulkner/deblock-go/image"
	"github.com/kpfaulkner/deblock-go/threshold"
)

// RequireSameFrame fails the test at the first pixel that differs.
func RequireSameFrame(t *testing.T, expected *image.FrameBuffer, actual *image.FrameBuffer) {
	t.Helper()
	plane, x, y, ok := expected.FirstDifference(actual)
	if !ok {
		t.Fatalf("frames differ at plane %d (%d,%d)", plane, x, y)
	}
}

// NewTable builds a filter info table with the default deltas at one level.
func NewTable(level int, sharpness int) *threshold.FilterInfoTable {
	table := threshold.NewFilterInfoTable(sharpness)
	table.FrameInit(threshold.DefaultLoopFilterParams(level, sharpness), nil)
	return table
}

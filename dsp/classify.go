package dsp

import "github.com/kpfaulkner/deblock-go/util"

// Edge classification. Arguments are named from the edge outwards: p0 and q0
// sit either side of the edge, p3/q3 (or p4/q4) furthest away.

// FlatThresh is the flatness threshold used by every filter level.
const FlatThresh = 1

func absDiff(a, b uint8) int {
	return util.Abs(int(a) - int(b))
}

// FilterMask reports whether an edge line should be filtered at all: every
// neighbouring delta is within limit and the step across the edge is within
// blimit.
func FilterMask(limit, blimit uint8, p3, p2, p1, p0, q0, q1, q2, q3 uint8) bool {
	l := int(limit)
	if absDiff(p3, p2) > l || absDiff(p2, p1) > l || absDiff(p1, p0) > l ||
		absDiff(q1, q0) > l || absDiff(q2, q1) > l || absDiff(q3, q2) > l {
		return false
	}
	return absDiff(p0, q0)*2+absDiff(p1, q1)/2 <= int(blimit)
}

// HevMask reports high edge variance.
func HevMask(thresh uint8, p1, p0, q0, q1 uint8) bool {
	t := int(thresh)
	return absDiff(p1, p0) > t || absDiff(q1, q0) > t
}

func FlatMask4(thresh uint8, p3, p2, p1, p0, q0, q1, q2, q3 uint8) bool {
	t := int(thresh)
	return absDiff(p1, p0) <= t && absDiff(q1, q0) <= t &&
		absDiff(p2, p0) <= t && absDiff(q2, q0) <= t &&
		absDiff(p3, p0) <= t && absDiff(q3, q0) <= t
}

// FlatMask5 extends FlatMask4 by one sample on each side. The wide filter
// calls it with p7..p4 and q4..q7 around p0/q0.
func FlatMask5(thresh uint8, p4, p3, p2, p1, p0, q0, q1, q2, q3, q4 uint8) bool {
	t := int(thresh)
	return FlatMask4(thresh, p3, p2, p1, p0, q0, q1, q2, q3) &&
		absDiff(p4, p0) <= t && absDiff(q4, q0) <= t
}

package util

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Abs returns |x| for any signed integer type.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp restricts v to [lo, hi].
func Clamp[T constraints.Integer](v T, lo T, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CeilDiv is integer division rounding up. d must be positive.
func CeilDiv[T constraints.Integer](n T, d T) T {
	return (n + d - 1) / d
}

// AlignUp rounds n up to the next multiple of a.
func AlignUp[T constraints.Integer](n T, a T) T {
	return CeilDiv(n, a) * a
}

func Max[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	max := args[0]
	for _, arg := range args[1:] {
		if arg > max {
			max = arg
		}
	}
	return max
}

func Min[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	min := args[0]
	for _, arg := range args[1:] {
		if arg < min {
			min = arg
		}
	}
	return min
}

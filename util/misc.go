package util

func IfThenElse[T any](condition bool, a T, b T) T {
	if condition {
		return a
	}
	return b
}

// FillBytes sets every element of a to val.
func FillBytes(a []byte, val byte) {
	for i := range a {
		a[i] = val
	}
}

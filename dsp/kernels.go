package dsp

// Kernels address pixels as (p, off, step) like the rest of the package: off is
// q0, p0 is p[off-step], q1 is p[off+step] and so on. step is 1 across a
// vertical edge and the row stride across a horizontal one.

// SignedCharClamp saturates t to the int8 range.
func SignedCharClamp(t int) int {
	if t < -128 {
		return -128
	}
	if t > 127 {
		return 127
	}
	return t
}

func toSigned(v byte) int {
	return int(int8(v ^ 0x80))
}

func fromSigned(v int) byte {
	return byte(int8(v)) ^ 0x80
}

// Filter4 adjusts p1..q1. With mask false nothing changes; with hev set the
// outer taps are left alone.
func Filter4(p []byte, off, step int, mask, hev bool) {
	if !mask {
		return
	}
	ps1 := toSigned(p[off-2*step])
	ps0 := toSigned(p[off-step])
	qs0 := toSigned(p[off])
	qs1 := toSigned(p[off+step])

	f := 0
	if hev {
		f = SignedCharClamp(ps1 - qs1)
	}
	f = SignedCharClamp(f + 3*(qs0-ps0))

	f1 := SignedCharClamp(f+4) >> 3
	f2 := SignedCharClamp(f+3) >> 3

	p[off] = fromSigned(SignedCharClamp(qs0 - f1))
	p[off-step] = fromSigned(SignedCharClamp(ps0 + f2))

	if !hev {
		f = (f1 + 1) >> 1
		p[off+step] = fromSigned(SignedCharClamp(qs1 - f))
		p[off-2*step] = fromSigned(SignedCharClamp(ps1 + f))
	}
}

// Filter8Window applies the 7-tap smoother to w = p3..q3 in place, rewriting
// p2..q2.
func Filter8Window(w *[8]byte) {
	var x [8]int
	for i, v := range w {
		x[i] = int(v)
	}

	// sum covers x[i-3..i+3] with indices clamped to the window
	sum := 3*x[0] + x[1] + x[2] + x[3] + x[4]
	for i := 1; i <= 6; i++ {
		w[i] = byte((sum + x[i] + 4) >> 3)
		sum += x[min(i+4, 7)] - x[max(i-3, 0)]
	}
}

// Filter8 is Filter8Window over strided samples.
func Filter8(p []byte, off, step int) {
	if step == 1 {
		Filter8Window((*[8]byte)(p[off-4 : off+4]))
		return
	}

	var w [8]byte
	base := off - 4*step
	for i := range w {
		w[i] = p[base+i*step]
	}
	Filter8Window(&w)
	for i := 1; i <= 6; i++ {
		p[base+i*step] = w[i]
	}
}

// Filter16Window applies the 15-tap smoother to w = p7..q7 in place, rewriting
// p6..q6.
func Filter16Window(w *[16]byte) {
	var x [16]int
	for i, v := range w {
		x[i] = int(v)
	}

	sum := 7 * x[0]
	for i := 1; i <= 8; i++ {
		sum += x[i]
	}
	for i := 1; i <= 14; i++ {
		w[i] = byte((sum + x[i] + 8) >> 4)
		sum += x[min(i+8, 15)] - x[max(i-7, 0)]
	}
}

// Filter16 is Filter16Window over strided samples.
func Filter16(p []byte, off, step int) {
	if step == 1 {
		Filter16Window((*[16]byte)(p[off-8 : off+8]))
		return
	}

	var w [16]byte
	base := off - 8*step
	for i := range w {
		w[i] = p[base+i*step]
	}
	Filter16Window(&w)
	for i := 1; i <= 14; i++ {
		p[base+i*step] = w[i]
	}
}

package dsp

// Limits are the three per-level thresholds an edge loop needs.
type Limits struct {
	Blimit uint8
	Limit  uint8
	Thresh uint8
}

// LoopFilter4 filters lines edge lines, pitch apart, with the narrow filter
// only.
func LoopFilter4(p []byte, off, step, pitch, lines int, lim Limits) {
	for i := 0; i < lines; i++ {
		o := off + i*pitch
		p3, p2, p1, p0 := p[o-4*step], p[o-3*step], p[o-2*step], p[o-step]
		q0, q1, q2, q3 := p[o], p[o+step], p[o+2*step], p[o+3*step]

		mask := FilterMask(lim.Limit, lim.Blimit, p3, p2, p1, p0, q0, q1, q2, q3)
		hev := HevMask(lim.Thresh, p1, p0, q0, q1)
		Filter4(p, o, step, mask, hev)
	}
}

// LoopFilter8 picks the 7-tap smoother on flat lines and the narrow filter
// otherwise.
func LoopFilter8(p []byte, off, step, pitch, lines int, lim Limits) {
	for i := 0; i < lines; i++ {
		o := off + i*pitch
		p3, p2, p1, p0 := p[o-4*step], p[o-3*step], p[o-2*step], p[o-step]
		q0, q1, q2, q3 := p[o], p[o+step], p[o+2*step], p[o+3*step]

		mask := FilterMask(lim.Limit, lim.Blimit, p3, p2, p1, p0, q0, q1, q2, q3)
		if !mask {
			continue
		}
		if FlatMask4(FlatThresh, p3, p2, p1, p0, q0, q1, q2, q3) {
			Filter8(p, o, step)
			continue
		}
		Filter4(p, o, step, true, HevMask(lim.Thresh, p1, p0, q0, q1))
	}
}

// LoopFilter16 picks the 15-tap smoother when both the inner and outer windows
// are flat, then falls back like LoopFilter8.
func LoopFilter16(p []byte, off, step, pitch, lines int, lim Limits) {
	for i := 0; i < lines; i++ {
		o := off + i*pitch
		p3, p2, p1, p0 := p[o-4*step], p[o-3*step], p[o-2*step], p[o-step]
		q0, q1, q2, q3 := p[o], p[o+step], p[o+2*step], p[o+3*step]

		mask := FilterMask(lim.Limit, lim.Blimit, p3, p2, p1, p0, q0, q1, q2, q3)
		if !mask {
			continue
		}
		if !FlatMask4(FlatThresh, p3, p2, p1, p0, q0, q1, q2, q3) {
			Filter4(p, o, step, true, HevMask(lim.Thresh, p1, p0, q0, q1))
			continue
		}

		p7, p6, p5, p4 := p[o-8*step], p[o-7*step], p[o-6*step], p[o-5*step]
		q4, q5, q6, q7 := p[o+4*step], p[o+5*step], p[o+6*step], p[o+7*step]
		if FlatMask5(FlatThresh, p7, p6, p5, p4, p0, q0, q4, q5, q6, q7) {
			Filter16(p, o, step)
		} else {
			Filter8(p, o, step)
		}
	}
}

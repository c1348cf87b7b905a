package dsp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedCharClamp(t *testing.T) {
	assert.Equal(t, -128, SignedCharClamp(-1000))
	assert.Equal(t, -128, SignedCharClamp(-128))
	assert.Equal(t, 0, SignedCharClamp(0))
	assert.Equal(t, 127, SignedCharClamp(127))
	assert.Equal(t, 127, SignedCharClamp(128))
}

func TestFilter4(t *testing.T) {

	for _, tc := range []struct {
		name     string
		in       [4]byte
		mask     bool
		hev      bool
		expected [4]byte
	}{
		{name: "step without hev", in: [4]byte{60, 60, 80, 80}, mask: true, expected: [4]byte{64, 67, 72, 76}},
		{name: "step with hev", in: [4]byte{60, 60, 80, 80}, mask: true, hev: true, expected: [4]byte{60, 65, 75, 80}},
		{name: "saturates", in: [4]byte{0, 0, 255, 255}, mask: true, hev: true, expected: [4]byte{0, 15, 240, 255}},
		{name: "flat unchanged", in: [4]byte{100, 100, 100, 100}, mask: true, expected: [4]byte{100, 100, 100, 100}},
		{name: "mask off", in: [4]byte{60, 60, 80, 80}, mask: false, expected: [4]byte{60, 60, 80, 80}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := tc.in
			Filter4(buf[:], 2, 1, tc.mask, tc.hev)
			assert.Equal(t, tc.expected, buf)

			// same samples laid out down a column
			const stride = 5
			col := make([]byte, 4*stride)
			for i, v := range tc.in {
				col[i*stride+3] = v
			}
			Filter4(col, 2*stride+3, stride, tc.mask, tc.hev)
			for i, v := range tc.expected {
				assert.Equal(t, v, col[i*stride+3])
			}
		})
	}
}

func TestFilter8Golden(t *testing.T) {
	w := [8]byte{10, 10, 10, 10, 250, 250, 250, 250}
	Filter8Window(&w)
	assert.Equal(t, [8]byte{10, 40, 70, 100, 160, 190, 220, 250}, w)
}

func reference8(x [8]byte) [8]byte {
	out := x
	for i := 1; i <= 6; i++ {
		sum := int(x[i])
		for k := -3; k <= 3; k++ {
			sum += int(x[min(max(i+k, 0), 7)])
		}
		out[i] = byte((sum + 4) >> 3)
	}
	return out
}

func reference16(x [16]byte) [16]byte {
	out := x
	for i := 1; i <= 14; i++ {
		sum := int(x[i])
		for k := -7; k <= 7; k++ {
			sum += int(x[min(max(i+k, 0), 15)])
		}
		out[i] = byte((sum + 8) >> 4)
	}
	return out
}

func TestFilter8MatchesReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	const stride = 11

	for n := 0; n < 500; n++ {
		var x [8]byte
		for i := range x {
			x[i] = byte(rnd.Intn(256))
		}
		want := reference8(x)

		row := make([]byte, 12)
		copy(row[2:], x[:])
		Filter8(row, 6, 1)
		require.Equal(t, want[:], row[2:10])
		require.Equal(t, byte(0), row[0])
		require.Equal(t, byte(0), row[11])

		col := make([]byte, 8*stride)
		for i, v := range x {
			col[i*stride+1] = v
		}
		Filter8(col, 4*stride+1, stride)
		for i, v := range want {
			require.Equal(t, v, col[i*stride+1])
		}
	}
}

func TestFilter16MatchesReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(16))
	const stride = 19

	for n := 0; n < 500; n++ {
		var x [16]byte
		for i := range x {
			x[i] = byte(rnd.Intn(256))
		}
		want := reference16(x)

		row := make([]byte, 20)
		copy(row[2:], x[:])
		Filter16(row, 10, 1)
		require.Equal(t, want[:], row[2:18])

		col := make([]byte, 16*stride)
		for i, v := range x {
			col[i*stride+4] = v
		}
		Filter16(col, 8*stride+4, stride)
		for i, v := range want {
			require.Equal(t, v, col[i*stride+4])
		}
	}
}

func TestFilter16WindowKeepsEnds(t *testing.T) {
	w := [16]byte{0, 0, 0, 0, 0, 0, 0, 0, 255, 255, 255, 255, 255, 255, 255, 255}
	Filter16Window(&w)
	assert.Equal(t, byte(0), w[0])
	assert.Equal(t, byte(255), w[15])
	for i := 1; i < 15; i++ {
		assert.LessOrEqual(t, w[i-1], w[i])
	}
}

package util

import (
	"testing"
)

func TestBytePool(t *testing.T) {
	// Test basic get and put
	b := GetPooledBytes(4096)
	if len(b) != 4096 {
		t.Errorf("Buffer length incorrect: %d", len(b))
	}

	// Modify buffer
	b[0] = 42
	b[4095] = 7

	// Return to pool
	ReturnBytesToPool(b)

	// Get again - whether reused or fresh it must be cleared
	b2 := GetPooledBytes(4096)
	if b2[0] != 0 || b2[4095] != 0 {
		t.Errorf("Buffer not cleared after return to pool")
	}

	ReturnBytesToPool(b2)
}

func TestPoolMetrics(t *testing.T) {
	for i := 0; i < 5; i++ {
		b := GetPooledBytes(64)
		ReturnBytesToPool(b)
	}

	metrics := GetPoolMetrics()
	if metrics["hits"] == 0 && metrics["misses"] == 0 {
		t.Errorf("No metrics recorded")
	}

	t.Logf("Metrics: %+v", metrics)
}

func TestDifferentSizes(t *testing.T) {
	for _, size := range []int{1, 100, 4096, 1920 * 1080 * 3 / 2} {
		b := GetPooledBytes(size)
		if len(b) != size {
			t.Errorf("Size %d: incorrect length %d", size, len(b))
		}
		ReturnBytesToPool(b)
	}
}

func TestZeroSize(t *testing.T) {
	// Should not panic
	b := GetPooledBytes(0)
	if len(b) != 0 {
		t.Errorf("Expected empty buffer for zero size")
	}
	ReturnBytesToPool(b)
	ReturnBytesToPool(nil)
}

func TestConcurrentAccess(t *testing.T) {
	const goroutines = 10
	const iterations = 100

	done := make(chan bool, goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			for i := 0; i < iterations; i++ {
				b := GetPooledBytes(64 * 64)
				b[0] = byte(i)
				ReturnBytesToPool(b)
			}
			done <- true
		}()
	}

	for g := 0; g < goroutines; g++ {
		<-done
	}
}

// Benchmarks

func BenchmarkBytesPooled(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := GetPooledBytes(1920 * 1088 * 3 / 2)
		ReturnBytesToPool(buf)
	}
}

func BenchmarkBytesDirect(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = make([]byte, 1920*1088*3/2)
	}
}

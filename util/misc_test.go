package util

import (
	"testing"
)

func TestIfThenElse(t *testing.T) {
	if IfThenElse(true, 1, 2) != 1 {
		t.Error("IfThenElse(true, 1, 2) should be 1")
	}
	if IfThenElse(false, 1, 2) != 2 {
		t.Error("IfThenElse(false, 1, 2) should be 2")
	}
	if IfThenElse(true, "a", "b") != "a" {
		t.Error("IfThenElse(true, 'a', 'b') should be 'a'")
	}
}

func TestFillBytes(t *testing.T) {
	a := make([]byte, 17)
	FillBytes(a, 0x80)
	for i, v := range a {
		if v != 0x80 {
			t.Errorf("index %d: expected 0x80, got %#x", i, v)
		}
	}

	FillBytes(nil, 1)
}

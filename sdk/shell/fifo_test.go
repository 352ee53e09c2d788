package shell

import "testing"

func TestFrameFIFOFillAndPop(t *testing.T) {
	f := newFrameFIFO(4)
	if !f.empty() {
		t.Fatal("new FIFO is not empty")
	}

	f.fill([]float32{1, 2, 3, 4}, []float32{-1, -2, -3, -4})
	if f.len() != 4 {
		t.Fatalf("len = %d, want 4", f.len())
	}

	for i := 0; i < 4; i++ {
		left, right := f.pop()
		if left != float32(i+1) || right != -float32(i+1) {
			t.Errorf("frame %d: got (%v, %v), want (%v, %v)", i, left, right, float32(i+1), -float32(i+1))
		}
	}
	if !f.empty() {
		t.Error("FIFO not empty after popping every frame")
	}
}

func TestFrameFIFOPartialDrainCarriesOver(t *testing.T) {
	f := newFrameFIFO(3)
	f.fill([]float32{10, 20, 30}, []float32{10, 20, 30})

	f.pop()
	if f.empty() || f.len() != 2 {
		t.Fatalf("after one pop: len = %d, want 2", f.len())
	}

	left, _ := f.pop()
	if left != 20 {
		t.Errorf("carry-over frame = %v, want 20", left)
	}
	left, _ = f.pop()
	if left != 30 {
		t.Errorf("final frame = %v, want 30", left)
	}
}

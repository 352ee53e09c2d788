package shell

// frameFIFO is a fixed-capacity queue of stereo frames that decouples
// the generation chunk size from the driver's buffer size. It is touched
// only by the audio goroutine, so it needs no synchronization. Frames
// come out in the exact order they were filled in; none is dropped or
// duplicated.
type frameFIFO struct {
	left  []float32
	right []float32
	head  int
	count int
}

func newFrameFIFO(capacity int) *frameFIFO {
	return &frameFIFO{
		left:  make([]float32, capacity),
		right: make([]float32, capacity),
	}
}

func (f *frameFIFO) empty() bool {
	return f.count == 0
}

func (f *frameFIFO) len() int {
	return f.count
}

// fill loads one full chunk. It must only be called on an empty FIFO
// with slices of exactly the FIFO capacity; both invariants are upheld
// by the output callback.
func (f *frameFIFO) fill(left, right []float32) {
	copy(f.left, left)
	copy(f.right, right)
	f.head = 0
	f.count = len(left)
}

// pop removes and returns the oldest frame.
func (f *frameFIFO) pop() (left, right float32) {
	left = f.left[f.head]
	right = f.right[f.head]
	f.head++
	f.count--
	return left, right
}

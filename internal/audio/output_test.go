package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestStreamReaderSerializesFloat32LE(t *testing.T) {
	r := &streamReader{
		channels: 2,
		samples:  make([]float32, 16),
		render: func(out []float32) {
			for i := range out {
				out[i] = float32(i) * 0.25
			}
		},
	}

	p := make([]byte, 4*2*4) // 4 stereo frames
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if n != len(p) {
		t.Fatalf("Read = %d bytes, want %d", n, len(p))
	}

	for i := 0; i < 8; i++ {
		bits := binary.LittleEndian.Uint32(p[4*i:])
		got := math.Float32frombits(bits)
		if got != float32(i)*0.25 {
			t.Errorf("sample %d = %v, want %v", i, got, float32(i)*0.25)
		}
	}
}

func TestStreamReaderZeroesScratchBetweenCalls(t *testing.T) {
	calls := 0
	r := &streamReader{
		channels: 1,
		samples:  make([]float32, 8),
		render: func(out []float32) {
			calls++
			for i, s := range out {
				if s != 0 {
					t.Errorf("call %d: slot %d arrived as %v, want zero-initialized", calls, i, s)
				}
			}
			for i := range out {
				out[i] = 1
			}
		},
	}

	p := make([]byte, 8*4)
	r.Read(p)
	r.Read(p)

	if calls != 2 {
		t.Fatalf("render called %d times, want 2", calls)
	}
}

func TestStreamReaderPartialFrameRequest(t *testing.T) {
	r := &streamReader{
		channels: 2,
		samples:  make([]float32, 8),
		render:   func(out []float32) {},
	}

	// 3 bytes cannot hold a stereo float32 frame.
	if n, _ := r.Read(make([]byte, 3)); n != 0 {
		t.Errorf("Read of sub-frame buffer = %d bytes, want 0", n)
	}

	// 20 bytes hold exactly two stereo frames with 4 bytes left over.
	if n, _ := r.Read(make([]byte, 20)); n != 16 {
		t.Errorf("Read = %d bytes, want 16 (whole frames only)", n)
	}
}

func TestStreamReaderGrowsForLargeRequests(t *testing.T) {
	r := &streamReader{
		channels: 1,
		samples:  make([]float32, 2),
		render: func(out []float32) {
			for i := range out {
				out[i] = 1
			}
		},
	}

	p := make([]byte, 64*4)
	n, err := r.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read = (%d, %v), want (%d, nil)", n, err, len(p))
	}
	bits := binary.LittleEndian.Uint32(p[4*63:])
	if math.Float32frombits(bits) != 1 {
		t.Error("last sample not written after scratch growth")
	}
}

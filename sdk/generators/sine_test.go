package generators

import (
	"math"
	"testing"
)

const sampleRate = 44100

func renderSeconds(s *SineSynth, seconds float64) []float32 {
	const chunk = 64
	total := int(float64(sampleRate) * seconds)
	out := make([]float32, 0, total)

	left := make([]float32, chunk)
	right := make([]float32, chunk)
	for len(out) < total {
		for i := range left {
			left[i] = 0
			right[i] = 0
		}
		s.Process(left, right)
		out = append(out, left...)
	}
	return out[:total]
}

func positiveZeroCrossings(samples []float32) int {
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if samples[i-1] < 0 && samples[i] >= 0 {
			crossings++
		}
	}
	return crossings
}

func peak(samples []float32) float64 {
	var p float64
	for _, s := range samples {
		if a := math.Abs(float64(s)); a > p {
			p = a
		}
	}
	return p
}

func TestNoteOnA4Produces440Hz(t *testing.T) {
	s := NewSineSynth(sampleRate)
	s.Initialize(64)
	s.HandleMIDI([]byte{0x90, 69, 127}, 0)

	out := renderSeconds(s, 1.0)

	crossings := positiveZeroCrossings(out)
	if crossings < 438 || crossings > 442 {
		t.Errorf("fundamental = %d Hz (zero crossings), want 440 +/- 2", crossings)
	}

	if p := peak(out); math.Abs(p-0.5) > 0.01 {
		t.Errorf("peak amplitude = %v, want 0.5 at full velocity", p)
	}
}

func TestVelocityScalesAmplitude(t *testing.T) {
	s := NewSineSynth(sampleRate)
	s.Initialize(64)
	s.HandleMIDI([]byte{0x90, 69, 64}, 0)

	out := renderSeconds(s, 0.25)

	want := 0.5 * 64.0 / 127.0
	if p := peak(out); math.Abs(p-want) > 0.01 {
		t.Errorf("peak amplitude = %v, want %v at velocity 64", p, want)
	}
}

func TestNoteOffSilencesOutput(t *testing.T) {
	s := NewSineSynth(sampleRate)
	s.Initialize(64)
	s.HandleMIDI([]byte{0x90, 69, 127}, 0)
	renderSeconds(s, 0.1)

	s.HandleMIDI([]byte{0x80, 69, 0}, 1)
	out := renderSeconds(s, 0.1)

	for i, sample := range out {
		if sample != 0 {
			t.Fatalf("sample %d = %v after note off, want 0", i, sample)
		}
	}
}

func TestNoteOnVelocityZeroIsSilent(t *testing.T) {
	s := NewSineSynth(sampleRate)
	s.Initialize(64)
	s.HandleMIDI([]byte{0x90, 69, 0}, 0)

	out := renderSeconds(s, 0.05)
	if p := peak(out); p != 0 {
		t.Errorf("peak = %v for velocity-zero note on, want 0", p)
	}
}

func TestShortAndUnknownMessagesIgnored(t *testing.T) {
	s := NewSineSynth(sampleRate)
	s.Initialize(64)

	s.HandleMIDI([]byte{0xFE}, 0)        // real-time, too short
	s.HandleMIDI([]byte{0xB0, 1, 64}, 0) // control change
	s.HandleMIDI(nil, 0)                 // nothing at all

	out := renderSeconds(s, 0.05)
	if p := peak(out); p != 0 {
		t.Errorf("peak = %v after ignorable messages, want 0", p)
	}
}

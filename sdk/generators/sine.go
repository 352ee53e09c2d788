// Package generators provides example generator payloads for the shell.
package generators

import "math"

// SineSynth is a simple monophonic synthesizer producing a sine wave
// keyed to the most recent MIDI note. Velocity maps linearly to level
// with a fixed 0.5 headroom; a note-off silences the output.
type SineSynth struct {
	sampleRate float64
	level      float32
	phase      float32
	phaseInc   float32
}

// NewSineSynth returns a synth tuned for the given sample rate.
func NewSineSynth(sampleRate int) *SineSynth {
	return &SineSynth{sampleRate: float64(sampleRate)}
}

// Initialize implements contracts.Generator. The synth has no per-chunk
// state to size.
func (s *SineSynth) Initialize(chunkSize int) {}

// Process fills both channels with the current oscillator output.
func (s *SineSynth) Process(left, right []float32) {
	for i := range left {
		sample := float32(math.Sin(float64(s.phase))) * s.level * 0.5
		left[i] = sample
		right[i] = sample

		s.phase += s.phaseInc
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}

// HandleMIDI reacts to note-on and note-off; everything else is ignored.
func (s *SineSynth) HandleMIDI(data []byte, timestamp uint64) {
	if len(data) < 3 {
		return
	}
	switch data[0] & 0xF0 {
	case 0x80: // Note off
		s.level = 0
	case 0x90: // Note on; velocity zero means note off
		s.level = float32(data[2]) / 127
		frequency := 440 * math.Pow(2, (float64(data[1])-69)/12)
		s.phaseInc = float32(frequency / s.sampleRate * 2 * math.Pi)
	}
}

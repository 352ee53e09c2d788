// Package audio wraps the oto output device behind a pull-style render
// callback. oto runs one dedicated goroutine per player and pulls sample
// data through an io.Reader; that goroutine is the real-time entry point
// of the whole pipeline.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ErrOutputDevice indicates that the audio output device could not be
// obtained or configured. This is fatal for the shell.
var ErrOutputDevice = errors.New("error opening audio output device")

// Config describes the negotiated output stream.
type Config struct {
	SampleRate int // Sampling frequency in Hz.
	Channels   int // 1 (mono) or 2 (stereo).
	BufferSize int // Driver buffer length in frames; the driver may deviate.
}

// RenderFunc fills out with interleaved samples. len(out) is a multiple
// of the channel count and is chosen by the driver per invocation,
// independently of any generation chunk size. out arrives zeroed and
// must be fully written.
type RenderFunc func(out []float32)

// Output owns the oto context and player. The player handle is held for
// the lifetime of the Output and released in Close; it is never
// discarded to keep the stream alive as a side effect.
type Output struct {
	player   *oto.Player
	channels int
}

// initial scratch sizing; Read grows it if the driver asks for more.
const defaultScratchFrames = 4096

// Open configures the output device and starts pulling samples through
// render. It fails when no usable output device exists.
func Open(cfg Config, render RenderFunc) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
	}
	if cfg.BufferSize > 0 {
		op.BufferSize = time.Duration(cfg.BufferSize) * time.Second / time.Duration(cfg.SampleRate)
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputDevice, err)
	}
	<-ready

	reader := &streamReader{
		render:   render,
		channels: cfg.Channels,
		samples:  make([]float32, defaultScratchFrames*cfg.Channels),
	}
	player := ctx.NewPlayer(reader)
	player.Play()

	return &Output{player: player, channels: cfg.Channels}, nil
}

// Close stops the stream and releases the player handle.
func (o *Output) Close() error {
	return o.player.Close()
}

// streamReader adapts the render callback to oto's io.Reader pull model.
// Read runs on oto's audio goroutine.
type streamReader struct {
	render   RenderFunc
	channels int
	samples  []float32 // Pre-allocated; no allocation in steady state.
}

const bytesPerSample = 4 // float32 little-endian

func (r *streamReader) Read(p []byte) (int, error) {
	frameBytes := bytesPerSample * r.channels
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	n := frames * r.channels
	if cap(r.samples) < n {
		r.samples = make([]float32, n)
	}
	samples := r.samples[:n]
	for i := range samples {
		samples[i] = 0
	}

	r.render(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[bytesPerSample*i:], math.Float32bits(s))
	}
	return frames * frameBytes, nil
}

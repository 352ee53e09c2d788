// Package shell runs the audio and MIDI processing: it bridges
// asynchronous MIDI driver callbacks into a synchronous audio output
// callback while letting the generator produce audio at its own chunk
// size, independent of the driver's buffer size.
package shell

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/leandrodaf/audioshell/internal/audio"
	"github.com/leandrodaf/audioshell/internal/queue"
	"github.com/leandrodaf/audioshell/sdk/contracts"
	"github.com/leandrodaf/audioshell/sdk/midi"
)

// ErrInvalidConfig indicates an unusable shell configuration.
var ErrInvalidConfig = errors.New("invalid shell configuration")

// Config describes the negotiated audio stream and the generation
// granularity.
type Config struct {
	// SampleRate is the sampling frequency in Hz.
	SampleRate int
	// ChunkSize is the number of frames the generator produces per
	// Process call. It trades generator call frequency for buffering
	// latency.
	ChunkSize int
	// BufferSize is the driver buffer length in frames. It trades
	// latency for driver efficiency. Zero lets the driver pick.
	BufferSize int
	// Channels is the output channel count, 1 or 2. Zero means stereo.
	Channels int
}

// Shell owns the MIDI bridge, the event queue and the output stream
// handle. All resources are acquired in Spawn and released in Close;
// the output handle is held, never discarded.
type Shell struct {
	logger    contracts.Logger
	bridge    contracts.Bridge
	output    *audio.Output
	closeOnce sync.Once
	closeErr  error
}

// Spawn initializes the MIDI inputs and the output device and runs the
// generator inside the driver's callback. The returned shell must be
// kept alive for as long as audio should play and closed afterwards.
//
// Failure to obtain the output device is fatal and returned as an
// error. Failure to open individual MIDI ports, or the whole bridge, is
// logged and tolerated: the pipeline produces valid audio with zero
// MIDI inputs.
func Spawn(cfg Config, generator contracts.Generator, opts ...contracts.Option) (*Shell, error) {
	options := applyDefaultOptions(opts...)

	if cfg.Channels == 0 {
		cfg.Channels = 2
	}
	if cfg.SampleRate <= 0 || cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: sample rate and chunk size must be positive", ErrInvalidConfig)
	}
	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, fmt.Errorf("%w: channels must be 1 or 2", ErrInvalidConfig)
	}

	events := queue.New(options.QueueCapacity, options.Overflow)

	bridge, err := midi.NewBridge(&options, events)
	if err != nil {
		options.Logger.Warn("MIDI bridge unavailable; running without MIDI",
			options.Logger.Field().Error("error", err))
		bridge = nil
	}

	callback := newOutputCallback(generator, events, cfg.ChunkSize, cfg.Channels)

	output, err := audio.Open(audio.Config{
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
		BufferSize: cfg.BufferSize,
	}, callback.render)
	if err != nil {
		if bridge != nil {
			_ = bridge.Stop()
		}
		return nil, err
	}

	options.Logger.Info("audio output started",
		options.Logger.Field().Int("sampleRate", cfg.SampleRate),
		options.Logger.Field().Int("chunkSize", cfg.ChunkSize),
		options.Logger.Field().Int("channels", cfg.Channels))

	return &Shell{
		logger: options.Logger,
		bridge: bridge,
		output: output,
	}, nil
}

// RunForever spawns the shell and keeps it alive until the process
// terminates. A startup failure is fatal and aborts the process.
func RunForever(cfg Config, generator contracts.Generator, opts ...contracts.Option) {
	shell, err := Spawn(cfg, generator, opts...)
	if err != nil {
		log := applyDefaultOptions(opts...).Logger
		log.Fatal("failed to start audio/MIDI shell",
			log.Field().Error("error", err))
		return
	}
	// Resources held by shell are released only when the process dies.
	_ = shell

	for {
		time.Sleep(100 * time.Millisecond)
	}
}

// Devices lists the MIDI input endpoints connected at construction.
func (s *Shell) Devices() ([]contracts.DeviceInfo, error) {
	if s.bridge == nil {
		return nil, errors.New("no MIDI bridge available")
	}
	return s.bridge.ListDevices()
}

// Close severs the MIDI connections and releases the output stream.
// Safe to call more than once; later calls return the first result.
func (s *Shell) Close() error {
	s.closeOnce.Do(func() {
		var err error
		if s.bridge != nil {
			err = multierr.Append(err, s.bridge.Stop())
		}
		err = multierr.Append(err, s.output.Close())
		s.closeErr = err
	})
	return s.closeErr
}

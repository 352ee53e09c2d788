package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/audioshell/internal/midi/mididarwin"
	"github.com/leandrodaf/audioshell/internal/midi/midilinux"
	"github.com/leandrodaf/audioshell/internal/midi/midiwindows"
	"github.com/leandrodaf/audioshell/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI bridge.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// bridgeInitializers maps OS names to corresponding MIDI bridge initializers.
var bridgeInitializers = map[string]func(*contracts.ShellOptions, contracts.EventSink) (contracts.Bridge, error){
	"darwin":  mididarwin.NewBridge,  // macOS (Darwin) CoreMIDI bridge.
	"linux":   midilinux.NewBridge,   // Linux ALSA bridge through rtmidi.
	"windows": midiwindows.NewBridge, // Windows winmm bridge.
}

// NewBridge initializes a MIDI bridge for the current operating system.
// The bridge connects to every input endpoint visible at construction
// and forwards raw messages into sink from the driver's own threads.
// It returns ErrUnsupportedOS when no backend exists for the OS.
func NewBridge(opts *contracts.ShellOptions, sink contracts.EventSink) (contracts.Bridge, error) {
	if initializer, exists := bridgeInitializers[runtime.GOOS]; exists {
		return initializer(opts, sink)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

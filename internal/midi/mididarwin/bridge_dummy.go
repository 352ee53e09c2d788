//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/audioshell/sdk/contracts"
)

type dummyBridge struct {
	logger contracts.Logger
}

// NewBridge initializes a dummy MIDI bridge for non-Darwin systems.
func NewBridge(options *contracts.ShellOptions, sink contracts.EventSink) (contracts.Bridge, error) {
	options.Logger.Info("Using dummy MIDI bridge for non-Darwin system")
	return &dummyBridge{logger: options.Logger}, nil
}

// ListDevices returns an error indicating that CoreMIDI is unavailable on this platform.
func (b *dummyBridge) ListDevices() ([]contracts.DeviceInfo, error) {
	b.logger.Warn("ListDevices called on dummy MIDI bridge")
	return nil, fmt.Errorf("CoreMIDI is not available on this platform")
}

// Stop is a no-op on the dummy bridge.
func (b *dummyBridge) Stop() error {
	return nil
}

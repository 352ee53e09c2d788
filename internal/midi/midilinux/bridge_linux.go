//go:build linux
// +build linux

package midilinux

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/audioshell/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var ErrMIDIDriver = errors.New("error creating rtmidi driver")

// openPort is one listening rtmidi input.
type openPort struct {
	in     drivers.In
	stop   func()
	device contracts.DeviceInfo
}

// Bridge manages MIDI input on Linux through rtmidi (ALSA). Every input
// port visible at construction is opened and listened to; raw messages
// are forwarded into the event sink from rtmidi's reader goroutines.
type Bridge struct {
	logger   contracts.Logger
	sink     contracts.EventSink
	filter   *contracts.MIDIEventFilter
	drv      *rtmididrv.Driver
	ports    []*openPort
	stopOnce sync.Once
}

// NewBridge initialises the rtmidi driver, enumerates the input ports
// and connects to each of them. A port that fails to open or listen is
// logged and skipped.
func NewBridge(options *contracts.ShellOptions, sink contracts.EventSink) (contracts.Bridge, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMIDIDriver, err)
	}

	b := &Bridge{
		logger: options.Logger,
		sink:   sink,
		filter: options.MIDIEventFilter,
		drv:    drv,
	}

	ins, err := drv.Ins()
	if err != nil {
		options.Logger.Warn("error listing MIDI inputs",
			options.Logger.Field().Error("error", err))
		ins = nil
	}

	for _, in := range ins {
		if err := in.Open(); err != nil {
			b.logger.Warn("skipping MIDI input",
				b.logger.Field().String("deviceName", in.String()),
				b.logger.Field().Error("error", err))
			continue
		}
		stop, err := midi.ListenTo(in, b.listenFunc(), midi.HandleError(func(listenErr error) {
			b.logger.Warn("MIDI listener error",
				b.logger.Field().Error("error", listenErr))
		}))
		if err != nil {
			b.logger.Warn("skipping MIDI input",
				b.logger.Field().String("deviceName", in.String()),
				b.logger.Field().Error("error", err))
			_ = in.Close()
			continue
		}
		b.ports = append(b.ports, &openPort{
			in:   in,
			stop: stop,
			device: contracts.DeviceInfo{
				Name:         in.String(),
				EntityName:   in.String(),
				Manufacturer: "ALSA",
			},
		})
		b.logger.Info("MIDI input connected",
			b.logger.Field().String("deviceName", in.String()))
	}

	if len(b.ports) == 0 {
		b.logger.Info("no MIDI inputs connected; running without MIDI")
	}
	return b, nil
}

// listenFunc builds the delivery callback shared by all ports. The
// rtmidi timestamp is milliseconds since the listener started, scaled to
// nanoseconds to stay on the same opaque unit as the other platforms.
func (b *Bridge) listenFunc() func(msg midi.Message, timestampms int32) {
	return func(msg midi.Message, timestampms int32) {
		if len(msg) == 0 {
			return
		}
		if b.filter != nil && !b.filter.Allowed(msg[0]) {
			return
		}

		data := make([]byte, len(msg))
		copy(data, msg)

		event := contracts.MidiEvent{
			Timestamp: uint64(timestampms) * 1e6,
			Data:      data,
		}
		if !b.sink.Push(event) {
			b.logger.Warn("event queue full; dropping MIDI event")
		}
	}
}

// ListDevices returns the ports that were connected at construction.
func (b *Bridge) ListDevices() ([]contracts.DeviceInfo, error) {
	if len(b.ports) == 0 {
		return nil, errors.New("no MIDI devices found")
	}
	devices := make([]contracts.DeviceInfo, len(b.ports))
	for i, port := range b.ports {
		devices[i] = port.device
	}
	return devices, nil
}

// Stop ends listening on every port and closes the rtmidi driver.
func (b *Bridge) Stop() error {
	var closeErr error
	b.stopOnce.Do(func() {
		b.logger.Info("stopping MIDI capture")
		for _, port := range b.ports {
			port.stop()
			if err := port.in.Close(); err != nil && closeErr == nil {
				closeErr = err
			}
		}
		b.ports = nil
		if err := b.drv.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	})
	return closeErr
}

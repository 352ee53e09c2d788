//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/audioshell/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices   = errors.New("no MIDI devices found")
	ErrMIDIClient      = errors.New("error creating CoreMIDI client")
	ErrCreateInputPort = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// Bridge manages MIDI input on Darwin (macOS) systems. It connects to
// every source visible at construction time and forwards raw packets
// into the event sink from CoreMIDI's delivery threads.
type Bridge struct {
	logger   contracts.Logger
	sink     contracts.EventSink
	filter   *contracts.MIDIEventFilter
	client   coremidi.Client
	port     coremidi.InputPort
	conns    []internalPortConnection
	devices  []contracts.DeviceInfo
	stopOnce sync.Once
}

// NewBridge creates the CoreMIDI client, enumerates all current sources
// and opens one persistent connection per source. A source that fails to
// connect is logged and skipped; zero connected sources is valid.
func NewBridge(options *contracts.ShellOptions, sink contracts.EventSink) (contracts.Bridge, error) {
	client, err := coremidi.NewClient(options.ClientName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMIDIClient, err)
	}
	options.Logger.Info("MIDI client successfully created")

	b := &Bridge{
		logger: options.Logger,
		sink:   sink,
		filter: options.MIDIEventFilter,
		client: client,
	}

	b.port, err = coremidi.NewInputPort(client, options.ClientName+" input", b.handlePacket)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	sources, err := coremidi.AllSources()
	if err != nil {
		options.Logger.Warn("error listing MIDI sources",
			options.Logger.Field().Error("error", err))
		sources = nil
	}

	for _, source := range sources {
		sourceEntity := source.Entity()
		conn, err := b.port.Connect(source)
		if err != nil {
			b.logger.Warn("skipping MIDI input",
				b.logger.Field().String("deviceName", source.Name()),
				b.logger.Field().Error("error", err))
			continue
		}
		b.conns = append(b.conns, conn)
		b.devices = append(b.devices, contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		})
		b.logger.Info("MIDI input connected",
			b.logger.Field().String("deviceName", source.Name()))
	}

	if len(b.conns) == 0 {
		b.logger.Info("no MIDI inputs connected; running without MIDI")
	}
	return b, nil
}

// handlePacket runs on a CoreMIDI delivery thread. It copies the raw
// bytes, stamps the event and pushes it into the sink. A full sink drops
// the event silently apart from a warning.
func (b *Bridge) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	if len(packet.Data) == 0 {
		return
	}
	if b.filter != nil && !b.filter.Allowed(packet.Data[0]) {
		return
	}

	data := make([]byte, len(packet.Data))
	copy(data, packet.Data)

	event := contracts.MidiEvent{
		Timestamp: uint64(time.Now().UTC().UnixNano()),
		Data:      data,
	}
	if !b.sink.Push(event) {
		b.logger.Warn("event queue full; dropping MIDI event")
	}
}

// ListDevices returns the sources that were connected at construction.
func (b *Bridge) ListDevices() ([]contracts.DeviceInfo, error) {
	if len(b.devices) == 0 {
		b.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}
	devices := make([]contracts.DeviceInfo, len(b.devices))
	copy(devices, b.devices)
	return devices, nil
}

// Stop disconnects every source. It executes only once even if called
// multiple times.
func (b *Bridge) Stop() error {
	b.stopOnce.Do(func() {
		b.logger.Info("stopping MIDI capture")
		for _, conn := range b.conns {
			conn.Disconnect()
		}
		b.conns = nil
	})
	return nil
}

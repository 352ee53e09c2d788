//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/audioshell/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

var ErrOpenDevice = errors.New("failed to open MIDI device")

// winPort is one opened winmm input. The driver invokes midiInCallback
// on its own thread with the port as instance data.
type winPort struct {
	bridge *Bridge
	handle HMIDIIN
	device contracts.DeviceInfo
}

// Bridge manages MIDI input on Windows. Every device visible at
// construction is opened and started; raw short messages are forwarded
// into the event sink from the winmm callback threads.
type Bridge struct {
	logger   contracts.Logger
	sink     contracts.EventSink
	filter   *contracts.MIDIEventFilter
	ports    []*winPort
	stopOnce sync.Once
}

var callbackPtr uintptr
var callbackOnce sync.Once

// NewBridge enumerates the winmm input devices and opens each one. A
// device that fails to open or start is logged and skipped.
func NewBridge(options *contracts.ShellOptions, sink contracts.EventSink) (contracts.Bridge, error) {
	b := &Bridge{
		logger: options.Logger,
		sink:   sink,
		filter: options.MIDIEventFilter,
	}

	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(midiInCallback)
	})

	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		b.logger.Info("no MIDI inputs connected; running without MIDI")
		return b, nil
	}

	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			b.logger.Warn(fmt.Sprintf("Failed to get information for MIDI device %d", i))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])

		port := &winPort{
			bridge: b,
			device: contracts.DeviceInfo{
				Name:         deviceName,
				EntityName:   deviceName,
				Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
			},
		}

		fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS
		r1, _, err := procMidiInOpen.Call(
			uintptr(unsafe.Pointer(&port.handle)),
			uintptr(i),
			callbackPtr,
			uintptr(unsafe.Pointer(port)),
			uintptr(fdwOpen),
		)
		if r1 != 0 {
			b.logger.Warn("skipping MIDI input",
				b.logger.Field().String("deviceName", deviceName),
				b.logger.Field().Error("error", fmt.Errorf("%w: %v", ErrOpenDevice, err)))
			continue
		}

		r1, _, err = procMidiInStart.Call(uintptr(port.handle))
		if r1 != 0 {
			b.logger.Warn("skipping MIDI input",
				b.logger.Field().String("deviceName", deviceName),
				b.logger.Field().Error("error", fmt.Errorf("failed to start capture: %v", err)))
			procMidiInClose.Call(uintptr(port.handle))
			continue
		}

		b.ports = append(b.ports, port)
		b.logger.Info("MIDI input connected",
			b.logger.Field().String("deviceName", deviceName))
	}
	return b, nil
}

// midiMessageLength returns the wire length of a short message for the
// given status byte.
func midiMessageLength(status byte) int {
	switch status & 0xF0 {
	case 0xC0, 0xD0:
		return 2
	case 0xF0:
		return 1
	default:
		return 3
	}
}

// midiInCallback processes incoming MIDI messages. Runs on a winmm
// driver thread.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	port := (*winPort)(unsafe.Pointer(dwInstance))
	b := port.bridge

	switch wMsg {
	case MIM_OPEN:
		b.logger.Debug("MIDI device opened")
	case MIM_CLOSE:
		b.logger.Debug("MIDI device closed")
	case MIM_DATA:
		status := byte(dwParam1 & 0xFF)
		if b.filter != nil && !b.filter.Allowed(status) {
			return 0
		}

		data := []byte{status, byte((dwParam1 >> 8) & 0xFF), byte((dwParam1 >> 16) & 0xFF)}
		data = data[:midiMessageLength(status)]

		event := contracts.MidiEvent{
			Timestamp: uint64(dwParam2), // ms since midiInStart for this port
			Data:      data,
		}
		if !b.sink.Push(event) {
			b.logger.Warn("event queue full; dropping MIDI event")
		}
	case MIM_ERROR, MIM_LONGERROR:
		b.logger.Error(fmt.Sprintf("MIDI error: msg=0x%X", wMsg))
	case MIM_MOREDATA:
		b.logger.Debug("Received MIM_MOREDATA message; ignored")
	}

	return 0
}

// ListDevices returns the devices that were opened at construction.
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

// Stop halts capture and closes every opened device handle.
func (b *Bridge) Stop() error {
	var stopErr error
	b.stopOnce.Do(func() {
		b.logger.Info("stopping MIDI capture")
		for _, port := range b.ports {
			if r1, _, err := procMidiInStop.Call(uintptr(port.handle)); r1 != 0 {
				stopErr = fmt.Errorf("failed to stop MIDI capture: %v", err)
				continue
			}
			procMidiInClose.Call(uintptr(port.handle))
		}
		b.ports = nil
	})
	return stopErr
}

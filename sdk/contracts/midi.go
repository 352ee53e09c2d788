package contracts

// MidiEvent is a raw MIDI message captured by a bridge driver callback.
// Data follows MIDI 1.0 wire framing and is a private copy owned by the
// event; it is never mutated after creation.
type MidiEvent struct {
	Timestamp uint64 // Opaque device clock value; not comparable across ports.
	Data      []byte // Raw message bytes, forwarded verbatim.
}

// EventSink receives MIDI events from bridge driver callbacks. Push must
// never block: it reports false when the event was dropped.
type EventSink interface {
	Push(event MidiEvent) bool
}

// Bridge holds the open connections to every MIDI input endpoint that was
// visible at construction time. Dropping a bridge severs delivery for all
// of its ports.
type Bridge interface {
	ListDevices() ([]DeviceInfo, error) // Lists the endpoints seen at construction.
	Stop() error                        // Disconnects all ports and releases driver resources.
}

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
// When nil, every message is forwarded verbatim.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// Allowed reports whether a message with the given status byte passes the
// filter. The channel nibble is ignored.
func (f *MIDIEventFilter) Allowed(status byte) bool {
	for _, command := range f.Commands {
		if status&0xF0 == byte(command) {
			return true
		}
	}
	return false
}

package shell

import (
	"testing"

	"github.com/leandrodaf/audioshell/sdk/contracts"
)

func TestApplyDefaultOptions(t *testing.T) {
	options := applyDefaultOptions()

	if options.Logger == nil {
		t.Error("default logger not applied")
	}
	if options.QueueCapacity != defaultQueueCapacity {
		t.Errorf("queue capacity = %d, want %d", options.QueueCapacity, defaultQueueCapacity)
	}
	if options.ClientName != defaultClientName {
		t.Errorf("client name = %q, want %q", options.ClientName, defaultClientName)
	}
	if options.Overflow != contracts.DropNewest {
		t.Errorf("overflow policy = %v, want DropNewest", options.Overflow)
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	options := applyDefaultOptions(
		contracts.WithClientName("test client"),
		contracts.WithQueueCapacity(32),
		contracts.WithOverflowPolicy(contracts.DropOldest),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn},
		}),
	)

	if options.ClientName != "test client" {
		t.Errorf("client name = %q, want %q", options.ClientName, "test client")
	}
	if options.QueueCapacity != 32 {
		t.Errorf("queue capacity = %d, want 32", options.QueueCapacity)
	}
	if options.Overflow != contracts.DropOldest {
		t.Errorf("overflow policy = %v, want DropOldest", options.Overflow)
	}
	if options.MIDIEventFilter == nil {
		t.Fatal("filter not applied")
	}
	if !options.MIDIEventFilter.Allowed(0x93) {
		t.Error("note on with channel nibble rejected by filter")
	}
	if options.MIDIEventFilter.Allowed(0x83) {
		t.Error("note off passed a note-on-only filter")
	}
}

func TestInvalidQueueCapacityFallsBack(t *testing.T) {
	options := applyDefaultOptions(contracts.WithQueueCapacity(-1))
	if options.QueueCapacity != defaultQueueCapacity {
		t.Errorf("queue capacity = %d, want default %d", options.QueueCapacity, defaultQueueCapacity)
	}
}

package contracts

// Generator is the caller-supplied audio/MIDI processor driven by the
// shell. All three methods are invoked on the audio goroutine only, so a
// generator needs no internal locking.
//
// Call order guarantees:
//   - Initialize is called exactly once, before any other call.
//   - HandleMIDI is called once per drained event, in arrival order,
//     strictly before the audio it affects is generated.
//   - Process is called whenever the shell needs another chunk of audio.
type Generator interface {
	// Initialize lets the generator size internal buffers and compute
	// per-chunk constants. chunkSize is the length of the slices later
	// passed to Process.
	Initialize(chunkSize int)

	// Process fills left and right with one chunk of samples. Both slices
	// are zero-initialized and exactly chunkSize long; every frame must be
	// written. It must return promptly: the audio driver deadline applies.
	Process(left, right []float32)

	// HandleMIDI processes one raw MIDI message. data follows MIDI 1.0
	// wire framing and is not validated by the shell; short or malformed
	// messages are the generator's concern.
	HandleMIDI(data []byte, timestamp uint64)
}

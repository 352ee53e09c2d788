package shell

import (
	"github.com/leandrodaf/audioshell/internal/queue"
	"github.com/leandrodaf/audioshell/sdk/contracts"
)

// outputCallback is the real-time entry point of the pipeline. It owns
// the generator state, the queue receiver and the chunk buffer, and is
// the only entity the driver invokes. Everything here runs on the audio
// goroutine; in steady state it does not block, allocate or take locks
// a producer could hold for an unbounded time.
type outputCallback struct {
	generator contracts.Generator
	events    *queue.Queue
	chunk     *frameFIFO
	scratchL  []float32
	scratchR  []float32
	channels  int
}

// newOutputCallback allocates all per-invocation state up front and
// initializes the generator, before the driver makes its first call.
func newOutputCallback(generator contracts.Generator, events *queue.Queue, chunkSize, channels int) *outputCallback {
	generator.Initialize(chunkSize)
	return &outputCallback{
		generator: generator,
		events:    events,
		chunk:     newFrameFIFO(chunkSize),
		scratchL:  make([]float32, chunkSize),
		scratchR:  make([]float32, chunkSize),
		channels:  channels,
	}
}

// render fills one driver-requested buffer of interleaved samples.
// len(out) is frames*channels and is chosen by the driver, independent
// of the chunk size. All MIDI effects queued as of the start of the
// call are applied before any sample of this buffer is produced; a
// partially drained chunk carries over to the next invocation.
func (c *outputCallback) render(out []float32) {
	c.drainEvents()

	frames := len(out) / c.channels
	for i := 0; i < frames; i++ {
		if c.chunk.empty() {
			c.refill()
		}
		left, right := c.chunk.pop()
		if c.channels == 1 {
			out[i] = left
			continue
		}
		out[2*i] = left
		out[2*i+1] = right
	}
}

// drainEvents empties the queue with non-blocking pops and dispatches
// each event in arrival order. Not time-bounded: a flood of events
// extends this phase, which is the documented trade-off of the bounded
// queue.
func (c *outputCallback) drainEvents() {
	for {
		event, ok := c.events.TryPop()
		if !ok {
			return
		}
		c.generator.HandleMIDI(event.Data, event.Timestamp)
	}
}

// refill produces exactly one chunk and loads it into the FIFO. Only
// called when the FIFO is empty.
func (c *outputCallback) refill() {
	for i := range c.scratchL {
		c.scratchL[i] = 0
		c.scratchR[i] = 0
	}
	c.generator.Process(c.scratchL, c.scratchR)
	c.chunk.fill(c.scratchL, c.scratchR)
}

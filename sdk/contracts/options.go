package contracts

// OverflowPolicy decides what happens when the event queue is full at the
// moment a bridge callback pushes a new event. Producers are driver
// threads, so the queue never applies backpressure.
type OverflowPolicy int

const (
	// DropNewest discards the incoming event when the queue is full.
	DropNewest OverflowPolicy = iota
	// DropOldest evicts the oldest queued event to make room for the
	// incoming one.
	DropOldest
)

// ShellOptions defines the configuration options for the audio/MIDI shell.
type ShellOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	ClientName      string           // Name the MIDI driver registers the client under.
	QueueCapacity   int              // Bound of the MIDI event queue.
	Overflow        OverflowPolicy   // What to do when the queue is full.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
}

// Option is a function that modifies ShellOptions.
type Option func(*ShellOptions)

// WithLogger sets the logger for the shell.
func WithLogger(l Logger) Option {
	return func(opts *ShellOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the shell.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ShellOptions) {
		opts.LogLevel = level
	}
}

// WithClientName sets the name the MIDI driver registers connections
// under. It replaces any build-metadata-derived naming.
func WithClientName(name string) Option {
	return func(opts *ShellOptions) {
		opts.ClientName = name
	}
}

// WithQueueCapacity bounds the MIDI event queue. Values below one are
// ignored and the default applies.
func WithQueueCapacity(capacity int) Option {
	return func(opts *ShellOptions) {
		opts.QueueCapacity = capacity
	}
}

// WithOverflowPolicy selects the queue behavior when a driver callback
// pushes into a full queue.
func WithOverflowPolicy(policy OverflowPolicy) Option {
	return func(opts *ShellOptions) {
		opts.Overflow = policy
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the bridges.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ShellOptions) {
		opts.MIDIEventFilter = &filter
	}
}

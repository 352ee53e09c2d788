package shell

import (
	"github.com/leandrodaf/audioshell/internal/logger"
	"github.com/leandrodaf/audioshell/sdk/contracts"
)

// Default queue sizing: generous for human playing, small enough that a
// full drain stays well inside one driver deadline.
const defaultQueueCapacity = 256

// defaultClientName is used by the MIDI drivers when the caller does not
// supply a name through WithClientName.
const defaultClientName = "audioshell"

// applyDefaultOptions sets default values for ShellOptions if not explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) contracts.ShellOptions {
	options := &contracts.ShellOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.ClientName == "" {
		options.ClientName = defaultClientName
	}
	if options.QueueCapacity < 1 {
		options.QueueCapacity = defaultQueueCapacity
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options
}

// Simple monophonic synthesizer generating a sine wave for each
// received MIDI note. Plays until the process is killed.
package main

import (
	"github.com/leandrodaf/audioshell/sdk/contracts"
	"github.com/leandrodaf/audioshell/sdk/generators"
	"github.com/leandrodaf/audioshell/sdk/shell"
)

const (
	sampleRate = 44100
	chunkSize  = 16
)

func main() {
	shell.RunForever(
		shell.Config{
			SampleRate: sampleRate,
			ChunkSize:  chunkSize,
		},
		generators.NewSineSynth(sampleRate),
		contracts.WithClientName("sine synth"),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
}

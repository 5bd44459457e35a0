// Command rocketfx runs the effect chain over audio files or to the sound
// card.
//
// Usage:
//
//	rocketfx params
//	rocketfx render -o out.wav --set reverb_enabled=on --amount 0.5 in.wav
//	rocketfx render -o rendered/ a.wav b.wav c.wav
//	rocketfx render -o tone.wav --tone 440 --seconds 2 --set pitch_enabled=on --set pitch_semitones=7
//	rocketfx play --set delay_enabled=on --set delay_sync=on in.wav
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Package modulation provides LFO-driven effects for planar stereo buffers.
//
// Included processors:
//   - Flanger: 1 to 11 ms modulated delay with feedback.
//   - Phaser: six-stage allpass cascade swept around a center frequency.
//   - Tremolo: unipolar amplitude modulation with five LFO shapes.
//   - RingModulator: sine carrier blended with unity gain by depth.
//
// Every processor runs one LFO shared by all channels; its phase wraps on
// every sample so long sessions do not lose precision.
package modulation

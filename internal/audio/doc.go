// Package audio abstracts playback hardware behind the Device and Stream
// interfaces. The PortAudio backend is the default; oto is available where
// PortAudio is not, and MockDevice backs the tests.
package audio

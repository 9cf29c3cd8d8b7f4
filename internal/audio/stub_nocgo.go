//go:build !cgo && linux

package audio

import "errors"

// On Linux both hardware backends bind C libraries: gordonklaus/portaudio
// always needs cgo, and ebitengine/oto's Linux driver needs cgo for ALSA.
// These stubs keep cgo-less Linux builds compiling; opening either backend
// reports the constraint at runtime.

var errBackendRequiresCgo = errors.New("audio: this backend requires cgo on linux")

// PortAudioDevice is a stub; the PortAudio backend requires cgo.
type PortAudioDevice struct {
	frameSize int
}

// NewPortAudioDevice always fails in cgo-less Linux builds.
func NewPortAudioDevice(frameSize int) (*PortAudioDevice, error) {
	return nil, errBackendRequiresCgo
}

// Open always fails in cgo-less Linux builds.
func (d *PortAudioDevice) Open(sampleRate int) (Stream, error) {
	return nil, errBackendRequiresCgo
}

// OtoDevice is a stub; oto's Linux driver requires cgo for ALSA.
type OtoDevice struct{}

// NewOtoDevice returns the stub device; Open reports the cgo constraint.
func NewOtoDevice() *OtoDevice {
	return &OtoDevice{}
}

// Open always fails in cgo-less Linux builds.
func (d *OtoDevice) Open(sampleRate int) (Stream, error) {
	return nil, errBackendRequiresCgo
}

// Package speech implements the streaming read-aloud pipeline: a synthesis
// producer and a playback consumer connected by a bounded frame queue, with
// pause, resume, and stop control that stays responsive while either side is
// blocked on I/O.
package speech

// Package platform is the hardware seam: small interfaces the engine
// reads and writes through, with host fakes and rp2 implementations
// selected by build tag.
package platform

import (
	"io"

	"tinygo.org/x/drivers"
)

// DigitalIn is a readable logic line.
type DigitalIn interface {
	Get() bool
}

// PinFactory supplies input pins by board pin number, configured with a
// pull-down (direct piezo boards drive the line high on a hit).
type PinFactory interface {
	ByNumber(n int) (DigitalIn, error)
}

// Tone drives the buzzer/audio PWM output: a square wave at the note's
// frequency until Stop. The envelope (fixed duration) is the caller's
// concern so the scan loop is never blocked by a sounding tone.
type Tone interface {
	Play(freqHz float32) error
	Stop()
}

// Board aggregates everything the firmware wires at boot.
type Board struct {
	Inputs PinFactory
	Bus    drivers.I2C // shared bus carrying hubs and expanders
	WireA  DigitalIn   // hub pass-through signal wires (SDA/SCL pads)
	WireB  DigitalIn
	Buzzer Tone
	MIDI   io.Writer // serial MIDI TX
	Config string    // raw sensors.cfg text, loader-resolved
}

// DefaultConfig is the built-in fallback mapping used when no sensors.cfg
// is available: two hub channels, both wires each.
const DefaultConfig = `# built-in fallback mapping
hub 0x70 0 A C4
hub 0x70 0 B E4
hub 0x70 1 A G4
hub 0x70 1 B C5
`

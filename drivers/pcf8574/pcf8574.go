// Package pcf8574 drives the PCF8574 8-bit I2C GPIO expander as an input
// port. The part is quasi-bidirectional: lines written high act as weak
// pulled-up inputs, which is also the power-on state, so a plain port
// read works without prior setup. Inputs are active-LOW — a triggered
// sensor pulls its line to ground — and the inversion to a logical level
// is deliberately left to the caller so polarity stays a per-source
// property.
package pcf8574

import (
	"time"

	"tinygo.org/x/drivers"

	"stick-go/errcode"
)

// DefaultAddress with A0=A1=A2 grounded. Strapping selects 0x20-0x27.
const DefaultAddress = 0x20

const retryBackoff = 2 * time.Millisecond

// Device is one expander behind some hub channel. The device itself is
// channel-agnostic; callers select the hub channel before reading.
type Device struct {
	bus  drivers.I2C
	addr uint16
	buf  [1]byte
}

func New(bus drivers.I2C, addr uint16) *Device {
	return &Device{bus: bus, addr: addr}
}

// Address returns the expander's 7-bit bus address.
func (d *Device) Address() uint16 { return d.addr }

// PrimeInputs writes all lines high, (re)arming them as inputs. Matches
// the power-on state; useful after something drove the port low.
func (d *Device) PrimeInputs() error {
	d.buf[0] = 0xFF
	if err := d.tx(d.buf[:1], nil); err != nil {
		return &errcode.E{C: errcode.BusFault, Op: "pcf8574.PrimeInputs", Err: err}
	}
	return nil
}

// ReadPort reads the raw input port byte. Bit n low means the sensor on
// line n is asserted.
func (d *Device) ReadPort() (byte, error) {
	if err := d.tx(nil, d.buf[:1]); err != nil {
		return 0, &errcode.E{C: errcode.BusFault, Op: "pcf8574.ReadPort", Err: err}
	}
	return d.buf[0], nil
}

// tx performs one transaction with one bounded retry.
func (d *Device) tx(w, r []byte) error {
	err := d.bus.Tx(d.addr, w, r)
	if err == nil {
		return nil
	}
	time.Sleep(retryBackoff)
	return d.bus.Tx(d.addr, w, r)
}

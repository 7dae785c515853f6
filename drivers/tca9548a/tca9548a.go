// Package tca9548a drives the TCA9548A 8-channel I2C multiplexer ("hub").
//
// Selecting a channel writes a single-bit bitmask to the control register;
// exactly one channel is enabled at a time, so selecting a new channel
// deselects all others on that hub. The last selected channel is cached
// per device because control writes dominate per-round latency when many
// sensors share one hub; the cache is invalidated on any bus error so the
// next access forces a reselect.
//
// Beyond mux duty, each enabled channel passes two signal wires through
// FET switches; ReadWires samples their raw levels via injected readers.
package tca9548a

import (
	"time"

	"tinygo.org/x/drivers"

	"stick-go/errcode"
)

// DefaultAddress with A0=A1=A2 grounded. Strapping pins selects 0x70-0x77.
const DefaultAddress = 0x70

// retryBackoff is the single-retry delay for failed control writes.
const retryBackoff = 2 * time.Millisecond

// WireReader samples the raw logic level of one pass-through signal wire.
type WireReader interface {
	Get() bool
}

// Device is one hub. The selected field is the hub's selection-cache
// entry; it is owned by the scan loop and needs no locking.
type Device struct {
	bus      drivers.I2C
	addr     uint16
	wires    [2]WireReader
	selected int8 // cached channel, -1 unknown
	buf      [1]byte
}

// New wraps a hub on a configured bus. wireA and wireB sample the two
// pass-through signal lines (on this board, the shared SDA/SCL pads).
func New(bus drivers.I2C, addr uint16, wireA, wireB WireReader) *Device {
	return &Device{
		bus:      bus,
		addr:     addr,
		wires:    [2]WireReader{wireA, wireB},
		selected: -1,
	}
}

// Address returns the hub's 7-bit bus address.
func (d *Device) Address() uint16 { return d.addr }

// Invalidate forgets the cached selection, forcing a control write on the
// next Select.
func (d *Device) Invalidate() { d.selected = -1 }

// Select enables channel ch (0-7), deselecting all others. No-op when the
// cache already reports ch selected. On bus error it retries once after a
// short backoff; a final failure invalidates the cache and returns a
// bus_fault so the caller can skip this hub for the round.
func (d *Device) Select(ch uint8) error {
	if ch > 7 {
		return errcode.BadChannel
	}
	if d.selected == int8(ch) {
		return nil
	}
	if err := d.writeCtl(1 << ch); err != nil {
		d.selected = -1
		return &errcode.E{C: errcode.BusFault, Op: "tca9548a.Select", Err: err}
	}
	d.selected = int8(ch)
	return nil
}

// DisableAll disconnects every channel. Also serves as a boot-time probe:
// an ACKed control write proves the hub is present.
func (d *Device) DisableAll() error {
	d.selected = -1
	if err := d.writeCtl(0); err != nil {
		return &errcode.E{C: errcode.BusFault, Op: "tca9548a.DisableAll", Err: err}
	}
	return nil
}

// ReadWires selects ch and samples both pass-through wires. Raw levels,
// active-HIGH convention; polarity belongs to the caller.
func (d *Device) ReadWires(ch uint8) (a, b bool, err error) {
	if err = d.Select(ch); err != nil {
		return false, false, err
	}
	return d.wires[0].Get(), d.wires[1].Get(), nil
}

// writeCtl writes the control register with one bounded retry.
func (d *Device) writeCtl(mask byte) error {
	d.buf[0] = mask
	err := d.bus.Tx(d.addr, d.buf[:1], nil)
	if err == nil {
		return nil
	}
	time.Sleep(retryBackoff)
	return d.bus.Tx(d.addr, d.buf[:1], nil)
}

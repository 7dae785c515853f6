package pcf8574

import (
	"testing"

	"stick-go/errcode"
	"stick-go/platform"
)

// port registers an expander model at addr whose input lines mirror *val.
func port(bus *platform.SimI2C, addr uint16, val *byte) {
	bus.Devices[addr] = func(w, r []byte) error {
		if len(r) == 1 {
			r[0] = *val
		}
		return nil
	}
}

func TestReadPortReturnsRawByte(t *testing.T) {
	bus := platform.NewSimI2C()
	val := byte(0xFF &^ (1 << 3)) // line 3 pulled low
	port(bus, DefaultAddress, &val)
	d := New(bus, DefaultAddress)

	got, err := d.ReadPort()
	if err != nil {
		t.Fatalf("ReadPort: %v", err)
	}
	if got != val {
		t.Fatalf("port = %08b, want %08b", got, val)
	}
}

func TestReadPortRetriesOnce(t *testing.T) {
	bus := platform.NewSimI2C()
	val := byte(0xFF)
	port(bus, DefaultAddress, &val)
	bus.FailFor[DefaultAddress] = 1
	d := New(bus, DefaultAddress)

	if _, err := d.ReadPort(); err != nil {
		t.Fatalf("ReadPort should recover on retry: %v", err)
	}
	if got := bus.TxCount(DefaultAddress); got != 2 {
		t.Fatalf("issued %d transactions, want 2", got)
	}
}

func TestReadPortFaultAfterRetry(t *testing.T) {
	bus := platform.NewSimI2C()
	val := byte(0xFF)
	port(bus, DefaultAddress, &val)
	bus.FailFor[DefaultAddress] = 2
	d := New(bus, DefaultAddress)

	_, err := d.ReadPort()
	if errcode.Of(err) != errcode.BusFault {
		t.Fatalf("code = %v, want bus_fault", errcode.Of(err))
	}
}

func TestPrimeInputsWritesAllHigh(t *testing.T) {
	bus := platform.NewSimI2C()
	var wrote byte
	bus.Devices[DefaultAddress] = func(w, r []byte) error {
		if len(w) == 1 {
			wrote = w[0]
		}
		return nil
	}
	d := New(bus, DefaultAddress)
	if err := d.PrimeInputs(); err != nil {
		t.Fatalf("PrimeInputs: %v", err)
	}
	if wrote != 0xFF {
		t.Fatalf("wrote %08b, want all-high", wrote)
	}
}

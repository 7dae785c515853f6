//go:build !rp2040 && !rp2350

package platform

import (
	"io"
	"os"

	"stick-go/errcode"
)

// ----------------------------- GPIO (host) -----------------------------

// FakePin implements DigitalIn for host-side tests; tests drive Set.
type FakePin struct {
	Level bool
}

func (p *FakePin) Get() bool      { return p.Level }
func (p *FakePin) Set(level bool) { p.Level = level }

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	pins map[int]*FakePin
}

func NewHostPinFactory() *HostPinFactory {
	return &HostPinFactory{pins: map[int]*FakePin{}}
}

func (f *HostPinFactory) ByNumber(n int) (DigitalIn, error) {
	if n < 0 {
		return nil, errcode.BadPin
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{}
		f.pins[n] = p
	}
	return p, nil
}

// Pin exposes the underlying *FakePin for tests (e.g. to raise an edge).
func (f *HostPinFactory) Pin(n int) *FakePin {
	p, _ := f.ByNumber(n)
	return p.(*FakePin)
}

// ----------------------------- I2C (host) ------------------------------

// TxFunc models one device on the simulated bus.
type TxFunc func(w, r []byte) error

// TxRecord is one logged transaction.
type TxRecord struct {
	Addr uint16
	W    []byte
	Rn   int
}

// SimI2C implements tinygo drivers.I2C against scripted device handlers.
// An address with no handler NAKs (returns bus_fault), as real hardware
// would. FailFor[addr] forces the next N transactions to that address to
// fail, for fault-injection tests.
type SimI2C struct {
	Devices map[uint16]TxFunc
	FailFor map[uint16]int
	Log     []TxRecord
}

func NewSimI2C() *SimI2C {
	return &SimI2C{
		Devices: map[uint16]TxFunc{},
		FailFor: map[uint16]int{},
	}
}

func (s *SimI2C) Tx(addr uint16, w, r []byte) error {
	s.Log = append(s.Log, TxRecord{Addr: addr, W: append([]byte(nil), w...), Rn: len(r)})
	if n := s.FailFor[addr]; n > 0 {
		s.FailFor[addr] = n - 1
		return errcode.BusFault
	}
	f := s.Devices[addr]
	if f == nil {
		return errcode.BusFault
	}
	return f(w, r)
}

// TxCount returns how many transactions were addressed to addr.
func (s *SimI2C) TxCount(addr uint16) int {
	n := 0
	for _, rec := range s.Log {
		if rec.Addr == addr {
			n++
		}
	}
	return n
}

// ----------------------------- Tone (host) -----------------------------

// RecordTone implements Tone and records what was played.
type RecordTone struct {
	Played   []float32
	Stops    int
	FailNext bool
}

func (t *RecordTone) Play(freqHz float32) error {
	if t.FailNext {
		t.FailNext = false
		return errcode.ToneFault
	}
	t.Played = append(t.Played, freqHz)
	return nil
}

func (t *RecordTone) Stop() { t.Stops++ }

// ----------------------------- Board (host) ----------------------------

// Default builds a host board: fake pins, a simulated bus with an inert
// hub at the default address, discarded MIDI bytes, and sensors.cfg from
// the working directory if present, else the built-in fallback.
func Default() *Board {
	bus := NewSimI2C()
	bus.Devices[0x70] = func(w, r []byte) error { return nil }

	cfgText := DefaultConfig
	if b, err := os.ReadFile("sensors.cfg"); err == nil {
		cfgText = string(b)
	}

	return &Board{
		Inputs: NewHostPinFactory(),
		Bus:    bus,
		WireA:  &FakePin{},
		WireB:  &FakePin{},
		Buzzer: &RecordTone{},
		MIDI:   io.Discard,
		Config: cfgText,
	}
}

//go:build rp2040 || rp2350

package platform

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"stick-go/errcode"
	"stick-go/midi"
	"stick-go/x/mathx"
	"stick-go/x/timex"
)

// Pico Expansion Mini wiring.
const (
	pinMuxSDA = 16 // Grove 4 pin 1, shared hub bus + wire A
	pinMuxSCL = 17 // Grove 4 pin 2, shared hub bus + wire B
	pinBuzzer = 18 // passive buzzer (BUZZER_SW jumper ON)
	pinAudio  = 19 // audio jack
	pinMIDITX = 0  // Grove 1
	pinMIDIRX = 1

	busFreqHz = 50_000
)

// ----------------------------- GPIO -------------------------------------

type rp2Pin struct{ p machine.Pin }

func (r rp2Pin) Get() bool { return r.p.Get() }

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (DigitalIn, error) {
	if n < 0 || n > 29 {
		return nil, errcode.BadPin
	}
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return rp2Pin{p: p}, nil
}

// ----------------------------- Tone -------------------------------------

type pwmGroup interface {
	Configure(machine.PWMConfig) error
	Channel(machine.Pin) (uint8, error)
	SetPeriod(uint64) error
	Top() uint32
	Set(uint8, uint32)
}

func pwmFor(pin machine.Pin) (pwmGroup, uint8, bool) {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil, 0, false
	}
	var g pwmGroup
	switch slice {
	case 0:
		g = machine.PWM0
	case 1:
		g = machine.PWM1
	case 2:
		g = machine.PWM2
	case 3:
		g = machine.PWM3
	case 4:
		g = machine.PWM4
	case 5:
		g = machine.PWM5
	case 6:
		g = machine.PWM6
	case 7:
		g = machine.PWM7
	default:
		return nil, 0, false
	}
	if err := g.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(440)}); err != nil {
		return nil, 0, false
	}
	ch, err := g.Channel(pin)
	if err != nil {
		return nil, 0, false
	}
	g.Set(ch, 0)
	return g, ch, true
}

type toneOut struct {
	g  pwmGroup
	ch uint8
	ok bool
}

// rp2Tone drives the buzzer and the audio jack together, 50% duty square
// wave like the original board firmware.
type rp2Tone struct {
	outs [2]toneOut
}

func newRP2Tone() *rp2Tone {
	t := &rp2Tone{}
	for i, pin := range []machine.Pin{pinBuzzer, pinAudio} {
		g, ch, ok := pwmFor(pin)
		t.outs[i] = toneOut{g: g, ch: ch, ok: ok}
	}
	return t
}

func (t *rp2Tone) Play(freqHz float32) error {
	if freqHz <= 0 {
		return errcode.ToneFault
	}
	// Keep the divider inside the slice's usable band.
	period := timex.PeriodFromHz(uint32(mathx.Clamp(freqHz, 20, 20_000)))
	any := false
	for _, o := range t.outs {
		if !o.ok {
			continue
		}
		if err := o.g.SetPeriod(period); err != nil {
			continue
		}
		o.g.Set(o.ch, o.g.Top()/2)
		any = true
	}
	if !any {
		return errcode.ToneFault
	}
	return nil
}

func (t *rp2Tone) Stop() {
	for _, o := range t.outs {
		if o.ok {
			o.g.Set(o.ch, 0)
		}
	}
}

// ----------------------------- Board ------------------------------------

// Default wires the real board: hardware I2C0 on the Grove 4 pins, the
// same pads sampled as hub pass-through wires, PWM tone outputs, and
// UART0 as the MIDI port. The config loader (removable storage) is a
// separate tool; on-device builds carry the built-in mapping.
func Default() *Board {
	sda := machine.Pin(pinMuxSDA)
	scl := machine.Pin(pinMuxSCL)
	machine.I2C0.Configure(machine.I2CConfig{
		SDA:       sda,
		SCL:       scl,
		Frequency: busFreqHz,
	})

	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: midi.Baud,
		TX:       machine.Pin(pinMIDITX),
		RX:       machine.Pin(pinMIDIRX),
	})

	return &Board{
		Inputs: rp2PinFactory{},
		Bus:    machine.I2C0,
		WireA:  rp2Pin{p: sda},
		WireB:  rp2Pin{p: scl},
		Buzzer: newRP2Tone(),
		MIDI:   uartx.UART0,
		Config: DefaultConfig,
	}
}

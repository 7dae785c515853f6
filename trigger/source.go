// Package trigger is the sensor-to-sound engine: topology resolution,
// per-sensor debouncing, and fan-out of validated strikes to the tone and
// MIDI sinks, all driven by a single-context scan loop.
package trigger

import (
	"stick-go/config"
	"stick-go/drivers/pcf8574"
	"stick-go/drivers/tca9548a"
	"stick-go/platform"
	"stick-go/x/fmtx"
)

// Source is one physical trigger point. ReadLevel returns the *logical*
// level: true means the sensor is currently asserted (struck). Polarity
// is a per-source-kind property, never a global assumption — direct pins
// and hub wires are active-HIGH, expander bits are active-LOW.
type Source interface {
	// ID is the source's stable identity (kind + address path); unique
	// across the sensor set.
	ID() string
	ReadLevel() (bool, error)
}

// HubScoped is implemented by sources reachable through a hub. The
// scanner uses it to skip the rest of a faulted hub within a round
// without touching sensors on other hubs or direct pins.
type HubScoped interface {
	HubAddr() uint8
}

// ----------------------------- direct pin --------------------------------

// DirectSource reads a controller pin. Active-HIGH: the piezo board
// drives the line high on a hit (pin configured with a pull-down).
type DirectSource struct {
	pin platform.DigitalIn
	id  string
}

func NewDirectSource(pin platform.DigitalIn, num int) *DirectSource {
	return &DirectSource{pin: pin, id: "GPIO" + fmtx.Itoa(num)}
}

func (s *DirectSource) ID() string { return s.id }

func (s *DirectSource) ReadLevel() (bool, error) { return s.pin.Get(), nil }

// ----------------------------- hub wire ----------------------------------

// HubWireSource reads one of the two pass-through signal wires on a hub
// channel. Active-HIGH: the FET switch passes the asserted level through.
type HubWireSource struct {
	hub  *tca9548a.Device
	ch   uint8
	wire config.Wire
	id   string
}

func NewHubWireSource(hub *tca9548a.Device, ch uint8, wire config.Wire) *HubWireSource {
	return &HubWireSource{
		hub:  hub,
		ch:   ch,
		wire: wire,
		id:   fmtx.Hex8(byte(hub.Address())) + ":ch" + fmtx.Itoa(int(ch)) + ":" + wire.String(),
	}
}

func (s *HubWireSource) ID() string     { return s.id }
func (s *HubWireSource) HubAddr() uint8 { return uint8(s.hub.Address()) }

func (s *HubWireSource) ReadLevel() (bool, error) {
	a, b, err := s.hub.ReadWires(s.ch)
	if err != nil {
		return false, err
	}
	if s.wire == config.WireB {
		return b, nil
	}
	return a, nil
}

// ----------------------------- expander bit ------------------------------

// ExpanderSource reads one bit of a GPIO expander sitting behind a hub
// channel. Active-LOW: a triggered sensor pulls the line to ground, so
// the logical level is the inverted raw bit.
type ExpanderSource struct {
	hub *tca9548a.Device
	exp *pcf8574.Device
	ch  uint8
	bit uint8
	id  string
}

func NewExpanderSource(hub *tca9548a.Device, ch uint8, exp *pcf8574.Device, bit uint8) *ExpanderSource {
	return &ExpanderSource{
		hub: hub,
		exp: exp,
		ch:  ch,
		bit: bit,
		id: fmtx.Hex8(byte(hub.Address())) + ":ch" + fmtx.Itoa(int(ch)) +
			":" + fmtx.Hex8(byte(exp.Address())) + ":b" + fmtx.Itoa(int(bit)),
	}
}

func (s *ExpanderSource) ID() string     { return s.id }
func (s *ExpanderSource) HubAddr() uint8 { return uint8(s.hub.Address()) }

func (s *ExpanderSource) ReadLevel() (bool, error) {
	if err := s.hub.Select(s.ch); err != nil {
		return false, err
	}
	raw, err := s.exp.ReadPort()
	if err != nil {
		return false, err
	}
	return raw&(1<<s.bit) == 0, nil
}

package trigger

import (
	"stick-go/config"
	"stick-go/drivers/pcf8574"
	"stick-go/drivers/tca9548a"
	"stick-go/errcode"
	"stick-go/notes"
	"stick-go/platform"
	"stick-go/x/fmtx"
)

// Hardware supplies the physical resources the resolver binds sources to.
// Hub and Expander return a shared instance per address: the selection
// cache must be one per physical hub.
type Hardware interface {
	InputPin(n int) (platform.DigitalIn, error)
	Hub(addr uint8) *tca9548a.Device
	Expander(addr uint8) *pcf8574.Device
}

// Sensor is one resolved trigger point: source, resolved note, debounce
// state. The note mapping is built here once and read-only afterwards.
type Sensor struct {
	Src  Source
	Name string // configured note name
	Note notes.Note
	deb  Debouncer
}

// State reports the sensor's current debounce state.
func (s *Sensor) State() State { return s.deb.State() }

// Topology is the ordered, validated sensor set. Order follows the
// configuration for deterministic scanning and boot reporting.
type Topology struct {
	Sensors []*Sensor

	hubs      []*tca9548a.Device
	expanders []expanderRef
}

type expanderRef struct {
	hub *tca9548a.Device
	ch  uint8
	exp *pcf8574.Device
}

// Resolve turns parsed configuration entries into the flat sensor list.
// Pure transform: no bus traffic happens here. Fails on the first
// duplicate identity or unresolvable note; no partial set is returned.
func Resolve(cfg *config.Config, hw Hardware) (*Topology, error) {
	t := &Topology{}
	seen := map[string]bool{}

	for i := range cfg.Entries {
		e := &cfg.Entries[i]

		var src Source
		switch e.Kind {
		case config.KindDirect:
			pin, err := hw.InputPin(e.Pin)
			if err != nil {
				return nil, &errcode.E{C: errcode.BadPin, Op: "trigger.Resolve", Msg: "pin " + fmtx.Itoa(e.Pin)}
			}
			src = NewDirectSource(pin, e.Pin)
		case config.KindHubWire:
			hub := t.hub(hw, e.HubAddr)
			src = NewHubWireSource(hub, e.Channel, e.Wire)
		case config.KindExpanderBit:
			hub := t.hub(hw, e.HubAddr)
			exp := hw.Expander(e.ExpanderAddr)
			t.noteExpander(hub, e.Channel, exp)
			src = NewExpanderSource(hub, e.Channel, exp, e.Bit)
		default:
			return nil, &errcode.E{C: errcode.InvalidConfig, Op: "trigger.Resolve", Msg: "unknown entry kind"}
		}

		id := src.ID()
		if seen[id] {
			return nil, &errcode.E{C: errcode.DuplicateSensor, Op: "trigger.Resolve", Msg: id}
		}
		seen[id] = true

		note, ok := notes.Lookup(e.Note)
		if !ok {
			return nil, &errcode.E{C: errcode.UnknownNote, Op: "trigger.Resolve", Msg: e.Note + " (" + id + ")"}
		}

		t.Sensors = append(t.Sensors, &Sensor{Src: src, Name: e.Note, Note: note})
	}
	return t, nil
}

func (t *Topology) hub(hw Hardware, addr uint8) *tca9548a.Device {
	d := hw.Hub(addr)
	for _, h := range t.hubs {
		if h == d {
			return d
		}
	}
	t.hubs = append(t.hubs, d)
	return d
}

func (t *Topology) noteExpander(hub *tca9548a.Device, ch uint8, exp *pcf8574.Device) {
	for _, r := range t.expanders {
		if r.hub == hub && r.ch == ch && r.exp == exp {
			return
		}
	}
	t.expanders = append(t.expanders, expanderRef{hub: hub, ch: ch, exp: exp})
}

// HubStatus is one hub's boot-probe result.
type HubStatus struct {
	Addr uint8
	OK   bool
}

// Probe checks each referenced hub with a harmless control write and
// re-arms expander inputs behind reachable hubs. Failures here are
// reported, not fatal: a hub can come back mid-run and the per-round
// retry policy will pick it up.
func (t *Topology) Probe() []HubStatus {
	out := make([]HubStatus, 0, len(t.hubs))
	for _, h := range t.hubs {
		out = append(out, HubStatus{Addr: uint8(h.Address()), OK: h.DisableAll() == nil})
	}
	for _, r := range t.expanders {
		if r.hub.Select(r.ch) != nil {
			continue
		}
		_ = r.exp.PrimeInputs()
	}
	return out
}

// Report renders the boot status lines: every configured sensor with its
// identity, note, frequency, protocol number and initial debounce state,
// in configuration order.
func (t *Topology) Report() []string {
	lines := make([]string, 0, len(t.Sensors)+1)
	lines = append(lines, "== Sensor Status == ("+fmtx.Itoa(len(t.Sensors))+" configured)")
	for _, s := range t.Sensors {
		lines = append(lines, "  "+fmtx.PadRight(s.Src.ID(), 18)+
			" -> "+fmtx.PadRight(s.Name, 4)+
			fmtx.PadLeft(fmtx.Freq1(s.Note.Freq), 7)+" Hz"+
			"  MIDI "+fmtx.PadLeft(fmtx.Itoa(int(s.Note.Number)), 3)+
			"  ["+s.State().String()+"]")
	}
	return lines
}

// ----------------------------- board binding -----------------------------

// boardHardware adapts a platform.Board to the Hardware factory,
// deduplicating hub and expander instances per address.
type boardHardware struct {
	b    *platform.Board
	hubs map[uint8]*tca9548a.Device
	exps map[uint8]*pcf8574.Device
}

// NewBoardHardware binds the resolver to a concrete board.
func NewBoardHardware(b *platform.Board) Hardware {
	return &boardHardware{
		b:    b,
		hubs: map[uint8]*tca9548a.Device{},
		exps: map[uint8]*pcf8574.Device{},
	}
}

func (h *boardHardware) InputPin(n int) (platform.DigitalIn, error) {
	return h.b.Inputs.ByNumber(n)
}

func (h *boardHardware) Hub(addr uint8) *tca9548a.Device {
	d, ok := h.hubs[addr]
	if !ok {
		d = tca9548a.New(h.b.Bus, uint16(addr), h.b.WireA, h.b.WireB)
		h.hubs[addr] = d
	}
	return d
}

func (h *boardHardware) Expander(addr uint8) *pcf8574.Device {
	d, ok := h.exps[addr]
	if !ok {
		d = pcf8574.New(h.b.Bus, uint16(addr))
		h.exps[addr] = d
	}
	return d
}

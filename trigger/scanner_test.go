package trigger

import (
	"bytes"
	"testing"

	"stick-go/errcode"
	"stick-go/midi"
	"stick-go/platform"
)

// newScanner wires a topology to a dispatcher whose serial side lands in
// buf and whose tone side is the board's recording buzzer.
func newScanner(tb *testBoard, topo *Topology, buf *bytes.Buffer) *Scanner {
	sc := NewScanner(topo, NewDispatcher(tb.tone, midi.NewOut(buf, 0)))
	sc.Report = func(string, errcode.Code) {}
	return sc
}

func TestRoundDispatchesDirectStrikeEndToEnd(t *testing.T) {
	tb := newTestBoard()
	topo := resolve(t, tb, "gpio 16 C4\n")
	var buf bytes.Buffer
	sc := newScanner(tb, topo, &buf)
	pin := tb.pins.Pin(16)

	// The edge is dispatched within the round that samples it.
	pin.Set(true)
	sc.Round(0)
	if len(tb.tone.Played) != 1 || tb.tone.Played[0] != 261.63 {
		t.Fatalf("tone = %v, want one play at 261.63", tb.tone.Played)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x90, 60, Velocity}) {
		t.Fatalf("serial = % x, want note-on", buf.Bytes())
	}

	// Held, released, quiet: no further events until the envelope ends.
	sc.Round(5)
	pin.Set(false)
	sc.Round(10)
	if buf.Len() != 3 || tb.tone.Stops != 0 {
		t.Fatal("no output expected before the envelope ends")
	}

	sc.Round(ToneDurationMs)
	if tb.tone.Stops != 1 {
		t.Fatalf("stops = %d, want tone stopped at envelope end", tb.tone.Stops)
	}
	if !bytes.Equal(buf.Bytes()[3:], []byte{0x80, 60, 0}) {
		t.Fatalf("serial tail = % x, want note-off", buf.Bytes()[3:])
	}
}

func TestHubFaultIsolatedWithinRound(t *testing.T) {
	tb := newTestBoard()
	topo := resolve(t, tb, "hub 0x70 0 A C4\nhub 0x70 1 B E4\nhub 0x71 0 A G4\ngpio 16 A4\n")
	var buf bytes.Buffer
	sc := newScanner(tb, topo, &buf)

	var faults []string
	sc.Report = func(id string, code errcode.Code) {
		faults = append(faults, id+" "+string(code))
	}

	tb.bus.FailFor[0x70] = 99 // hub 0x70 dead for the whole round
	tb.Board.WireA.(*platform.FakePin).Set(true)
	tb.pins.Pin(16).Set(true)

	sc.Round(0)

	// One fault for the first sensor on the dead hub; the second is
	// skipped without another bus touch.
	if len(faults) != 1 || faults[0] != "0x70:ch0:A bus_fault" {
		t.Fatalf("faults = %v, want one for 0x70:ch0:A", faults)
	}
	if got := tb.bus.TxCount(0x70); got != 2 {
		t.Fatalf("dead hub saw %d transactions, want 2 (select + retry)", got)
	}

	// The healthy hub and the direct pin still dispatch in the same round.
	want := []byte{0x90, 67, Velocity, 0x90, 69, Velocity}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("serial = % x, want G4 then A4 note-ons", buf.Bytes())
	}

	// Next round the failed-hub set is cleared and the hub is retried.
	tb.bus.FailFor[0x70] = 0
	sc.Round(5)
	if got := tb.bus.TxCount(0x70); got <= 2 {
		t.Fatal("recovered hub was not retried on the next round")
	}
}

func TestSelectionCachedAcrossSensorsInRound(t *testing.T) {
	tb := newTestBoard()
	topo := resolve(t, tb, "hub 0x70 0 A C4\nhub 0x70 0 B E4\nhub 0x70 1 A G4\n")
	var buf bytes.Buffer
	sc := newScanner(tb, topo, &buf)

	sc.Round(0)
	// ch0 selected once for the two wires, ch1 once: two control writes.
	if got := tb.bus.TxCount(0x70); got != 2 {
		t.Fatalf("round issued %d selects, want 2", got)
	}
}

func TestExpanderLinesAreActiveLow(t *testing.T) {
	tb := newTestBoard()
	topo := resolve(t, tb, "exp 0x70 0 0x20 2 C4\nexp 0x70 0 0x20 5 E4\n")
	var buf bytes.Buffer
	sc := newScanner(tb, topo, &buf)

	// All lines pulled high: nothing fires.
	tb.expPort = 0xFF
	sc.Round(0)
	if buf.Len() != 0 || len(tb.tone.Played) != 0 {
		t.Fatal("idle-high port must not trigger")
	}

	// Line 5 pulled low: only the bit-5 sensor fires.
	tb.expPort = 0xFF &^ (1 << 5)
	sc.Round(5)
	if !bytes.Equal(buf.Bytes(), []byte{0x90, 64, Velocity}) {
		t.Fatalf("serial = % x, want a single E4 note-on", buf.Bytes())
	}
	if len(tb.tone.Played) != 1 {
		t.Fatalf("tone = %v, want one play", tb.tone.Played)
	}
}

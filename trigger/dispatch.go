package trigger

import (
	"stick-go/errcode"
	"stick-go/midi"
	"stick-go/platform"
)

// Fixed strike envelope and velocity.
const (
	ToneDurationMs = 200
	Velocity       = 127
)

type noteOff struct {
	number uint8
	at     int64
}

// Dispatcher fans a validated strike out to the two sinks, tone first,
// then serial. The sinks are independent: a fault in one is reported and
// never delays or suppresses the other, and neither fault reaches the
// scan loop as an error.
//
// Tone end and note-offs are expiry timestamps retired by Tick each
// round, never blocking sleeps, so a sounding tone cannot starve
// scanning.
type Dispatcher struct {
	tone  platform.Tone
	out   *midi.Out
	durMs int64

	toneOn    bool
	toneUntil int64
	pending   []noteOff // due note-offs, one per successful note-on

	// Report receives sink faults. Defaults to println.
	Report func(id string, code errcode.Code)
}

func NewDispatcher(tone platform.Tone, out *midi.Out) *Dispatcher {
	return &Dispatcher{
		tone:  tone,
		out:   out,
		durMs: ToneDurationMs,
		Report: func(id string, code errcode.Code) {
			println("[scan] output fault:", id, string(code))
		},
	}
}

// Strike handles one rising-edge event. A retrigger restarts the tone
// envelope (no mixing); MIDI note-offs are tracked per note so every
// note-on gets its matching note-off after the fixed duration.
func (d *Dispatcher) Strike(s *Sensor, nowMs int64) {
	if err := d.tone.Play(s.Note.Freq); err != nil {
		d.Report(s.Src.ID(), errcode.Of(err))
	} else {
		d.toneOn = true
		d.toneUntil = nowMs + d.durMs
	}

	if err := d.out.NoteOn(s.Note.Number, Velocity); err != nil {
		d.Report(s.Src.ID(), errcode.Of(err))
		return
	}
	d.pending = append(d.pending, noteOff{number: s.Note.Number, at: nowMs + d.durMs})
}

// Tick retires due timers: stops the tone at envelope end and emits due
// note-offs. Called once per scan round.
func (d *Dispatcher) Tick(nowMs int64) {
	if d.toneOn && nowMs >= d.toneUntil {
		d.tone.Stop()
		d.toneOn = false
	}
	keep := d.pending[:0]
	for _, p := range d.pending {
		if nowMs >= p.at {
			if err := d.out.NoteOff(p.number); err != nil {
				d.Report("midi", errcode.Of(err))
			}
			continue
		}
		keep = append(keep, p)
	}
	d.pending = keep
}

// Idle reports whether no tone or note-off is outstanding.
func (d *Dispatcher) Idle() bool { return !d.toneOn && len(d.pending) == 0 }

// Package midi emits channel voice messages over a byte-oriented serial
// sink. The wire format is the standard 3-byte note-on/note-off pair:
// status byte (opcode | channel), note number, velocity.
package midi

import (
	"io"

	"stick-go/errcode"
)

// Baud is the standard serial MIDI bit rate.
const Baud = 31250

// Status byte opcodes.
const (
	msgNoteOff    = 0x80
	msgNoteOn     = 0x90
	msgProgChange = 0xC0
)

// Out writes MIDI messages to a serial port. Not safe for concurrent use;
// the scan loop is the only writer.
type Out struct {
	w       io.Writer
	channel uint8
	buf     [3]byte // reused, no per-message allocation
}

// NewOut wraps a serial writer. channel is masked to 0-15.
func NewOut(w io.Writer, channel uint8) *Out {
	return &Out{w: w, channel: channel & 0x0F}
}

// NoteOn sends Note On. note and velocity are masked to 0-127.
func (o *Out) NoteOn(note, velocity uint8) error {
	return o.send(msgNoteOn, note&0x7F, velocity&0x7F)
}

// NoteOff sends Note Off with velocity 0.
func (o *Out) NoteOff(note uint8) error {
	return o.send(msgNoteOff, note&0x7F, 0)
}

// ProgramChange sends a 2-byte Program Change. program is masked to 0-127.
func (o *Out) ProgramChange(program uint8) error {
	o.buf[0] = msgProgChange | o.channel
	o.buf[1] = program & 0x7F
	if _, err := o.w.Write(o.buf[:2]); err != nil {
		return &errcode.E{C: errcode.SerialFault, Op: "midi.ProgramChange", Err: err}
	}
	return nil
}

func (o *Out) send(status, d1, d2 uint8) error {
	o.buf[0] = status | o.channel
	o.buf[1] = d1
	o.buf[2] = d2
	if _, err := o.w.Write(o.buf[:3]); err != nil {
		return &errcode.E{C: errcode.SerialFault, Op: "midi.send", Err: err}
	}
	return nil
}

// midimon tails the firmware's serial MIDI stream from a host machine:
// it frames the channel messages, prints them human-readably, and can
// forward them to a system MIDI output.
//
//	midimon -port /dev/ttyACM0
//	midimon -port /dev/ttyACM0 -through   # forward to first MIDI out
package main

import (
	"flag"
	"log/slog"
	"os"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.bug.st/serial"

	"stick-go/midi"
)

func main() {
	portName := flag.String("port", "/dev/ttyACM0", "serial device carrying the MIDI stream")
	baud := flag.Int("baud", midi.Baud, "serial baud rate")
	through := flag.Bool("through", false, "forward messages to the first system MIDI output")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	port, err := serial.Open(*portName, &serial.Mode{BaudRate: *baud})
	if err != nil {
		logger.Error("serial: open failed", "port", *portName, "err", err)
		os.Exit(1)
	}
	defer port.Close()
	logger.Info("serial: port opened", "port", *portName, "baud", *baud)

	var send func(gomidi.Message) error
	if *through {
		drv, err := rtmididrv.New()
		if err != nil {
			logger.Error("midi: driver init failed", "err", err)
			os.Exit(1)
		}
		defer drv.Close()
		outs, err := drv.Outs()
		if err != nil || len(outs) == 0 {
			logger.Error("midi: no outputs available", "err", err)
			os.Exit(1)
		}
		out := outs[0]
		if err := out.Open(); err != nil {
			logger.Error("midi: open output failed", "out", out.String(), "err", err)
			os.Exit(1)
		}
		defer out.Close()
		send = func(m gomidi.Message) error { return out.Send(m.Bytes()) }
		logger.Info("midi: forwarding", "out", out.String())
	}

	var msg [3]byte
	have := 0
	buf := make([]byte, 64)
	for {
		n, err := port.Read(buf)
		if err != nil {
			logger.Error("serial: read failed", "err", err)
			os.Exit(1)
		}
		for _, b := range buf[:n] {
			if b&0x80 != 0 {
				// Status byte restarts the frame; resyncs after drops.
				msg[0] = b
				have = 1
				continue
			}
			if have == 0 {
				continue // data byte with no status yet
			}
			msg[have] = b
			have++
			if have == frameLen(msg[0]) {
				emit(logger, send, gomidi.Message(append([]byte(nil), msg[:have]...)))
				have = 0
			}
		}
	}
}

// frameLen returns the message length for a status byte. The firmware
// only emits note-on/off (3 bytes) and program change (2 bytes).
func frameLen(status byte) int {
	if status&0xF0 == 0xC0 {
		return 2
	}
	return 3
}

func emit(logger *slog.Logger, send func(gomidi.Message) error, m gomidi.Message) {
	var ch, key, vel uint8
	switch {
	case m.GetNoteStart(&ch, &key, &vel):
		logger.Info("note on", "ch", ch, "key", key, "vel", vel)
	case m.GetNoteEnd(&ch, &key):
		logger.Info("note off", "ch", ch, "key", key)
	default:
		logger.Info("message", "msg", m.String())
	}
	if send != nil {
		if err := send(m); err != nil {
			logger.Warn("midi: forward failed", "err", err)
		}
	}
}

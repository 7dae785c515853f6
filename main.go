package main

import (
	"context"
	"strings"
	"time"

	"stick-go/config"
	"stick-go/midi"
	"stick-go/platform"
	"stick-go/trigger"
	"stick-go/x/fmtx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	board := platform.Default()

	// Configuration faults are fatal: no partial sensor set is activated
	// and the scan loop never starts.
	cfg, err := config.Parse(strings.NewReader(board.Config))
	if err != nil {
		println("[boot] config:", err.Error())
		return
	}
	topo, err := trigger.Resolve(cfg, trigger.NewBoardHardware(board))
	if err != nil {
		println("[boot] topology:", err.Error())
		return
	}

	for _, st := range topo.Probe() {
		if st.OK {
			println("[boot] hub", fmtx.Hex8(st.Addr), "OK")
		} else {
			println("[boot] hub", fmtx.Hex8(st.Addr), "NOT FOUND")
		}
	}
	for _, line := range topo.Report() {
		println(line)
	}
	println("[boot] ready,", len(topo.Sensors), "sensors active")

	out := midi.NewOut(board.MIDI, 0)
	disp := trigger.NewDispatcher(board.Buzzer, out)
	trigger.NewScanner(topo, disp).Run(context.Background())
}

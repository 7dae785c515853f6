package trigger

import (
	"context"
	"time"

	"stick-go/errcode"
	"stick-go/x/timex"
)

// PollIntervalMs paces scan rounds. Far below the refractory window so
// the round-granularity view of time stays valid.
const PollIntervalMs = 5

// Scanner drives one round per tick: read every sensor in topology
// order, debounce, dispatch inline on edges. Single execution context;
// all scan state (including the hubs' selection caches) is touched only
// from here.
type Scanner struct {
	topo *Topology
	disp *Dispatcher

	interval   time.Duration
	failedHubs map[uint8]bool // hubs skipped for the rest of the round

	// Report receives per-sensor bus faults. Defaults to println.
	Report func(id string, code errcode.Code)
}

func NewScanner(topo *Topology, disp *Dispatcher) *Scanner {
	return &Scanner{
		topo:       topo,
		disp:       disp,
		interval:   PollIntervalMs * time.Millisecond,
		failedHubs: map[uint8]bool{},
		Report: func(id string, code errcode.Code) {
			println("[scan] bus fault:", id, string(code))
		},
	}
}

// Round performs one scan pass at nowMs. Dispatch happens inline, so the
// earliest-scanned sensor of simultaneous hits sounds first. A bus fault
// skips the sensor — and the rest of its hub — for this round only;
// sensors on other hubs and direct pins are unaffected. Nothing here
// terminates the loop.
func (s *Scanner) Round(nowMs int64) {
	for a := range s.failedHubs {
		delete(s.failedHubs, a)
	}

	for _, sen := range s.topo.Sensors {
		if hs, ok := sen.Src.(HubScoped); ok && s.failedHubs[hs.HubAddr()] {
			continue
		}
		level, err := sen.Src.ReadLevel()
		if err != nil {
			if hs, ok := sen.Src.(HubScoped); ok {
				s.failedHubs[hs.HubAddr()] = true
			}
			s.Report(sen.Src.ID(), errcode.Of(err))
			continue
		}
		if sen.deb.Observe(level, nowMs) {
			s.disp.Strike(sen, nowMs)
		}
	}

	s.disp.Tick(nowMs)
}

// Run paces rounds for the lifetime of the process. The context exists
// for tests; the firmware never cancels it.
func (s *Scanner) Run(ctx context.Context) {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.Round(timex.NowMs())
		}
	}
}

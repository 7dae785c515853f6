package trigger

// RefractoryMs is the bounce-absorption window after a release. The
// window starts at release, not at detection, so the rising edge itself
// carries no wait-and-confirm delay.
const RefractoryMs = 50

// State is a sensor's debounce state.
type State uint8

const (
	StateIdle State = iota
	StateTriggered
	StateRefractory
)

func (s State) String() string {
	switch s {
	case StateTriggered:
		return "TRIGGERED"
	case StateRefractory:
		return "REFRACTORY"
	default:
		return "IDLE"
	}
}

// Debouncer turns a per-round level sequence into validated rising-edge
// events. Owned exclusively by its sensor; never persisted.
type Debouncer struct {
	state     State
	expiresAt int64 // refractory expiry, ms
}

// State reports the current debounce state.
func (d *Debouncer) State() State { return d.state }

// Observe feeds one sampled logical level at the round's timestamp and
// reports whether a validated rising edge occurred.
//
// Idle+high fires immediately (latency = one scan round). A sustained
// press stays Triggered without re-firing. Release arms the refractory
// window; within it every level is absorbed, and the sensor returns to
// Idle only once it is observed low at or after expiry — a line stuck
// high across the window cannot re-fire.
func (d *Debouncer) Observe(level bool, nowMs int64) bool {
	switch d.state {
	case StateIdle:
		if level {
			d.state = StateTriggered
			return true
		}
	case StateTriggered:
		if !level {
			d.state = StateRefractory
			d.expiresAt = nowMs + RefractoryMs
		}
	case StateRefractory:
		if !level && nowMs >= d.expiresAt {
			d.state = StateIdle
		}
	}
	return false
}

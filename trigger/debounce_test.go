package trigger

import "testing"

func TestSingleStrikeFiresExactlyOnce(t *testing.T) {
	var d Debouncer

	// low -> high -> held -> low, then quiet past the window.
	if d.Observe(false, 0) {
		t.Fatal("idle low should not fire")
	}
	if !d.Observe(true, 5) {
		t.Fatal("rising edge should fire immediately")
	}
	if d.Observe(true, 10) {
		t.Fatal("sustained press must not re-fire")
	}
	if d.Observe(false, 15) {
		t.Fatal("release must not fire")
	}
	if d.State() != StateRefractory {
		t.Fatalf("state = %v after release, want refractory", d.State())
	}
	if d.Observe(false, 15+RefractoryMs) {
		t.Fatal("window expiry must not fire")
	}
	if d.State() != StateIdle {
		t.Fatalf("state = %v after window, want idle", d.State())
	}
}

func TestBounceWithinWindowIsAbsorbed(t *testing.T) {
	var d Debouncer
	if !d.Observe(true, 0) {
		t.Fatal("initial strike should fire")
	}
	d.Observe(false, 10) // release, window ends at 60

	// Contact bounce: flapping inside the window.
	for _, obs := range []struct {
		level bool
		at    int64
	}{{true, 20}, {false, 25}, {true, 40}, {false, 55}} {
		if d.Observe(obs.level, obs.at) {
			t.Fatalf("bounce at %dms fired an event", obs.at)
		}
		if d.State() != StateRefractory {
			t.Fatalf("state = %v at %dms, want refractory", d.State(), obs.at)
		}
	}

	// Quiet past expiry, then a real strike fires again.
	d.Observe(false, 70)
	if !d.Observe(true, 75) {
		t.Fatal("strike after the window should fire")
	}
}

func TestStuckHighAcrossWindowCannotRefire(t *testing.T) {
	var d Debouncer
	d.Observe(true, 0)
	d.Observe(false, 10) // window ends at 60

	// Still high when the window expires: stays refractory.
	if d.Observe(true, 80) {
		t.Fatal("high at expiry must not fire")
	}
	if d.State() != StateRefractory {
		t.Fatalf("state = %v, want refractory while line is stuck high", d.State())
	}

	// Only after a low is seen does the sensor re-arm.
	d.Observe(false, 90)
	if d.State() != StateIdle {
		t.Fatalf("state = %v, want idle after post-expiry low", d.State())
	}
	if !d.Observe(true, 95) {
		t.Fatal("re-armed sensor should fire")
	}
}

func TestDetectionLatencyIsOneRound(t *testing.T) {
	var d Debouncer
	// The very first high sample fires; there is no confirm delay.
	if !d.Observe(true, 123456) {
		t.Fatal("rising edge must fire on the round it is sampled")
	}
}

package errcode

// Code is a stable, short error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Configuration faults. Fatal at startup: the scan loop never starts
	// on a config-class error.
	InvalidConfig   Code = "invalid_config"
	UnknownNote     Code = "unknown_note"
	DuplicateSensor Code = "duplicate_sensor"
	BadAddress      Code = "bad_address"
	BadChannel      Code = "bad_channel"
	BadWire         Code = "bad_wire"
	BadBit          Code = "bad_bit"
	BadPin          Code = "bad_pin"

	// Bus faults. Transient; the affected sensor is skipped for the round.
	BusFault Code = "bus_fault"
	Timeout  Code = "timeout"

	// Output sink faults. Logged; never stop the scan loop or the other sink.
	ToneFault   Code = "tone_fault"
	SerialFault Code = "serial_fault"

	Unsupported Code = "unsupported"
	Error       Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// IsConfig reports whether err is a configuration-class fault.
func IsConfig(err error) bool {
	switch Of(err) {
	case InvalidConfig, UnknownNote, DuplicateSensor,
		BadAddress, BadChannel, BadWire, BadBit, BadPin:
		return true
	}
	return false
}

// IsBus reports whether err is a transient bus fault.
func IsBus(err error) bool {
	switch Of(err) {
	case BusFault, Timeout:
		return true
	}
	return false
}

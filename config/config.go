// Package config parses the sensors.cfg text format into an ordered list
// of sensor entries plus global options.
//
// Line forms (# starts a comment, blank lines ignored):
//
//	gpio <pin> <note>                              direct pin, active-HIGH
//	hub <addr> <channel> <A|B> <note>              mux wire, active-HIGH
//	exp <hubaddr> <channel> <expaddr> <bit> <note> expander bit, active-LOW
//	set <key> <value...>                           global option (ignored by the core)
//
// Addresses accept hex (0x70) or decimal. Where the config comes from
// (removable storage vs built-in fallback) is the loader's concern; Parse
// only sees a reader.
package config

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"stick-go/errcode"
	"stick-go/x/mathx"
)

// Kind discriminates the three wiring topologies.
type Kind uint8

const (
	KindDirect Kind = iota
	KindHubWire
	KindExpanderBit
)

// Wire selects one of the two pass-through signal lines on a hub channel.
type Wire uint8

const (
	WireA Wire = 0
	WireB Wire = 1
)

func (w Wire) String() string {
	if w == WireB {
		return "B"
	}
	return "A"
}

// Entry is one configured trigger point, in file order.
type Entry struct {
	Kind Kind
	Note string

	Pin int // KindDirect

	HubAddr uint8 // KindHubWire, KindExpanderBit
	Channel uint8
	Wire    Wire // KindHubWire

	ExpanderAddr uint8 // KindExpanderBit
	Bit          uint8
}

// Config is the parse result. Options are collected verbatim for
// collaborators (boot tune selection etc.); the trigger core ignores them.
type Config struct {
	Entries []Entry
	Options map[string]string
}

// HubAddrs returns the distinct hub addresses referenced, in first-seen order.
func (c *Config) HubAddrs() []uint8 {
	var out []uint8
	for _, e := range c.Entries {
		if e.Kind == KindDirect {
			continue
		}
		dup := false
		for _, a := range out {
			if a == e.HubAddr {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e.HubAddr)
		}
	}
	return out
}

// Parse reads a sensors.cfg stream. Any malformed line fails the whole
// parse: a partial sensor set must never be activated.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{Options: map[string]string{}}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields, err := shlex.Split(line)
		if err != nil {
			return nil, lineErr(errcode.InvalidConfig, lineNo, "unparsable line")
		}
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "gpio":
			e, err := parseDirect(fields, lineNo)
			if err != nil {
				return nil, err
			}
			cfg.Entries = append(cfg.Entries, e)
		case "hub":
			e, err := parseHubWire(fields, lineNo)
			if err != nil {
				return nil, err
			}
			cfg.Entries = append(cfg.Entries, e)
		case "exp":
			e, err := parseExpanderBit(fields, lineNo)
			if err != nil {
				return nil, err
			}
			cfg.Entries = append(cfg.Entries, e)
		case "set":
			if len(fields) < 3 {
				return nil, lineErr(errcode.InvalidConfig, lineNo, "set needs a key and a value")
			}
			cfg.Options[fields[1]] = strings.Join(fields[2:], " ")
		default:
			return nil, lineErr(errcode.InvalidConfig, lineNo, "unknown directive "+fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "config.Parse", Err: err}
	}
	return cfg, nil
}

func parseDirect(f []string, ln int) (Entry, error) {
	if len(f) != 3 {
		return Entry{}, lineErr(errcode.InvalidConfig, ln, "gpio needs: pin note")
	}
	pin, err := strconv.Atoi(f[1])
	if err != nil || pin < 0 {
		return Entry{}, lineErr(errcode.BadPin, ln, "pin "+f[1])
	}
	return Entry{Kind: KindDirect, Pin: pin, Note: f[2]}, nil
}

func parseHubWire(f []string, ln int) (Entry, error) {
	if len(f) != 5 {
		return Entry{}, lineErr(errcode.InvalidConfig, ln, "hub needs: addr channel wire note")
	}
	addr, err := parseAddr(f[1])
	if err != nil {
		return Entry{}, lineErr(errcode.BadAddress, ln, "hub address "+f[1])
	}
	ch, err := parseChannel(f[2])
	if err != nil {
		return Entry{}, lineErr(errcode.BadChannel, ln, "channel "+f[2])
	}
	var wire Wire
	switch f[3] {
	case "A", "a":
		wire = WireA
	case "B", "b":
		wire = WireB
	default:
		return Entry{}, lineErr(errcode.BadWire, ln, "wire "+f[3])
	}
	return Entry{Kind: KindHubWire, HubAddr: addr, Channel: ch, Wire: wire, Note: f[4]}, nil
}

func parseExpanderBit(f []string, ln int) (Entry, error) {
	if len(f) != 6 {
		return Entry{}, lineErr(errcode.InvalidConfig, ln, "exp needs: hubaddr channel expaddr bit note")
	}
	hub, err := parseAddr(f[1])
	if err != nil {
		return Entry{}, lineErr(errcode.BadAddress, ln, "hub address "+f[1])
	}
	ch, err := parseChannel(f[2])
	if err != nil {
		return Entry{}, lineErr(errcode.BadChannel, ln, "channel "+f[2])
	}
	exp, err := parseAddr(f[3])
	if err != nil {
		return Entry{}, lineErr(errcode.BadAddress, ln, "expander address "+f[3])
	}
	bit, err := strconv.ParseUint(f[4], 0, 8)
	if err != nil || bit > 7 {
		return Entry{}, lineErr(errcode.BadBit, ln, "bit "+f[4])
	}
	return Entry{
		Kind: KindExpanderBit, HubAddr: hub, Channel: ch,
		ExpanderAddr: exp, Bit: uint8(bit), Note: f[5],
	}, nil
}

// parseAddr accepts 7-bit I2C addresses, hex or decimal.
func parseAddr(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	if !mathx.Between(v, 1, 0x7F) {
		return 0, errcode.BadAddress
	}
	return uint8(v), nil
}

func parseChannel(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || !mathx.Between(v, 0, 7) {
		return 0, errcode.BadChannel
	}
	return uint8(v), nil
}

func lineErr(c errcode.Code, ln int, msg string) error {
	return &errcode.E{C: c, Op: "config.Parse", Msg: "line " + strconv.Itoa(ln) + ": " + msg}
}

// Package fmtx holds tiny MCU-friendly formatting helpers for the boot
// report. Avoids fmt on the firmware path; TinyGo links fmt's full
// reflection machinery otherwise.
package fmtx

import "strconv"

const hexdigits = "0123456789abcdef"

// Hex8 formats a byte as "0xNN".
func Hex8(b byte) string {
	return string([]byte{'0', 'x', hexdigits[b>>4], hexdigits[b&0x0F]})
}

// Itoa is strconv.Itoa, re-exported so callers need one import.
func Itoa(n int) string { return strconv.Itoa(n) }

// PadRight pads s with spaces to width w.
func PadRight(s string, w int) string {
	for len(s) < w {
		s += " "
	}
	return s
}

// PadLeft pads s with spaces to width w.
func PadLeft(s string, w int) string {
	for len(s) < w {
		s = " " + s
	}
	return s
}

// Freq1 formats a frequency with one decimal, e.g. 261.63 -> "261.6".
func Freq1(f float32) string {
	if f < 0 {
		f = 0
	}
	deci := int(f*10 + 0.5)
	return strconv.Itoa(deci/10) + "." + strconv.Itoa(deci%10)
}

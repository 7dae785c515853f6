// Package notes holds the note resolution table: note name to frequency
// and MIDI note number.
//
// Naming matches sample filenames: C4, Cs4 (C#4), D4, Ds4 (D#4), etc.
// Frequencies: A4 = 440 Hz, equal temperament. MIDI: C4 = 60 .. E6 = 88.
// The table is package data, built once, read-only.
package notes

// Note is one resolved entry: audible frequency plus protocol number.
type Note struct {
	Freq   float32 // Hz
	Number uint8   // MIDI note number, 0-127
}

var table = map[string]Note{
	"C4":  {261.63, 60},
	"Cs4": {277.18, 61},
	"D4":  {293.66, 62},
	"Ds4": {311.13, 63},
	"E4":  {329.63, 64},
	"F4":  {349.23, 65},
	"Fs4": {369.99, 66},
	"G4":  {392.00, 67},
	"Gs4": {415.30, 68},
	"A4":  {440.00, 69},
	"As4": {466.16, 70},
	"B4":  {493.88, 71},
	"C5":  {523.25, 72},
	"Cs5": {554.37, 73},
	"D5":  {587.33, 74},
	"Ds5": {622.25, 75},
	"E5":  {659.26, 76},
	"F5":  {698.46, 77},
	"Fs5": {739.99, 78},
	"G5":  {783.99, 79},
	"Gs5": {830.61, 80},
	"A5":  {880.00, 81},
	"As5": {932.33, 82},
	"B5":  {987.77, 83},
	"C6":  {1046.50, 84},
	"Cs6": {1108.73, 85},
	"D6":  {1174.66, 86},
	"Ds6": {1244.51, 87},
	"E6":  {1318.51, 88},
}

// Lookup resolves a note name. ok is false for unknown names.
func Lookup(name string) (Note, bool) {
	n, ok := table[name]
	return n, ok
}

// Names returns all known note names in pitch order.
func Names() []string {
	out := make([]string, 0, len(table))
	for name := range table {
		out = append(out, name)
	}
	// insertion sort by MIDI number; table is small and this avoids
	// pulling in sort on MCU builds.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && table[out[j-1]].Number > table[out[j]].Number; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

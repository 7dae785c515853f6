package notes

import "testing"

func TestLookupKnownNotes(t *testing.T) {
	c4, ok := Lookup("C4")
	if !ok {
		t.Fatal("C4 should resolve")
	}
	if c4.Freq != 261.63 || c4.Number != 60 {
		t.Fatalf("C4 = %+v, want 261.63 Hz / 60", c4)
	}

	a4, ok := Lookup("A4")
	if !ok {
		t.Fatal("A4 should resolve")
	}
	if a4.Freq != 440.00 || a4.Number != 69 {
		t.Fatalf("A4 = %+v, want 440 Hz / 69", a4)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("H9"); ok {
		t.Fatal("H9 should not resolve")
	}
	if _, ok := Lookup(""); ok {
		t.Fatal("empty name should not resolve")
	}
}

func TestNamesPitchOrder(t *testing.T) {
	names := Names()
	if len(names) != 29 {
		t.Fatalf("got %d names, want 29", len(names))
	}
	if names[0] != "C4" || names[len(names)-1] != "E6" {
		t.Fatalf("order wrong: first=%s last=%s", names[0], names[len(names)-1])
	}
	prev := uint8(0)
	for _, n := range names {
		note, _ := Lookup(n)
		if note.Number <= prev {
			t.Fatalf("names not in ascending pitch order at %s", n)
		}
		prev = note.Number
	}
}

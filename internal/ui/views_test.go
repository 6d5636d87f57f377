package ui

import (
	"strings"
	"testing"
)

func TestOverlay(t *testing.T) {
	base := "aaaa\nbbbb\ncccc"
	top := "\nXXXX\n"
	got := overlay(base, top)
	want := "aaaa\nXXXX\ncccc"
	if got != want {
		t.Fatalf("got %q", got)
	}
}

func TestOverlayLongerThanBase(t *testing.T) {
	got := overlay("aa", "\n\nZZ")
	if got != "aa\n\nZZ" {
		t.Fatalf("got %q", got)
	}
}

func TestStripANSI(t *testing.T) {
	in := "\x1b[38;5;120mgreen\x1b[0m text"
	if got := stripANSI(in); got != "green text" {
		t.Fatalf("got %q", got)
	}
}

func TestCutStringTruncates(t *testing.T) {
	if got := cutString("1234567890123", 10, 0); got != "1234567..." {
		t.Fatalf("got %q", got)
	}
	if got := cutString("short", 10, 0); got != "short" {
		t.Fatalf("got %q", got)
	}
}

func TestCutStringShift(t *testing.T) {
	got := cutString("abcdefghij", 20, 2)
	if !strings.HasPrefix(got, "...") {
		t.Fatalf("got %q", got)
	}
	if got != "...fghij" {
		t.Fatalf("got %q", got)
	}
	// shifted past the end collapses to dots
	if got := cutString("abc", 20, 5); got != "..." {
		t.Fatalf("got %q", got)
	}
	if got := cutString("", 20, 5); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestTagDocURL(t *testing.T) {
	if got := tagDocURL("Exif"); got != "https://exiftool.org/TagNames/EXIF.html" {
		t.Fatalf("got %q", got)
	}
	if got := tagDocURL("PNG"); got != "https://exiftool.org/TagNames/PNG.html" {
		t.Fatalf("got %q", got)
	}
}

func TestPadTo(t *testing.T) {
	if got := padTo("ab", 5); got != "ab   " {
		t.Fatalf("got %q", got)
	}
	if got := padTo("abcdef", 3); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := padTo("x", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}

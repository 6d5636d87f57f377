package model

import (
	"encoding/json"
	"testing"
)

func u64(v uint64) *uint64     { return &v }
func f64(v float64) *float64   { return &v }
func num(s string) json.Number { return json.Number(s) }

func sample() Entry {
	return Entry{
		ShortName: "ImageWidth",
		Name:      "Image Width",
		ID:        u64(256),
		Table:     Table{Group: "Exif", Subgroup: "Main"},
		Value:     Scalar("6000"),
		Num:       Scalar("6000"),
	}
}

func TestTableString(t *testing.T) {
	if got := (Table{Group: "Exif", Subgroup: "Main"}).String(); got != "Exif::Main" {
		t.Fatalf("got %q", got)
	}
	if got := (Table{Group: "File"}).String(); got != "File" {
		t.Fatalf("got %q", got)
	}
}

func TestListRenderRoundTrips(t *testing.T) {
	l := List{num("1"), "b", true, num("2.5")}
	if got := l.Render(); got != `1 "b" true 2.5` {
		t.Fatalf("got %q", got)
	}
}

func TestMatchesFilterFields(t *testing.T) {
	e := sample()
	for _, f := range []string{"image w", "IMAGEWIDTH", "600", ""} {
		if !e.MatchesFilter(f) {
			t.Fatalf("expected match for %q", f)
		}
	}
	if e.MatchesFilter("nope") {
		t.Fatalf("unexpected match")
	}
}

func TestMatchesFilterFamilyScoped(t *testing.T) {
	e := sample()
	if !e.MatchesFilter("<<exif>>") {
		t.Fatalf("family filter should match")
	}
	if e.MatchesFilter("<<png>>") {
		t.Fatalf("family filter should not match")
	}
	// family form matches only the table, not the name
	if e.MatchesFilter("<<image>>") {
		t.Fatalf("family filter must ignore the name")
	}
}

func TestListMatchCaseSensitivity(t *testing.T) {
	e := Entry{ShortName: "Keywords", Name: "Keywords", Value: List{"sunset"}}
	// the filter side is lowercased before matching
	if !e.MatchesFilter("Sunset") {
		t.Fatalf("lowercase element should match")
	}
	// list elements are matched in their raw rendering
	e.Value = List{"Sunset"}
	if e.MatchesFilter("sunset") {
		t.Fatalf("list match is against the raw element text")
	}
}

func TestEqualIgnoresNameAndNum(t *testing.T) {
	a, b := sample(), sample()
	b.Name = "Breedte"
	b.Num = Scalar("6e3")
	if !a.Equal(&b) {
		t.Fatalf("name and numeric rendering must not affect equality")
	}
	b = sample()
	b.Value = Scalar("4000")
	if a.Equal(&b) {
		t.Fatalf("differing values must not be equal")
	}
	b = sample()
	b.ID = u64(257)
	if a.Equal(&b) {
		t.Fatalf("differing ids must not be equal")
	}
	b = sample()
	b.BinarySizeKB = f64(12)
	if a.Equal(&b) {
		t.Fatalf("binary size presence must not be equal")
	}
}

func TestRender(t *testing.T) {
	e := sample()
	want := "Name: Image Width\nShort name: ImageWidth\nTag ID: 256 (0x100)\nTag family: Exif::Main\nTag value: 6000\nTag numerical value: 6000"
	if got := e.Render(); got != want {
		t.Fatalf("got %q", got)
	}
	e.ID = nil
	e.Index = u64(3)
	want = "Name: Image Width\nShort name: ImageWidth\nTag ID: Unknown\nTag family: Exif::Main\nTag value: 6000\nTag numerical value: 6000\nTag index: 3"
	if got := e.Render(); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestByKeyLastWriteWins(t *testing.T) {
	fs := FileEntrySet{Path: "a.jpg", Entries: []Entry{
		{ShortName: "X", Table: Table{Group: "Exif"}, Value: Scalar("first")},
		{ShortName: "X", Table: Table{Group: "Exif"}, Value: Scalar("second")},
	}}
	m := fs.ByKey()
	if len(m) != 1 {
		t.Fatalf("got %d keys", len(m))
	}
	if got := m[Key{ShortName: "X", Table: Table{Group: "Exif"}}].Value.Render(); got != "second" {
		t.Fatalf("got %q", got)
	}
}

package session

import (
	"fmt"
	"testing"

	"exiftui/internal/model"
)

func entry(short, group, val string) model.Entry {
	return model.Entry{
		ShortName: short,
		Name:      short,
		Table:     model.Table{Group: group},
		Value:     model.Scalar(val),
	}
}

func twoFiles() []model.FileEntrySet {
	return []model.FileEntrySet{
		{Path: "a.jpg", Entries: []model.Entry{
			entry("Make", "Exif", "Canon"),
			entry("Model", "Exif", "Canon EOS R5"),
			entry("ISO", "Exif", "100"),
		}},
		{Path: "b.jpg", Entries: []model.Entry{
			entry("Make", "Exif", "Canon"),
			entry("Model", "Exif", "Canon EOS R6"),
			entry("LensID", "Exif", "RF50"),
		}},
	}
}

func manyEntries(n int) []model.FileEntrySet {
	entries := make([]model.Entry, n)
	for i := range entries {
		entries[i] = entry(fmt.Sprintf("Tag%03d", i), "Exif", "v")
	}
	return []model.FileEntrySet{{Path: "a.jpg", Entries: entries}}
}

func TestNewRequiresFiles(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestLoadReplacesFilesAndResets(t *testing.T) {
	s, _ := New(twoFiles())
	s.ToggleCompare()
	s.Cursor = 2
	s.Load(manyEntries(50))
	if s.Compare.Enabled {
		t.Fatalf("compare mode survived a load")
	}
	if s.ActiveIndex() != 0 || s.Cursor != 0 || s.ScrollV != 0 {
		t.Fatalf("view not reset: active=%d cursor=%d scrollV=%d", s.ActiveIndex(), s.Cursor, s.ScrollV)
	}
	if got := s.VisibleCount(); got != 50 {
		t.Fatalf("got %d visible entries", got)
	}
}

func TestCursorSaturates(t *testing.T) {
	s, _ := New(twoFiles())
	s.MoveCursor(-3)
	if s.Cursor != 0 {
		t.Fatalf("got %d", s.Cursor)
	}
	s.MoveCursor(10)
	if s.Cursor != 2 {
		t.Fatalf("got %d", s.Cursor)
	}
}

func TestFilterShrinksAndRecomputeClamps(t *testing.T) {
	s, _ := New(twoFiles())
	s.Cursor = 2
	if err := s.SetFilter("model"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if got := len(s.VisibleEntries()); got != 1 {
		t.Fatalf("got %d visible", got)
	}
	s.Recompute()
	if s.Cursor != 0 {
		t.Fatalf("cursor not clamped: %d", s.Cursor)
	}
}

func TestRecomputeEmptyVisibleSet(t *testing.T) {
	s, _ := New(twoFiles())
	s.Cursor, s.ScrollV = 2, 1
	s.SetFilter("no such tag")
	s.Recompute()
	if s.Cursor != 0 || s.ScrollV != 0 {
		t.Fatalf("got cursor=%d scroll=%d", s.Cursor, s.ScrollV)
	}
	if s.SelectedEntry() != nil {
		t.Fatalf("nothing should be selected")
	}
}

func TestScrollIntoView(t *testing.T) {
	s, _ := New(manyEntries(50))
	s.Cursor = 49
	s.ScrollIntoView(10)
	if s.ScrollV != 40 {
		t.Fatalf("got scroll %d", s.ScrollV)
	}
	s.Cursor = 3
	s.ScrollIntoView(10)
	if s.ScrollV != 3 {
		t.Fatalf("got scroll %d", s.ScrollV)
	}
}

func TestDragClampsScroll(t *testing.T) {
	s, _ := New(manyEntries(50))
	s.Drag(100)
	if s.ScrollV != 45 {
		t.Fatalf("got scroll %d", s.ScrollV)
	}
	if s.Cursor != 49 {
		t.Fatalf("got cursor %d", s.Cursor)
	}
	s.Drag(-100)
	if s.ScrollV != 0 || s.Cursor != 0 {
		t.Fatalf("got scroll=%d cursor=%d", s.ScrollV, s.Cursor)
	}
}

func TestScrollSidewaysFloor(t *testing.T) {
	s, _ := New(twoFiles())
	s.ScrollSideways(-2)
	if s.ScrollH != 0 {
		t.Fatalf("got %d", s.ScrollH)
	}
	s.ScrollSideways(3)
	s.ScrollSideways(-1)
	if s.ScrollH != 2 {
		t.Fatalf("got %d", s.ScrollH)
	}
}

func TestCompareRowsAndSelection(t *testing.T) {
	s, _ := New(twoFiles())
	s.ToggleCompare()
	rows := s.VisibleCompareRows()
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}
	s.NextFile() // active = b.jpg
	s.Cursor = 1 // Model row
	e := s.SelectedEntry()
	if e == nil || e.Value.Render() != "Canon EOS R6" {
		t.Fatalf("got %v", e)
	}
	s.Cursor = 3 // LensID row, absent in a.jpg
	s.PrevFile()
	if s.SelectedEntry() != nil {
		t.Fatalf("absent slot must select nil")
	}
	if rep := s.SelectedRepresentative(); rep == nil || rep.ShortName != "LensID" {
		t.Fatalf("got %v", rep)
	}
}

func TestDiffOnly(t *testing.T) {
	s, _ := New(twoFiles())
	s.ToggleCompare()
	s.ToggleDiffOnly()
	rows := s.VisibleCompareRows()
	// Make agrees; Model, ISO, LensID differ
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	for _, r := range rows {
		if r.Representative.ShortName == "Make" {
			t.Fatalf("agreeing row survived")
		}
	}
}

func TestDiffOnlySelectsOtherFilesValue(t *testing.T) {
	files := []model.FileEntrySet{
		{Path: "a.jpg", Entries: []model.Entry{
			entry("Make", "Exif", "Canon"),
			entry("Model", "Exif", "R5"),
		}},
		{Path: "b.jpg", Entries: []model.Entry{
			entry("Make", "Exif", "Canon"),
			entry("Model", "Exif", "R6"),
		}},
	}
	s, _ := New(files)
	s.ToggleCompare()
	s.ToggleDiffOnly()
	rows := s.VisibleCompareRows()
	if len(rows) != 1 || rows[0].Representative.ShortName != "Model" {
		t.Fatalf("got %d rows", len(rows))
	}
	s.NextFile()
	if e := s.SelectedEntry(); e == nil || e.Value.Render() != "R6" {
		t.Fatalf("got %v", e)
	}
}

func TestCompareFilterMatchesAnySlot(t *testing.T) {
	s, _ := New(twoFiles())
	s.ToggleCompare()
	s.SetFilter("rf50")
	rows := s.VisibleCompareRows()
	if len(rows) != 1 || rows[0].Representative.ShortName != "LensID" {
		t.Fatalf("got %d rows", len(rows))
	}
}

func TestToggleCompareResetsActiveAndView(t *testing.T) {
	s, _ := New(twoFiles())
	s.NextFile()
	s.Cursor, s.ScrollV, s.ScrollH = 2, 1, 4
	s.ToggleCompare()
	if s.ActiveIndex() != 0 {
		t.Fatalf("got active %d", s.ActiveIndex())
	}
	if s.Cursor != 0 || s.ScrollV != 0 || s.ScrollH != 0 {
		t.Fatalf("view not reset")
	}
}

func TestToggleCompareSingleFileNoop(t *testing.T) {
	s, _ := New(manyEntries(3))
	s.ToggleCompare()
	if s.Compare.Enabled {
		t.Fatalf("single file must not enter compare mode")
	}
}

func TestRemoveActiveFile(t *testing.T) {
	s, _ := New(twoFiles())
	s.ToggleCompare()
	if err := s.RemoveActiveFile(); err != ErrCompareActive {
		t.Fatalf("got %v", err)
	}
	s.ToggleCompare()
	s.NextFile()
	if err := s.RemoveActiveFile(); err != nil {
		t.Fatalf("RemoveActiveFile: %v", err)
	}
	if len(s.Files()) != 1 || s.Active().Path != "a.jpg" {
		t.Fatalf("got %v", s.Files())
	}
	if err := s.RemoveActiveFile(); err != ErrLastFile {
		t.Fatalf("got %v", err)
	}
}

func TestRemoveRebuildsCompareRows(t *testing.T) {
	files := append(twoFiles(), model.FileEntrySet{
		Path:    "c.jpg",
		Entries: []model.Entry{entry("Make", "Exif", "Nikon")},
	})
	s, _ := New(files)
	s.NextFile()
	s.NextFile() // c.jpg
	if err := s.RemoveActiveFile(); err != nil {
		t.Fatalf("RemoveActiveFile: %v", err)
	}
	s.ToggleCompare()
	rows := s.VisibleCompareRows()
	for _, r := range rows {
		if len(r.PerFile) != 2 {
			t.Fatalf("rows not rebuilt: %d slots", len(r.PerFile))
		}
	}
}

func TestFileCycling(t *testing.T) {
	s, _ := New(twoFiles())
	s.NextFile()
	if s.Active().Path != "b.jpg" {
		t.Fatalf("got %s", s.Active().Path)
	}
	s.NextFile()
	if s.Active().Path != "a.jpg" {
		t.Fatalf("wrap failed: %s", s.Active().Path)
	}
	s.PrevFile()
	if s.Active().Path != "b.jpg" {
		t.Fatalf("got %s", s.Active().Path)
	}
}

func TestBadExpressionKeepsOldFilter(t *testing.T) {
	s, _ := New(twoFiles())
	if err := s.SetFilter("iso"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if err := s.SetFilter("?value =="); err == nil {
		t.Fatalf("expected an error")
	}
	if got := len(s.VisibleEntries()); got != 1 {
		t.Fatalf("previous filter lost: %d visible", got)
	}
}

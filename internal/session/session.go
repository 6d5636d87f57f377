// Package session holds the browsing state shared by the interface:
// loaded files, the live filter, compare mode, and cursor/viewport
// positions, with all the clamping rules in one place.
package session

import (
	"errors"

	"exiftui/internal/compare"
	"exiftui/internal/filter"
	"exiftui/internal/model"
)

// The vertical scroll never goes past count-scrollMargin rows, so a few
// rows always stay on screen when scrolling to the end.
const scrollMargin = 5

var (
	ErrCompareActive = errors.New("cannot close a file while comparing")
	ErrLastFile      = errors.New("cannot close the last file")
)

// DisplayOptions selects how the entry list renders names and values.
type DisplayOptions struct {
	ShortNames bool
	Numeric    bool
}

// CompareOptions controls the side-by-side view.
type CompareOptions struct {
	Enabled  bool
	DiffOnly bool
}

// Session is not safe for concurrent use; the interface owns it from a
// single goroutine.
type Session struct {
	files []model.FileEntrySet
	rows  []compare.Row

	active   int
	criteria filter.Criteria
	eval     *filter.Evaluator

	Display DisplayOptions
	Compare CompareOptions

	Cursor  int
	ScrollV int
	ScrollH int
}

// New creates a session over already-extracted files. At least one file
// is required.
func New(files []model.FileEntrySet) (*Session, error) {
	if len(files) == 0 {
		return nil, errors.New("no files loaded")
	}
	s := &Session{}
	s.eval, _ = filter.NewEvaluator(filter.Criteria{})
	s.Load(files)
	return s, nil
}

// Load replaces the loaded files wholesale, rebuilding the compare rows
// and putting the session back in single-file view on the first file.
func (s *Session) Load(files []model.FileEntrySet) {
	s.files = files
	s.rows = compare.Build(files)
	s.active = 0
	s.Compare = CompareOptions{}
	s.ResetView()
}

func (s *Session) Files() []model.FileEntrySet { return s.files }
func (s *Session) ActiveIndex() int            { return s.active }
func (s *Session) Active() *model.FileEntrySet { return &s.files[s.active] }
func (s *Session) Filter() filter.Criteria     { return s.criteria }
func (s *Session) MultipleFiles() bool         { return len(s.files) > 1 }

// SetFilter updates the live filter. A malformed expression query is
// returned as an error and the previous evaluator stays in effect.
func (s *Session) SetFilter(query string) error {
	c := filter.Criteria{Query: query}
	eval, err := filter.NewEvaluator(c)
	if err != nil {
		return err
	}
	s.criteria = c
	s.eval = eval
	return nil
}

func (s *Session) ClearFilter() {
	s.criteria = filter.Criteria{}
	s.eval, _ = filter.NewEvaluator(s.criteria)
}

// FilterByFamily replaces the filter with a family-scoped one for the
// given entry's table.
func (s *Session) FilterByFamily(e *model.Entry) {
	if err := s.SetFilter("<<" + e.Table.String() + ">>"); err != nil {
		s.ClearFilter()
	}
}

// VisibleEntries returns the active file's entries that pass the
// filter, in extraction order.
func (s *Session) VisibleEntries() []*model.Entry {
	entries := s.files[s.active].Entries
	out := make([]*model.Entry, 0, len(entries))
	for i := range entries {
		if s.eval.Match(&entries[i], s.criteria) {
			out = append(out, &entries[i])
		}
	}
	return out
}

// VisibleCompareRows returns the compare rows that pass the filter: a
// row stays when any of its per-file entries matches. With DiffOnly set
// rows whose slots all agree are dropped too.
func (s *Session) VisibleCompareRows() []compare.Row {
	out := make([]compare.Row, 0, len(s.rows))
	for _, r := range s.rows {
		if s.Compare.DiffOnly && !r.Differs() {
			continue
		}
		if s.criteria.Query != "" && !s.rowMatches(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Session) rowMatches(r compare.Row) bool {
	for _, e := range r.PerFile {
		if e != nil && s.eval.Match(e, s.criteria) {
			return true
		}
	}
	return false
}

// VisibleCount is the number of rows the cursor can address right now.
func (s *Session) VisibleCount() int {
	if s.Compare.Enabled {
		return len(s.VisibleCompareRows())
	}
	return len(s.VisibleEntries())
}

// SelectedEntry resolves the cursor to an entry. In compare mode it is
// the active file's slot of the selected row, which is nil when that
// file lacks the tag.
func (s *Session) SelectedEntry() *model.Entry {
	if s.Compare.Enabled {
		rows := s.VisibleCompareRows()
		if s.Cursor >= len(rows) {
			return nil
		}
		return rows[s.Cursor].PerFile[s.active]
	}
	entries := s.VisibleEntries()
	if s.Cursor >= len(entries) {
		return nil
	}
	return entries[s.Cursor]
}

// SelectedRepresentative is the name-bearing entry of the selected row;
// outside compare mode it is the same as SelectedEntry.
func (s *Session) SelectedRepresentative() *model.Entry {
	if !s.Compare.Enabled {
		return s.SelectedEntry()
	}
	rows := s.VisibleCompareRows()
	if s.Cursor >= len(rows) {
		return nil
	}
	return rows[s.Cursor].Representative
}

// Recompute clamps the cursor and scroll against the current visible
// set. Call after anything that can shrink it.
func (s *Session) Recompute() {
	count := s.VisibleCount()
	if count == 0 {
		s.Cursor = 0
		s.ScrollV = 0
		return
	}
	if s.Cursor > count-1 {
		s.Cursor = count - 1
	}
	if max := maxScroll(count); s.ScrollV > max {
		s.ScrollV = max
	}
}

// MoveCursor moves the cursor by delta, saturating at both ends.
func (s *Session) MoveCursor(delta int) {
	count := s.VisibleCount()
	s.Cursor += delta
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor > count-1 {
		s.Cursor = count - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// Drag moves the viewport and drags the cursor along, as mouse wheel
// scrolling does.
func (s *Session) Drag(delta int) {
	count := s.VisibleCount()
	s.ScrollV += delta
	if s.ScrollV < 0 {
		s.ScrollV = 0
	}
	if max := maxScroll(count); s.ScrollV > max {
		s.ScrollV = max
	}
	s.MoveCursor(delta)
}

// ScrollSideways shifts the horizontal offset, never below zero.
func (s *Session) ScrollSideways(delta int) {
	s.ScrollH += delta
	if s.ScrollH < 0 {
		s.ScrollH = 0
	}
}

// ScrollIntoView adjusts the vertical scroll so the cursor is inside a
// viewport of the given height.
func (s *Session) ScrollIntoView(height int) {
	if height <= 0 {
		return
	}
	if s.Cursor < s.ScrollV {
		s.ScrollV = s.Cursor
	}
	if s.Cursor >= s.ScrollV+height {
		s.ScrollV = s.Cursor - height + 1
	}
	if max := maxScroll(s.VisibleCount()); s.ScrollV > max {
		s.ScrollV = max
	}
	if s.ScrollV < 0 {
		s.ScrollV = 0
	}
}

func maxScroll(count int) int {
	if count <= scrollMargin {
		return 0
	}
	return count - scrollMargin
}

// NextFile activates the next loaded file, wrapping around.
func (s *Session) NextFile() {
	if !s.MultipleFiles() {
		return
	}
	s.active = (s.active + 1) % len(s.files)
}

// PrevFile activates the previous loaded file, wrapping around.
func (s *Session) PrevFile() {
	if !s.MultipleFiles() {
		return
	}
	s.active = (s.active + len(s.files) - 1) % len(s.files)
}

// RemoveActiveFile closes the active file. Refused while comparing and
// for the last remaining file. The compare rows are rebuilt so a later
// compare sees the reduced set.
func (s *Session) RemoveActiveFile() error {
	if s.Compare.Enabled {
		return ErrCompareActive
	}
	if len(s.files) == 1 {
		return ErrLastFile
	}
	s.files = append(s.files[:s.active], s.files[s.active+1:]...)
	if s.active >= len(s.files) {
		s.active = len(s.files) - 1
	}
	s.rows = compare.Build(s.files)
	s.ResetView()
	return nil
}

// ToggleCompare flips compare mode. It needs at least two files and
// always reactivates the first one.
func (s *Session) ToggleCompare() {
	if !s.MultipleFiles() {
		return
	}
	s.Compare.Enabled = !s.Compare.Enabled
	s.Compare.DiffOnly = false
	s.active = 0
	s.ResetView()
}

// ToggleDiffOnly flips the differences-only restriction of compare mode.
func (s *Session) ToggleDiffOnly() {
	if !s.Compare.Enabled {
		return
	}
	s.Compare.DiffOnly = !s.Compare.DiffOnly
	s.ResetView()
}

// ResetView puts cursor and viewport back at the origin.
func (s *Session) ResetView() {
	s.Cursor = 0
	s.ScrollV = 0
	s.ScrollH = 0
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"exiftui/internal/model"
)

func (m *Model) View() string {
	if m.fatal != nil {
		return ""
	}
	switch m.screen {
	case screenHelp:
		return m.renderHelp()
	case screenRecursePrompt:
		return m.renderRecursePrompt()
	}
	if m.loading || m.sess == nil {
		return fmt.Sprintf("\n %s reading metadata with exiftool...\n", m.spin.View())
	}
	v := m.renderBrowse()
	if m.input == inputSave {
		dimmed := lipgloss.NewStyle().Faint(true).Render(v)
		v = overlay(dimmed, m.renderSaveDialog())
	}
	return v
}

func (m *Model) width() int {
	if m.termWidth > 0 {
		return m.termWidth
	}
	return 80
}

func (m *Model) height() int {
	if m.termHeight > 0 {
		return m.termHeight
	}
	return 24
}

// listHeight is the number of entry rows the list area can show.
func (m *Model) listHeight() int {
	h := m.height() - 4 // header, column titles, status, hints
	if m.sess != nil && m.sess.MultipleFiles() && !m.sess.Compare.Enabled {
		h--
	}
	if m.filterLineVisible() {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) filterLineVisible() bool {
	return m.input == inputFilter || (m.sess != nil && m.sess.Filter().Query != "")
}

func (m *Model) renderBrowse() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.sess.MultipleFiles() && !m.sess.Compare.Enabled {
		b.WriteString(m.renderTabs())
		b.WriteString("\n")
	}
	if m.filterLineVisible() {
		b.WriteString(m.renderFilterLine())
		b.WriteString("\n")
	}

	var list string
	if m.sess.Compare.Enabled {
		list = m.renderCompareList()
	} else {
		list = m.renderEntryList()
	}
	if m.showDetails {
		detailW := m.width() / 3
		listW := m.width() - detailW
		list = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(listW).MaxWidth(listW).Render(list),
			lipgloss.NewStyle().Width(detailW).MaxWidth(detailW).Render(m.renderDetails(detailW)))
	}
	b.WriteString(list)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHints())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := m.sess.Active().Path
	if m.sess.Compare.Enabled {
		title = "Compare Mode"
		if m.sess.Compare.DiffOnly {
			title = "Compare Mode [differences only]"
		}
	}
	w := m.width()
	if len(title) > w-2 && w > 5 {
		title = "..." + title[len(title)-(w-5):]
	}
	return m.styles.Header.Width(w).Render(" " + title)
}

func (m *Model) renderTabs() string {
	files := m.sess.Files()
	w := m.width() / len(files)
	if w < 8 {
		return m.styles.Warning.Render("Too many files to show tabs, <TAB> can still be used")
	}
	segs := make([]string, 0, len(files))
	for i, f := range files {
		name := f.Path
		if len(name) > w-3 {
			name = "*" + name[len(name)-(w-4):]
		}
		st := m.styles.TabInactive
		if i == m.sess.ActiveIndex() {
			st = m.styles.TabActive
		}
		segs = append(segs, st.Width(w).Render(" "+name))
	}
	return strings.Join(segs, "")
}

func (m *Model) renderFilterLine() string {
	if m.input == inputFilter {
		return " Filter: " + m.filterInput.View()
	}
	return " Filter: " + m.sess.Filter().Query + m.styles.Hint.Render("    <f> edit, <esc> while editing clears")
}

func (m *Model) columnTitles(keyW int) string {
	key := " Tag [Detailed] "
	if m.sess.Display.ShortNames {
		key = " Tag [Short] "
	}
	val := " Value [Readable] "
	if m.sess.Display.Numeric {
		val = " Value [Numerical] "
	}
	return m.styles.Border.Render(padTo(key, keyW) + "| " + val)
}

// entryRowStyle picks the base style the original viewer used: warnings
// yellow, errors red, binary payloads green.
func (m *Model) entryRowStyle(e *model.Entry) lipgloss.Style {
	low := strings.ToLower(e.ShortName)
	switch {
	case e.BinarySizeKB != nil:
		return m.styles.Binary
	case strings.Contains(low, "error"):
		return m.styles.Error
	case strings.Contains(low, "warning"):
		return m.styles.Warning
	}
	return lipgloss.NewStyle()
}

func (m *Model) entryKey(e *model.Entry) string {
	if m.sess.Display.ShortNames {
		return e.ShortName
	}
	return e.Name
}

func (m *Model) entryValue(e *model.Entry) string {
	if e.BinarySizeKB != nil {
		return fmt.Sprintf("%s binary data; Can be extracted", humanize.IBytes(uint64(*e.BinarySizeKB*1024)))
	}
	if m.sess.Display.Numeric && e.Num != nil {
		return e.Num.Render()
	}
	return e.Value.Render()
}

func (m *Model) renderEntryList() string {
	entries := m.sess.VisibleEntries()
	height := m.listHeight()
	keyW := m.listWidth() * 4 / 10
	valW := m.listWidth() - keyW - 2

	var b strings.Builder
	b.WriteString(m.columnTitles(keyW))
	b.WriteString("\n")
	for row := 0; row < height; row++ {
		i := m.sess.ScrollV + row
		if i >= len(entries) {
			b.WriteString("\n")
			continue
		}
		e := entries[i]
		line := padTo(cutString(m.entryKey(e), keyW-1, m.sess.ScrollH), keyW) + "| " +
			padTo(cutString(m.entryValue(e), valW, m.sess.ScrollH), valW)
		st := m.entryRowStyle(e)
		if i == m.sess.Cursor {
			st = m.styles.Selected
		}
		b.WriteString(st.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *Model) renderCompareList() string {
	rows := m.sess.VisibleCompareRows()
	files := m.sess.Files()
	height := m.listHeight() - 1 // file labels
	if height < 1 {
		height = 1
	}
	// key column gets one share, every file column two
	shares := 1 + 2*len(files)
	keyW := m.listWidth() / shares
	valW := 2 * m.listWidth() / shares

	var b strings.Builder
	b.WriteString(m.columnTitles(keyW))
	b.WriteString("\n")
	for row := 0; row < height; row++ {
		i := m.sess.ScrollV + row
		if i >= len(rows) {
			b.WriteString("\n")
			continue
		}
		r := rows[i]
		st := m.entryRowStyle(r.Representative)
		if i == m.sess.Cursor {
			st = m.styles.Selected
		}
		cells := make([]string, 0, len(files)+1)
		cells = append(cells, padTo(cutString(m.entryKey(r.Representative), keyW-1, m.sess.ScrollH), keyW))
		for _, e := range r.PerFile {
			v := ""
			if e != nil {
				v = m.entryValue(e)
			}
			cells = append(cells, padTo(cutString(v, valW-2, m.sess.ScrollH), valW-2))
		}
		b.WriteString(st.Render(strings.Join(cells, "| ")))
		b.WriteString("\n")
	}
	b.WriteString(m.renderCompareFileLabels(keyW, valW))
	return b.String()
}

func (m *Model) renderCompareFileLabels(keyW, valW int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", keyW))
	for i, f := range m.sess.Files() {
		name := f.Path
		if len(name) > valW-2 {
			name = "*" + name[len(name)-(valW-3):]
		}
		st := m.styles.Hint
		if i == m.sess.ActiveIndex() {
			st = m.styles.FileActive
		}
		b.WriteString("| ")
		b.WriteString(st.Render(padTo(name, valW-2)))
	}
	return b.String()
}

func (m *Model) listWidth() int {
	if m.showDetails {
		return m.width() - m.width()/3
	}
	return m.width()
}

func (m *Model) renderDetails(width int) string {
	e := m.sess.SelectedEntry()
	if e == nil {
		e = m.sess.SelectedRepresentative()
	}
	if e == nil {
		return m.styles.Hint.Render(" Nothing selected")
	}
	id := "[Unknown]"
	if e.ID != nil {
		id = fmt.Sprintf("%d (0x%X)", *e.ID, *e.ID)
	}
	lines := []string{
		m.styles.PopupTitle.Render(" Details [" + e.ShortName + "]"),
		" Detailed name: " + e.Name,
		" Tag ID: " + id,
		" Tag family: " + e.Table.String() + m.styles.Warning.Render("  <F> filter by family"),
		" " + clipLong("Value: "+e.Value.Render(), width*5, "... too long, <x> to copy"),
		" " + clipLong("Numerical value: "+e.NumOrValue().Render(), width*5, "... too long, <X> to copy"),
	}
	if e.Instance != "" {
		lines = append(lines, " Instance: "+e.Instance)
	}
	if e.Index != nil {
		lines = append(lines, fmt.Sprintf(" Index: %d", *e.Index))
	}
	lines = append(lines, "", m.styles.Warning.Render(" <C> copy entry to clipboard"))
	if e.BinarySizeKB != nil {
		lines = append(lines, m.styles.Warning.Render(" <b> extract binary data"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	if m.statusMsg != "" {
		if m.statusErr {
			return m.styles.StatusErr.Render(" " + m.statusMsg)
		}
		return m.styles.StatusOK.Render(" " + m.statusMsg)
	}
	pos := ""
	if count := m.sess.VisibleCount(); count > 0 {
		pos = fmt.Sprintf("entry %d/%d", m.sess.Cursor+1, count)
	} else {
		pos = "no entries match"
	}
	return m.styles.Status.Render(" " + pos)
}

func (m *Model) renderHints() string {
	if m.input == inputFilter {
		return m.styles.Hint.Render(" <enter> apply  <esc> discard  |  plain text, <<family>>, or ?expression")
	}
	hints := " <up/down/wheel> scroll  <f> filter  <enter> details  <h> help  <q> quit"
	if m.sess.MultipleFiles() {
		hints += "  <tab> next file  <c> compare"
	}
	return m.styles.Hint.Render(hints)
}

func (m *Model) renderSaveDialog() string {
	nameLabel := " File name"
	extLabel := "Extension "
	if m.editingName {
		nameLabel = m.styles.PopupTitle.Render(nameLabel)
	} else {
		extLabel = m.styles.PopupTitle.Render(extLabel)
	}
	hint := m.saveHint
	if m.saveErr {
		hint = m.styles.StatusErr.Render(hint)
	}
	body := strings.Join([]string{
		m.styles.PopupTitle.Render("Save binary data"),
		"",
		nameLabel + ": " + m.nameInput.View(),
		extLabel + ": " + m.extInput.View(),
		"",
		hint,
		m.styles.Hint.Render("<enter> save  <esc> discard  <tab> switch focus"),
	}, "\n")
	box := m.styles.PopupBox.Render(body)
	return lipgloss.Place(m.width(), m.height(), lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderRecursePrompt() string {
	body := strings.Join([]string{
		"You provided one or more folders as input.",
		"Read them recursively?",
		"",
		m.styles.StatusOK.Render("<y/enter>  YES"),
		m.styles.StatusErr.Render("<n/esc>    NO"),
		"",
		m.styles.Hint.Render("<q> quit"),
	}, "\n")
	return lipgloss.Place(m.width(), m.height(), lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) renderHelp() string {
	lines := []string{
		m.styles.PopupTitle.Render(" General controls"),
		" <up/down/left/right/wheel/space>  scroll      <f>  filter by tags and values",
		" <enter>  toggle details panel                 <s>  toggle short tag names",
		" <n>  toggle numerical tag values              <b>  save binary data from tag",
		" <e>  export the current view as CSV           <h>  show this text",
		" <q>  quit",
		"",
		m.styles.PopupTitle.Render(" Extra controls"),
		" <x>  copy tag value to clipboard              <X>  copy numerical value",
		" <C>  copy all entry data to clipboard",
		" <F>  filter by the selected tag's family",
		" <w>  open the exiftool web page for the selected tag's family",
		"",
		m.styles.PopupTitle.Render(" Multiple files"),
		" <tab>/<shift+tab>  switch file                <W>  close the current file",
		" <c>  toggle side-by-side compare mode",
		" <d>  in compare mode, show only rows that differ",
		"",
		" Switching files works in compare mode too; it controls which file's",
		" values are inspected, copied and extracted.",
		"",
		m.styles.Hint.Render(" <enter/esc/q> go back"),
	}
	return strings.Join(lines, "\n")
}

func clipLong(s string, max int, note string) string {
	if max > 0 && len(s) > max {
		return s[:max*3/5] + " " + note
	}
	return s
}

func padTo(s string, w int) string {
	if w <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) >= w {
		return string(rs[:w])
	}
	return s + strings.Repeat(" ", w-len(rs))
}

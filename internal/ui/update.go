package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"exiftui/internal/export"
	"exiftui/internal/util/logx"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.refreshView()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loadedMsg:
		return m, m.applyLoaded(msg)

	case savedMsg:
		if msg.err != nil {
			m.saveHint, m.saveErr = msg.err.Error(), true
			return m, nil
		}
		m.input = inputNone
		m.status(fmt.Sprintf("Saved binary data to %s", msg.path), false)
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status("Export failed: "+msg.err.Error(), true)
		} else {
			m.status("Exported view to "+msg.path, false)
		}
		return m, nil

	case tea.MouseMsg:
		if m.screen != screenBrowse || m.input != inputNone || m.sess == nil {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.sess.Drag(-1)
		case tea.MouseButtonWheelDown:
			m.sess.Drag(1)
		}
		m.refreshView()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case screenRecursePrompt:
		return m.handleRecursePromptKey(msg)
	case screenHelp:
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || keyMatches(msg, m.keymap.Quit) {
			m.screen = screenBrowse
		}
		return m, nil
	}

	if m.loading || m.sess == nil {
		if keyMatches(msg, m.keymap.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.input {
	case inputFilter:
		return m.handleFilterKey(msg)
	case inputSave:
		return m.handleSaveKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m *Model) handleRecursePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keymap.Quit):
		return m, tea.Quit
	case msg.Type == tea.KeyEnter || msg.String() == "y":
		m.loading = true
		m.screen = screenBrowse
		return m, tea.Batch(m.loadCmd(true), m.spin.Tick)
	case msg.Type == tea.KeyEsc || msg.String() == "n":
		m.loading = true
		m.screen = screenBrowse
		return m, tea.Batch(m.loadCmd(false), m.spin.Tick)
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.input = inputNone
		m.filterInput.Blur()
		m.refreshView()
		return m, nil
	case tea.KeyEsc:
		m.input = inputNone
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.sess.ClearFilter()
		m.sess.ResetView()
		m.refreshView()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if err := m.sess.SetFilter(m.filterInput.Value()); err != nil {
		m.status("Filter: "+err.Error(), true)
	} else {
		m.statusMsg = ""
	}
	m.refreshView()
	return m, cmd
}

func (m *Model) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input = inputNone
		return m, nil
	case tea.KeyTab:
		m.editingName = !m.editingName
		if m.editingName {
			m.nameInput.Focus()
			m.extInput.Blur()
		} else {
			m.extInput.Focus()
			m.nameInput.Blur()
		}
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		ext := strings.TrimSpace(m.extInput.Value())
		entry := m.sess.SelectedEntry()
		if entry == nil || entry.BinarySizeKB == nil {
			m.saveHint, m.saveErr = "Selected entry does not contain any binary data!", true
			return m, nil
		}
		if name == "" {
			m.saveHint, m.saveErr = export.ErrEmptyName.Error(), true
			return m, nil
		}
		if strings.TrimPrefix(ext, ".") == "" {
			m.saveHint, m.saveErr = export.ErrEmptyExt.Error(), true
			return m, nil
		}
		return m, m.saveBinaryCmd(m.sess.Active().Path, entry.ShortName, name, ext)
	}
	var cmd tea.Cmd
	if m.editingName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.extInput, cmd = m.extInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	switch {
	case keyMatches(msg, km.Quit):
		return m, tea.Quit

	case keyMatches(msg, km.Help):
		m.screen = screenHelp

	case msg.Type == tea.KeyUp:
		m.sess.MoveCursor(-1)
	case msg.Type == tea.KeyDown:
		m.sess.MoveCursor(1)
	case msg.Type == tea.KeyLeft:
		m.sess.ScrollSideways(-1)
	case msg.Type == tea.KeyRight:
		m.sess.ScrollSideways(1)
	case keyMatches(msg, km.PageDown):
		m.sess.Drag(4)

	case keyMatches(msg, km.Details):
		m.showDetails = !m.showDetails
	case msg.Type == tea.KeyEsc && m.showDetails:
		m.showDetails = false

	case keyMatches(msg, km.ShortNames):
		m.sess.Display.ShortNames = !m.sess.Display.ShortNames
	case keyMatches(msg, km.Numeric):
		m.sess.Display.Numeric = !m.sess.Display.Numeric

	case keyMatches(msg, km.Filter):
		m.input = inputFilter
		m.filterInput.SetValue(m.sess.Filter().Query)
		m.filterInput.CursorEnd()
		m.filterInput.Focus()
		m.sess.ResetView()

	case keyMatches(msg, km.FamilyFilter):
		if e := m.sess.SelectedEntry(); e != nil {
			m.sess.FilterByFamily(e)
			m.filterInput.SetValue(m.sess.Filter().Query)
			m.sess.ResetView()
		}

	case keyMatches(msg, km.CopyValue):
		if e := m.sess.SelectedEntry(); e != nil {
			copyToClipboard(e.Value.Render())
			m.status("Copied value to clipboard", false)
		}
	case keyMatches(msg, km.CopyNum):
		if e := m.sess.SelectedEntry(); e != nil {
			copyToClipboard(e.NumOrValue().Render())
			m.status("Copied numerical value to clipboard", false)
		}
	case keyMatches(msg, km.CopyEntry):
		if e := m.sess.SelectedEntry(); e != nil {
			copyToClipboard(e.Render())
			m.status("Copied entry data to clipboard", false)
		}

	case keyMatches(msg, km.WebPage):
		if e := m.sess.SelectedRepresentative(); e != nil {
			openURL(tagDocURL(e.Table.Group))
		}

	case keyMatches(msg, km.SaveBinary):
		e := m.sess.SelectedEntry()
		if e == nil || e.BinarySizeKB == nil {
			m.status("Selected entry does not contain any binary data!", true)
			break
		}
		m.openSaveDialog()

	case keyMatches(msg, km.Export):
		return m, m.exportCmd()

	case keyMatches(msg, km.NextFile):
		m.sess.NextFile()
	case keyMatches(msg, km.PrevFile):
		m.sess.PrevFile()

	case keyMatches(msg, km.CloseFile):
		if err := m.sess.RemoveActiveFile(); err != nil {
			m.status(err.Error(), true)
		}

	case keyMatches(msg, km.Compare):
		m.sess.ToggleCompare()
	case keyMatches(msg, km.DiffOnly):
		m.sess.ToggleDiffOnly()
	}

	m.refreshView()
	return m, nil
}

func (m *Model) openSaveDialog() {
	m.input = inputSave
	m.editingName = true
	m.nameInput.SetValue("")
	m.nameInput.Focus()
	m.extInput.SetValue("jpeg")
	m.extInput.Blur()
	m.saveHint = fmt.Sprintf("File will be saved in %s. You probably want a .jpeg.", m.saveDir())
	m.saveErr = false
}

func (m *Model) saveDir() string {
	if m.cfg.SaveDir != "" {
		return m.cfg.SaveDir
	}
	return export.DefaultBinaryDir()
}

func (m *Model) saveBinaryCmd(filePath, shortName, name, ext string) tea.Cmd {
	runner, ctx, dir := m.runner, m.ctx, m.saveDir()
	return func() tea.Msg {
		data, err := runner.ExtractBinary(ctx, filePath, shortName)
		if err != nil {
			return savedMsg{err: err}
		}
		path, err := export.SaveBinary(dir, name, ext, data)
		if err != nil {
			return savedMsg{err: err}
		}
		logx.Infof("saved %d bytes of %s to %s", len(data), shortName, path)
		return savedMsg{path: path}
	}
}

func (m *Model) exportCmd() tea.Cmd {
	entries := m.sess.VisibleEntries()
	source := m.sess.Active().Path
	path := filepath.Join(m.saveDir(), fmt.Sprintf("exiftui-%s.csv", time.Now().Format("20060102-150405")))
	return func() tea.Msg {
		if err := export.ToCSV(path, source, entries); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

// refreshView clamps cursor and viewport after any state change.
func (m *Model) refreshView() {
	if m.sess == nil {
		return
	}
	m.sess.Recompute()
	m.sess.ScrollIntoView(m.listHeight())
}

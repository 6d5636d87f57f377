package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"exiftui/internal/config"
	"exiftui/internal/exiftool"
	"exiftui/internal/model"
	"exiftui/internal/session"
)

type screen int

const (
	screenBrowse screen = iota
	screenHelp
	screenRecursePrompt
)

type inputMode int

const (
	inputNone inputMode = iota
	inputFilter
	inputSave
)

type Model struct {
	ctx    context.Context
	cfg    *config.Config
	runner exiftool.Runner

	sess    *session.Session
	loading bool

	screen screen
	input  inputMode

	filterInput textinput.Model
	nameInput   textinput.Model
	extInput    textinput.Model
	editingName bool
	saveHint    string
	saveErr     bool

	showDetails bool

	spin   spinner.Model
	styles Styles
	keymap KeyMap

	termWidth  int
	termHeight int

	statusMsg string
	statusErr bool

	// fatal holds the error Run returns after the program quits.
	fatal error
}

type loadedMsg struct {
	files []model.FileEntrySet
	err   error
}

type savedMsg struct {
	path string
	err  error
}

type exportedMsg struct {
	path string
	err  error
}

func (m *Model) status(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"exiftui/internal/config"
	"exiftui/internal/exiftool"
	"exiftui/internal/session"
	"exiftui/internal/util/logx"
)

func initialModel(ctx context.Context, cfg *config.Config) *Model {
	m := &Model{
		ctx:    ctx,
		cfg:    cfg,
		runner: exiftool.Runner{Bin: cfg.ExiftoolBin},
		styles: NewStyles(cfg.Theme == config.ThemeDark),
		keymap: DefaultKeyMap(),
		spin:   spinner.New(),
	}
	m.spin.Spinner = spinner.Dot
	m.filterInput = textinput.New()
	m.filterInput.Prompt = ""
	m.filterInput.CharLimit = 256
	m.nameInput = textinput.New()
	m.nameInput.Prompt = ""
	m.nameInput.CharLimit = 128
	m.extInput = textinput.New()
	m.extInput.Prompt = ""
	m.extInput.CharLimit = 16

	// Only ask about recursion when it would change the result and the
	// flag did not decide already.
	if !cfg.Demo && !cfg.Recursive && exiftool.AnyNestedDir(cfg.Paths) {
		m.screen = screenRecursePrompt
	} else {
		m.loading = true
	}
	return m
}

// Run drives the interface until quit and returns the error that ended
// it, if any.
func Run(ctx context.Context, cfg *config.Config) error {
	m := initialModel(ctx, cfg)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	out, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := out.(*Model); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	if m.screen == screenRecursePrompt {
		return nil
	}
	return tea.Batch(m.loadCmd(m.cfg.Recursive), m.spin.Tick)
}

func (m *Model) loadCmd(recursive bool) tea.Cmd {
	cfg, runner, ctx := m.cfg, m.runner, m.ctx
	return func() tea.Msg {
		if cfg.Demo {
			files, err := exiftool.Demo()
			return loadedMsg{files: files, err: err}
		}
		files, err := runner.Run(ctx, cfg.Paths, recursive)
		return loadedMsg{files: files, err: err}
	}
}

func (m *Model) applyLoaded(msg loadedMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, exiftool.ErrNoData) {
			m.fatal = errors.New("exiftool found no metadata in the given paths")
		} else {
			m.fatal = msg.err
		}
		return tea.Quit
	}
	sess, err := session.New(msg.files)
	if err != nil {
		m.fatal = err
		return tea.Quit
	}
	m.sess = sess
	m.screen = screenBrowse
	logx.Infof("loaded %d file(s)", len(msg.files))
	return nil
}

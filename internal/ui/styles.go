package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Selected    lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Binary      lipgloss.Style
	Status      lipgloss.Style
	StatusOK    lipgloss.Style
	StatusErr   lipgloss.Style
	Hint        lipgloss.Style
	Border      lipgloss.Style
	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style
	FileActive  lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("252"))
		s.TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238"))
		s.TabInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Hint = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.Border = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	} else {
		s.Header = lipgloss.NewStyle().Bold(true).Reverse(true)
		s.TabActive = lipgloss.NewStyle().Bold(true).Reverse(true)
		s.TabInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Hint = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Border = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
	}
	s.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255"))
	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	s.Binary = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
	s.StatusOK = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	s.StatusErr = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	s.FileActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42"))
	return s
}

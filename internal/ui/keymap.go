package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Quit         tea.Key
	Help         tea.Key
	Details      tea.Key
	Filter       tea.Key
	FamilyFilter tea.Key
	ShortNames   tea.Key
	Numeric      tea.Key
	CopyValue    tea.Key
	CopyNum      tea.Key
	CopyEntry    tea.Key
	SaveBinary   tea.Key
	Export       tea.Key
	WebPage      tea.Key
	NextFile     tea.Key
	PrevFile     tea.Key
	CloseFile    tea.Key
	Compare      tea.Key
	DiffOnly     tea.Key
	PageDown     tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
		Help:         tea.Key{Type: tea.KeyRunes, Runes: []rune{'h'}},
		Details:      tea.Key{Type: tea.KeyEnter},
		Filter:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'f'}},
		FamilyFilter: tea.Key{Type: tea.KeyRunes, Runes: []rune{'F'}},
		ShortNames:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'s'}},
		Numeric:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'n'}},
		CopyValue:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'x'}},
		CopyNum:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'X'}},
		CopyEntry:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'C'}},
		SaveBinary:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'b'}},
		Export:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'e'}},
		WebPage:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'w'}},
		NextFile:     tea.Key{Type: tea.KeyTab},
		PrevFile:     tea.Key{Type: tea.KeyShiftTab},
		CloseFile:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'W'}},
		Compare:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'c'}},
		DiffOnly:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'d'}},
		PageDown:     tea.Key{Type: tea.KeyRunes, Runes: []rune{' '}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}

// Package tui shows the fretboard in a terminal and plays it from the
// keyboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/player"
	"github.com/jsphweid/fretboard/schedule"
	"github.com/jsphweid/fretboard/synth"
	"github.com/jsphweid/fretboard/util"
)

// refresh is how often the model redraws so pulses started on timer
// goroutines show up.
const refresh = 50 * time.Millisecond

var (
	chordKeys  = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}
	stringKeys = []string{"a", "s", "d", "f", "g", "h"}
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pluckedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(0, 1)
)

type tickMsg time.Time

// Model is the terminal fretboard. Its Board is the view the renderer and
// synthesizer draw on.
type Model struct {
	*fretboard.Board
	session *player.Session
	chords  []model.Chord
}

var _ tea.Model = (*Model)(nil)

func New(catalog *chord.Catalog, factory synth.EngineFactory, scheduler schedule.Scheduler) *Model {
	board := fretboard.NewBoard(constants.MaxFret)
	synthesizer := synth.New(factory, scheduler, synth.WithView(board))
	return &Model{
		Board:   board,
		session: player.NewSession(catalog, fretboard.NewRenderer(board), synthesizer),
		chords:  catalog.All(),
	}
}

func (m *Model) Session() *player.Session {
	return m.session
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "c":
		m.session.Clear()
		m.SetLabel("")
		return nil
	}
	for i, k := range chordKeys {
		if k == key && i < len(m.chords) {
			m.session.SelectChord(m.chords[i].ID)
			return nil
		}
	}
	for i, k := range stringKeys {
		if k == key {
			m.session.PlayString(i)
			return nil
		}
	}
	return nil
}

func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("fretboard"))
	if label := m.Label(); label != "" {
		sb.WriteString("  ")
		sb.WriteString(labelStyle.Render(label))
	}
	sb.WriteString("\n\n")

	var rows []string
	for s := constants.NumStrings - 1; s >= 0; s-- {
		rows = append(rows, m.row(s))
	}
	sb.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	sb.WriteString("\n")
	sb.WriteString(m.help())
	return sb.String()
}

func (m *Model) row(s int) string {
	var sb strings.Builder
	name := fmt.Sprintf("%s %s ", stringKeys[s], constants.StringNames[s])
	if m.Pulsing(s) {
		sb.WriteString(pluckedStyle.Render(name))
	} else {
		sb.WriteString(name)
	}
	for f := 0; f <= m.Frets(); f++ {
		status, _ := m.Marker(s, f)
		sb.WriteString(cell(f, status))
	}
	return sb.String()
}

func cell(fret int, status model.MarkerStatus) string {
	if fret == 0 {
		switch status {
		case model.MarkerMuted:
			return mutedStyle.Render("x") + "‖"
		case model.MarkerActive:
			return activeStyle.Render("o") + "‖"
		}
		return " ‖"
	}
	if status == model.MarkerActive {
		return activeStyle.Render("-●-") + "|"
	}
	return inactiveStyle.Render("---") + "|"
}

func (m *Model) help() string {
	var names []string
	for i := 0; i < util.Min(len(m.chords), len(chordKeys)); i++ {
		names = append(names, chordKeys[i]+" "+m.chords[i].ID)
	}
	return helpStyle.Render(strings.Join(names, "  ") + "\na-h pluck  c clear  q quit")
}

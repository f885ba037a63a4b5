// Package tui provides the Bubble Tea integration for dotcraft.
// It handles the terminal UI loop, input mapping and the menu, game and
// records screens, locally and over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to refresh the timer display. ID identifies the game
// that started the loop so a stale loop dies when its game is left.
type TickMsg struct {
	ID   int
	Time time.Time
}

var tickIDs atomic.Int64

func nextTickID() int {
	return int(tickIDs.Add(1))
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate, id int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 10
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

package main

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/memkit/mem"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) ||
				key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			// Ignore other keys while help is showing
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.load.setPaused(m.paused)
		case key.Matches(msg, m.keys.MoreWorkers):
			m.load.setWorkers(m.load.workers() + 1)
		case key.Matches(msg, m.keys.FewerWorkers):
			m.load.setWorkers(m.load.workers() - 1)
		case key.Matches(msg, m.keys.Reset):
			m.rates = nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		s := mem.ReadStats()
		if !m.sampledAt.IsZero() {
			if dt := now.Sub(m.sampledAt).Seconds(); dt > 0 {
				rate := float64(s.AllocCalls-m.stats.AllocCalls) / dt
				m.rates = append(m.rates, rate)
				if len(m.rates) > historyLen {
					m.rates = m.rates[len(m.rates)-historyLen:]
				}
			}
		}
		m.stats = s
		m.sampledAt = now
		return m, tick()
	}
	return m, nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// View renders the entire UI
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := headerStyle.Render("memtop — live allocation failure monitor")
	gauge := m.renderBudget()
	counters := m.renderCounters()
	spark := m.renderRates()
	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left, header, gauge, counters, spark, status)
}

// renderBudget draws the budget usage gauge.
func (m Model) renderBudget() string {
	used := m.budget - m.limited.Remaining()
	if used < 0 {
		used = 0
	}
	frac := float64(used) / float64(m.budget)

	width := m.width - 10
	if width < 10 {
		width = 10
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}

	fill := gaugeFillStyle
	if frac > 0.85 {
		fill = gaugeHotStyle
	}
	bar := fill.Render(strings.Repeat("█", filled)) +
		gaugeEmptyStyle.Render(strings.Repeat("░", width-filled))

	line := fmt.Sprintf("%s %3.0f%%  %s / %s",
		bar, frac*100, humanize.IBytes(uint64(used)), humanize.IBytes(uint64(m.budget)))
	return paneStyle.Render(paneTitleStyle.Render("Budget") + "\n" + line)
}

// renderCounters draws the shim counter table.
func (m Model) renderCounters() string {
	s := m.stats
	rows := []struct {
		label string
		value string
		alert bool
	}{
		{"Alloc calls", humanize.Comma(s.AllocCalls), false},
		{"Free calls", humanize.Comma(s.FreeCalls), false},
		{"Bytes allocated", humanize.IBytes(uint64(s.BytesAllocated)), false},
		{"Bytes freed", humanize.IBytes(uint64(s.BytesFreed)), false},
		{"Boundaries entered", humanize.Comma(s.Catches), false},
		{"Failed requests", humanize.Comma(s.AllocFailures), false},
		{"Recovered at boundary", humanize.Comma(s.Recovered), false},
		{"Emergency slot hits", humanize.Comma(s.ReserveHits), false},
		{"Double faults", humanize.Comma(s.DoubleFaults), s.DoubleFaults > 0},
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Shim Counters"))
	for _, row := range rows {
		vs := valueStyle
		if row.alert {
			vs = alertValueStyle
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-24s", row.label)))
		b.WriteString(vs.Render(row.value))
	}
	return paneStyle.Render(b.String())
}

// renderRates draws the allocation rate sparkline.
func (m Model) renderRates() string {
	width := m.width - 6
	if width < 10 {
		width = 10
	}
	rates := m.rates
	if len(rates) > width {
		rates = rates[len(rates)-width:]
	}

	max := 0.0
	for _, r := range rates {
		if r > max {
			max = r
		}
	}

	var spark strings.Builder
	for _, r := range rates {
		idx := 0
		if max > 0 {
			idx = int(r / max * float64(len(sparkLevels)-1))
		}
		spark.WriteRune(sparkLevels[idx])
	}

	current := 0.0
	if len(m.rates) > 0 {
		current = m.rates[len(m.rates)-1]
	}
	title := fmt.Sprintf("%s  %.0f allocs/sec",
		paneTitleStyle.Render("Alloc Rate"), current)
	return paneStyle.Render(title + "\n" + sparkStyle.Render(spark.String()))
}

// renderStatus draws the bottom status bar.
func (m Model) renderStatus() string {
	state := "running"
	if m.paused {
		state = pausedStyle.Render("PAUSED")
	}
	left := fmt.Sprintf("workers: %d  |  %s", m.load.workers(), state)
	hints := helpStyle.Render("p pause  +/- workers  r reset  ? help  q quit")
	return statusStyle.Render(left + "   " + hints)
}

// renderHelpOverlay draws the key help centered on a blank screen.
func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("memtop keys"))
	b.WriteString("\n\n")
	binds := []key.Binding{
		m.keys.Pause, m.keys.MoreWorkers, m.keys.FewerWorkers,
		m.keys.Reset, m.keys.Help, m.keys.Quit,
	}
	for _, bind := range binds {
		h := bind.Help()
		fmt.Fprintf(&b, "%-10s %s\n", h.Key, h.Desc)
	}
	box := helpBoxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

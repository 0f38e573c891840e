package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chartstack/pkg/chart"
)

// Player styles
var (
	playerBarStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	playerLabelStyle = lipgloss.NewStyle().Foreground(colorWhite)
	playerDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// playerModel - Terminal chart playback
// =============================================================================

// playerModel plays a sequence of chart geometries as a text bar chart.
// A single-frame sequence renders as a static chart.
type playerModel struct {
	title   string
	frames  []*chart.Geometry
	delay   time.Duration
	index   int
	playing bool
	gen     int
	width   int
	height  int
}

// playerTickMsg advances playback by one frame. The generation tag discards
// ticks scheduled before the last pause or seek.
type playerTickMsg struct {
	gen int
}

// newPlayerModel creates a player over the given frame sequence.
func newPlayerModel(title string, frames []*chart.Geometry, delay time.Duration) playerModel {
	if delay <= 0 {
		delay = 33 * time.Millisecond
	}
	return playerModel{
		title:   title,
		frames:  frames,
		delay:   delay,
		playing: len(frames) > 1,
		width:   80,
		height:  24,
	}
}

func (m playerModel) Init() tea.Cmd {
	return m.tick()
}

// tick schedules the next frame advance while playback is running.
func (m playerModel) tick() tea.Cmd {
	if !m.playing {
		return nil
	}
	gen := m.gen
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return playerTickMsg{gen: gen}
	})
}

func (m playerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if len(m.frames) > 1 {
				m.playing = !m.playing
				m.gen++
			}
			return m, m.tick()
		case "left", "h":
			m.playing = false
			m.gen++
			if m.index > 0 {
				m.index--
			}
		case "right", "l":
			m.playing = false
			m.gen++
			if m.index < len(m.frames)-1 {
				m.index++
			}
		case "r":
			m.index = 0
			m.playing = len(m.frames) > 1
			m.gen++
			return m, m.tick()
		}
	case playerTickMsg:
		if !m.playing || msg.gen != m.gen {
			return m, nil
		}
		m.index = (m.index + 1) % len(m.frames)
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m playerModel) View() string {
	var b strings.Builder

	header := StyleTitle.Render(m.title)
	if len(m.frames) > 1 {
		status := StyleSuccess.Render("▶")
		if !m.playing {
			status = StyleWarning.Render("⏸")
		}
		header = StyleTitle.Render(fmt.Sprintf("%s  frame %d/%d", m.title, m.index+1, len(m.frames))) + "  " + status
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	maxRows := m.height - 6
	if maxRows < 3 {
		maxRows = 3
	}
	b.WriteString(renderTextChart(m.frames[m.index], m.width, maxRows))

	b.WriteString("\n")
	help := "q quit"
	if len(m.frames) > 1 {
		state := "space pause"
		if !m.playing {
			state = "space play"
		}
		help = state + "  ←/→ step  r restart  q quit"
	}
	b.WriteString(playerDimStyle.Render(help))

	return b.String()
}

// =============================================================================
// Text Chart Rendering
// =============================================================================

// renderTextChart draws one geometry as rows of colored blocks. Every bar
// becomes one row ordered along the independent axis, so grouped and stacked
// charts read top to bottom.
func renderTextChart(g *chart.Geometry, width, maxRows int) string {
	if len(g.Bars) == 0 {
		return playerDimStyle.Render("(no bars)") + "\n"
	}

	bars := make([]chart.BarMark, len(g.Bars))
	copy(bars, g.Bars)
	sort.SliceStable(bars, func(i, j int) bool {
		if bars[i].Independent != bars[j].Independent {
			return bars[i].Independent < bars[j].Independent
		}
		return bars[i].Dataset < bars[j].Dataset
	})

	maxLen := 0.0
	for _, bar := range bars {
		if l := math.Abs(bar.Dependent1 - bar.Dependent0); l > maxLen {
			maxLen = l
		}
	}

	const labelWidth = 14
	barArea := width - labelWidth - 12
	if barArea < 10 {
		barArea = 10
	}

	multi := g.DatasetCount() > 1

	var b strings.Builder
	for i, bar := range bars {
		if maxRows > 0 && i >= maxRows {
			b.WriteString(playerDimStyle.Render(fmt.Sprintf("(+%d more)", len(bars)-i)))
			b.WriteString("\n")
			break
		}

		label := barLabel(bar, multi)
		if runes := []rune(label); len(runes) > labelWidth {
			label = string(runes[:labelWidth-1]) + "…"
		}

		cells := 1
		if maxLen > 0 {
			l := math.Abs(bar.Dependent1-bar.Dependent0) / maxLen * float64(barArea)
			if c := int(math.Round(l)); c > 1 {
				cells = c
			}
		}

		barStyle := playerBarStyle
		if fill, ok := bar.Style.String("fill"); ok && fill != "" && fill != "none" {
			barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(fill))
		}

		fmt.Fprintf(&b, "%s %s %s\n",
			playerLabelStyle.Render(fmt.Sprintf("%*s", labelWidth, label)),
			barStyle.Render(strings.Repeat("█", cells)),
			playerDimStyle.Render(bar.Datum.YRaw.String()))
	}

	return b.String()
}

// barLabel derives the row label for a bar. Explicit point labels win over
// the x value; the series name disambiguates multi-dataset charts.
func barLabel(bar chart.BarMark, multiDataset bool) string {
	label := bar.Datum.XRaw.String()
	if bar.Datum.Label != "" {
		label = bar.Datum.Label
	}
	if multiDataset && bar.Name != "" {
		label = fmt.Sprintf("%s %s", label, bar.Name)
	}
	return label
}

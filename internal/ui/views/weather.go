package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

const fetchDelay = 150 * time.Millisecond

var summaries = []string{
	"Freezing", "Bracing", "Chilly", "Cool", "Mild",
	"Warm", "Balmy", "Hot", "Sweltering", "Scorching",
}

var (
	_ common.View   = (*Weather)(nil)
	_ common.Titled = (*Weather)(nil)
)

type forecastDay struct {
	Day     string
	TempC   int
	Summary string
}

type forecastLoadedMsg struct {
	stationID int
	days      []forecastDay
}

// Weather shows a simulated forecast for a station. The station is chosen
// through the "ID" and "City" parameters, so two links to the same view can
// show different data; a refresh re-runs the simulated fetch.
type Weather struct {
	stationID int
	city      string
	spinner   spinner.Model
	loading   bool
	days      []forecastDay
	styles    weatherStyles
}

type weatherStyles struct {
	heading lipgloss.Style
	text    lipgloss.Style
	temp    lipgloss.Style
	dimmed  lipgloss.Style
}

func NewWeather(state *viewstate.ViewState) *Weather {
	w := &Weather{
		city:    "Unknown",
		loading: true,
		styles: weatherStyles{
			heading: common.DefaultPalette.Get("views heading"),
			text:    common.DefaultPalette.Get("text"),
			temp:    common.DefaultPalette.Get("views temp"),
			dimmed:  common.DefaultPalette.Get("dimmed"),
		},
	}
	if id, ok := state.Parameter("ID"); ok {
		switch id := id.(type) {
		case int:
			w.stationID = id
		case float64:
			w.stationID = int(id)
		}
	}
	if city, ok := state.Parameter("City"); ok {
		if city, ok := city.(string); ok {
			w.city = city
		}
	}
	w.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(w.styles.dimmed),
	)
	return w
}

func (w *Weather) Title() string {
	return "Weather: " + w.city
}

func (w *Weather) Init() tea.Cmd {
	return tea.Batch(w.spinner.Tick, w.fetch())
}

func (w *Weather) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case forecastLoadedMsg:
		if msg.stationID != w.stationID {
			return nil
		}
		w.loading = false
		w.days = msg.days
		return nil
	case common.RefreshMsg:
		w.loading = true
		return tea.Batch(w.spinner.Tick, w.fetch())
	case spinner.TickMsg:
		if !w.loading {
			return nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if msg.String() == "r" {
			return common.Refresh
		}
	}
	return nil
}

// fetch simulates a slow forecast lookup. The result is keyed by station so
// a stale response from a superseded station is dropped.
func (w *Weather) fetch() tea.Cmd {
	stationID := w.stationID
	return tea.Tick(fetchDelay, func(time.Time) tea.Msg {
		return forecastLoadedMsg{stationID: stationID, days: forecast(stationID)}
	})
}

func forecast(stationID int) []forecastDay {
	weekdays := []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	days := make([]forecastDay, 0, len(weekdays))
	for i, day := range weekdays {
		temp := (stationID*7+i*3)%35 - 5
		days = append(days, forecastDay{
			Day:     day,
			TempC:   temp,
			Summary: summaries[((temp+5)*len(summaries))/41],
		})
	}
	return days
}

func (w *Weather) View(width, height int) string {
	lines := []string{
		w.styles.heading.Render(fmt.Sprintf("%s (station %d)", w.city, w.stationID)),
		"",
	}
	if w.loading {
		lines = append(lines, w.spinner.View()+w.styles.dimmed.Render(" loading forecast..."))
	} else {
		for _, day := range w.days {
			lines = append(lines, fmt.Sprintf("%s  %s  %s",
				w.styles.text.Render(day.Day),
				w.styles.temp.Render(fmt.Sprintf("%3d°C", day.TempC)),
				w.styles.dimmed.Render(day.Summary),
			))
		}
		lines = append(lines, "", w.styles.dimmed.Render("r to refresh"))
	}
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

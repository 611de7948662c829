package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/pocketkeeper/internal/services"
)

// Theme is the colour scheme used for command output.
type Theme struct {
	Name string

	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// TokyoNight is the default theme.
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
}

var (
	current = TokyoNight

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(current.Primary)
	dimStyle     = lipgloss.NewStyle().Foreground(current.ForegroundDim)
	accentStyle  = lipgloss.NewStyle().Foreground(current.Secondary)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(current.Success)
	warningStyle = lipgloss.NewStyle().Foreground(current.Warning)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(current.Error)
	incomeStyle  = lipgloss.NewStyle().Foreground(current.Success)
	expenseStyle = lipgloss.NewStyle().Foreground(current.Error)
)

// progressBar renders pct (0..100) as a fixed-width bar.
func progressBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return successStyle.Render(string(bar[:filled])) + dimStyle.Render(string(bar[filled:]))
}

func printNotice(w io.Writer, n services.Notice) {
	style := successStyle
	if n.Kind == services.NoticeError {
		style = errorStyle
	}
	fmt.Fprintf(w, "%s %s\n", style.Render(n.Title+":"), n.Message)
}

func printTitle(w io.Writer, s string) {
	fmt.Fprintln(w, titleStyle.Render(s))
}

func money(v float64) string {
	return fmt.Sprintf("₱%.2f", v)
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/matzehuels/refugeeflow/pkg/pipeline"
)

// Terminal palette. Region colors come from the region package; these are
// only for chrome around the charts.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by commands and the player.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleCached  = lipgloss.NewStyle().Foreground(colorGreen)
)

// statusLine is one leading icon with its color.
type statusLine struct {
	icon  string
	style lipgloss.Style
}

var (
	lineSuccess = statusLine{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	lineError   = statusLine{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	lineWarning = statusLine{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	lineInfo    = statusLine{"›", lipgloss.NewStyle().Foreground(colorGray)}

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

func (l statusLine) print(msg string) {
	fmt.Println(l.style.Render(l.icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	lineSuccess.print(fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	lineError.print(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	lineWarning.print(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	lineInfo.print(fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printKeyValue prints an aligned label and an already styled value.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + value)
}

// printStats prints a one-line summary such as
// "1,204 records · layout 12ms · render 40ms · cached".
func printStats(stats pipeline.Stats, cached bool) {
	fmt.Println("  " + formatStats(stats, cached))
}

func formatStats(stats pipeline.Stats, cached bool) string {
	var parts []string
	if stats.Records > 0 {
		parts = append(parts, humanize.Comma(int64(stats.Records))+" records")
	}
	for _, stage := range []struct {
		name string
		d    time.Duration
	}{
		{"load", stats.LoadTime},
		{"layout", stats.LayoutTime},
		{"render", stats.RenderTime},
	} {
		if stage.d > 0 {
			parts = append(parts, stage.name+" "+stage.d.Round(time.Millisecond).String())
		}
	}
	sep := StyleDim.Render(" · ")
	line := StyleDim.Render(strings.Join(parts, " · "))
	if cached {
		return line + sep + styleCached.Render("cached")
	}
	return line + sep + StyleDim.Render("fresh")
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

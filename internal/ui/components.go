package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/olivier-w/dirplay/internal/media"
	"github.com/olivier-w/dirplay/internal/playback"
	"github.com/olivier-w/dirplay/internal/playlist"
	"github.com/olivier-w/dirplay/internal/util"
)

// visibleRange returns the half-open window of rows to draw so that the
// selection stays on screen.
func visibleRange(selected, total, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	if selected < 0 {
		selected = 0
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

func truncate(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return runewidth.Truncate(s, width, "…")
}

func renderEntry(e media.Entry, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	name := e.Name()
	if e.IsDir() {
		name += "/"
	}
	// marker, icon and the space after it
	name = truncate(name, width-2-runewidth.StringWidth(e.Kind.Icon())-1)

	style := lipgloss.NewStyle()
	if e.IsDir() {
		style = dirStyle
	}
	if selected {
		style = selectedStyle.Inherit(style)
	}
	return style.Render(marker + e.Kind.Icon() + " " + name)
}

func renderStatus(state playback.State, nowPlaying string, elapsed, total time.Duration, mode playlist.Mode, width int) string {
	parts := []string{state.Icon() + "  " + state.String()}
	if state != playback.StateIdle {
		parts = append(parts, truncate(filepath.Base(nowPlaying), width/2))
		parts = append(parts, timeStyle.Render(fmt.Sprintf("%s / %s", util.FormatDuration(elapsed), util.FormatDuration(total))))
	}
	if icon := mode.Icon(); icon != "" {
		parts = append(parts, icon)
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}

func renderProgressBar(elapsed, total float64, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 2 // leave some margin

	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(barWidth))
	return strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
}

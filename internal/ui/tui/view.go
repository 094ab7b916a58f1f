package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderStages(&b, m)
	if len(m.Lines) > 0 {
		renderActivity(&b, m)
	}
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("s3deploy: %s", m.Bucket)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Done:
		status += readyStyle.Render("Deployed")
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Cancelled:
		status += warningStyle.Render("Cancelled")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + dimStyle.Render("Deploying...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	files := ""
	if m.ToUpload > 0 {
		files = fmt.Sprintf("  files %d/%d", m.Uploaded, m.ToUpload)
	}
	fmt.Fprintf(b, "  %s %d%%%s\n", bar, int(progress*100), files)
}

func renderStages(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Stages"))
	b.WriteString("\n")

	for _, row := range m.Stages {
		icon, style := stageIcon(row, m.SpinnerFrame)
		line := fmt.Sprintf("    %s %s", style(icon), style(row.Key))
		if row.Detail != "" && (row.Failed || row.Warned || row.Skipped) {
			line += "  " + dimStyle.Render(row.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func renderActivity(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Activity"))
	b.WriteString("\n")
	for _, line := range m.Lines {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(line))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	parts := []string{fmt.Sprintf("elapsed: %s", formatDuration(time.Since(m.StartTime)))}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s  |  q: quit", strings.Join(parts, "  |  "))))
	b.WriteString("\n")
}

// Helper functions

func stageIcon(row StageRow, frame int) (string, styleFunc) {
	switch {
	case row.Failed:
		return crossMark, sf(failedStyle)
	case row.Warned:
		return warnMark, sf(warningStyle)
	case row.Skipped:
		return skipMark, sf(dimStyle)
	case row.Done:
		return checkMark, sf(readyStyle)
	case row.Active:
		return currentSpinner(frame), sf(activeStyle)
	default:
		return pending, sf(dimStyle)
	}
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// calculateProgress weighs finished stages, counting the publish stage's
// upload progress as a fraction of one stage.
func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}
	if len(m.Stages) == 0 {
		return 0
	}

	var done float64
	for _, row := range m.Stages {
		switch {
		case row.Done:
			done++
		case row.Active && m.ToUpload > 0:
			done += float64(m.Uploaded) / float64(m.ToUpload)
		}
	}
	return done / float64(len(m.Stages))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

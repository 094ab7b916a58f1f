package handlers

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/imamik/s3deploy/internal/deploy"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22c55e"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
	urlStyle     = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#3b82f6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// renderSummary prints the outcome of a run. report may be nil when the run
// never started.
func renderSummary(w io.Writer, report *deploy.Report, err error) {
	fmt.Fprintln(w)
	if err != nil {
		renderFailure(w, report, err)
		return
	}
	if report == nil {
		return
	}

	fmt.Fprintln(w, successStyle.Render("Deployment completed successfully!"))
	fmt.Fprintf(w, "Your app is now live at: %s\n", urlStyle.Render(report.WebsiteURL))
	fmt.Fprintf(w, "Uploaded %d files (%s) in %s\n", report.Files, humanize.IBytes(uint64(report.Bytes)), report.Duration.Round(100*time.Millisecond))
	if report.InvalidationID != "" {
		fmt.Fprintf(w, "CloudFront invalidation: %s\n", report.InvalidationID)
	}
	for _, s := range report.Stages {
		if s.Outcome == deploy.OutcomeWarned {
			fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("Warning: %s: %v (continued)", s.Name, s.Err)))
		}
	}

	fmt.Fprintln(w, "\nNext steps:")
	for i, step := range deploy.NextSteps(report.WebsiteURL) {
		fmt.Fprintf(w, "%d. %s\n", i+1, step)
	}
}

func renderFailure(w io.Writer, report *deploy.Report, err error) {
	stage := ""
	if report != nil {
		for _, s := range report.Stages {
			if s.Outcome == deploy.OutcomeFailed {
				stage = s.Name
			}
		}
	}

	header := "Deployment failed"
	if stage != "" {
		header += " during " + stage
	}
	fmt.Fprintf(w, "%s (%s)\n", failureStyle.Render(header), deploy.CategoryOf(err))

	hints := deploy.HintsOf(err)
	if len(hints) == 0 {
		return
	}
	fmt.Fprintln(w, "\nThis could be resolved by:")
	for i, h := range hints {
		fmt.Fprintf(w, "%d. %s\n", i+1, h)
	}
}

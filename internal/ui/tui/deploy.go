package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/s3deploy/internal/deploy"
)

// RunFunc runs a deployment, reporting through obs.
type RunFunc func(ctx context.Context, obs deploy.Observer) (*deploy.Report, error)

type runResult struct {
	report *deploy.Report
	err    error
}

// RunDeployTUI runs fn on a background goroutine while rendering its progress.
// Quitting the TUI early cancels the deployment and waits for it to stop.
func RunDeployTUI(ctx context.Context, bucket, region string, stages []string, fn RunFunc) (*deploy.Report, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewDeployModel(bucket, region, stages)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	results := make(chan runResult, 1)
	go func() {
		report, err := fn(runCtx, NewObserver(p))
		results <- runResult{report: report, err: err}
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		url := ""
		if report != nil {
			url = report.WebsiteURL
		}
		p.Send(DoneMsg{URL: url})
	}()

	_, tuiErr := p.Run()
	cancel()
	res := <-results

	if tuiErr != nil && res.err == nil {
		return res.report, fmt.Errorf("TUI error: %w", tuiErr)
	}
	return res.report, res.err
}

// StageNames returns the names of stages, for NewDeployModel.
func StageNames(stages []deploy.Stage) []string {
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name())
	}
	return names
}

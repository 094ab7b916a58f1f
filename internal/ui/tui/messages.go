// Package tui provides a Bubble Tea-based terminal UI for deployments.
package tui

// StageStatus is the display state of a pipeline stage.
type StageStatus string

const (
	StageStarted   StageStatus = "started"
	StageCompleted StageStatus = "completed"
	StageFailed    StageStatus = "failed"
	StageWarned    StageStatus = "warned"
	StageSkipped   StageStatus = "skipped"
)

// StageMsg reports a stage transition.
type StageMsg struct {
	Stage  string
	Status StageStatus
	Detail string
}

// ProgressMsg reports upload progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// LogMsg carries one line of activity output.
type LogMsg struct{ Line string }

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries the error that ended the deployment.
type ErrMsg struct{ Err error }

// DoneMsg signals that the deployment completed.
type DoneMsg struct{ URL string }

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/s3deploy/internal/deploy"
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Observer forwards deployment events to the TUI.
type Observer struct {
	sender Sender
	fields map[string]string
}

// NewObserver creates an observer that sends to s.
func NewObserver(s Sender) *Observer {
	return &Observer{sender: s}
}

// Printf implements deploy.Logger.
func (o *Observer) Printf(format string, v ...interface{}) {
	o.sender.Send(LogMsg{Line: fmt.Sprintf(format, v...)})
}

// Event implements deploy.Observer.
func (o *Observer) Event(event deploy.Event) {
	if status, ok := stageStatuses[event.Type]; ok {
		o.sender.Send(StageMsg{Stage: event.Stage, Status: status, Detail: event.Message})
		if status != StageFailed && status != StageWarned {
			return
		}
	}
	o.sender.Send(LogMsg{Line: deploy.FormatEvent(event)})
}

// Progress implements deploy.Observer.
func (o *Observer) Progress(_ string, current, total int) {
	o.sender.Send(ProgressMsg{Current: current, Total: total})
}

// WithFields implements deploy.Observer. Context fields are not shown in the
// TUI, so the receiver keeps sending to the same program.
func (o *Observer) WithFields(fields map[string]string) deploy.Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	for k, v := range o.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Observer{sender: o.sender, fields: merged}
}

var stageStatuses = map[deploy.EventType]StageStatus{
	deploy.EventStageStarted:   StageStarted,
	deploy.EventStageCompleted: StageCompleted,
	deploy.EventStageFailed:    StageFailed,
	deploy.EventStageWarning:   StageWarned,
	deploy.EventStageSkipped:   StageSkipped,
}

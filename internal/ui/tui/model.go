package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxLogLines bounds the activity pane.
const maxLogLines = 6

// StageRow represents one pipeline stage for display.
type StageRow struct {
	Key     string
	Active  bool
	Done    bool
	Skipped bool
	Warned  bool
	Failed  bool
	Detail  string
}

// Model is the Bubble Tea model for the deployment progress view.
type Model struct {
	Bucket string
	Region string

	Stages []StageRow

	// Upload progress
	Uploaded int
	ToUpload int

	Lines []string

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int
	Err    error
	Done   bool
	URL    string

	// Cancelled is set when the user quits before the deployment ends.
	Cancelled bool
}

// NewDeployModel creates a model listing stages in run order.
func NewDeployModel(bucket, region string, stages []string) Model {
	rows := make([]StageRow, 0, len(stages))
	for _, s := range stages {
		rows = append(rows, StageRow{Key: s})
	}
	return Model{
		Bucket:    bucket,
		Region:    region,
		Stages:    rows,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.Done && m.Err == nil {
				m.Cancelled = true
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StageMsg:
		m.updateStage(msg)

	case ProgressMsg:
		m.Uploaded = msg.Current
		m.ToUpload = msg.Total

	case LogMsg:
		m.appendLine(msg.Line)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.URL = msg.URL
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateStage(msg StageMsg) {
	idx := -1
	for i, row := range m.Stages {
		if row.Key == msg.Stage {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	row := &m.Stages[idx]
	row.Detail = msg.Detail
	switch msg.Status {
	case StageStarted:
		row.Active = true
	case StageCompleted:
		row.Active, row.Done = false, true
	case StageSkipped:
		row.Active, row.Done, row.Skipped = false, true, true
	case StageWarned:
		row.Active, row.Done, row.Warned = false, true, true
	case StageFailed:
		row.Active, row.Failed = false, true
	}
}

func (m *Model) appendLine(line string) {
	m.Lines = append(m.Lines, line)
	if len(m.Lines) > maxLogLines {
		m.Lines = m.Lines[len(m.Lines)-maxLogLines:]
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}

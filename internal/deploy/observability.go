package deploy

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging surface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during a deployment.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress within a stage
	Progress(stage string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured deployment event.
type Event struct {
	Type      EventType
	Stage     string
	Message   string
	Resource  string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of deployment event.
type EventType string

const (
	EventStageStarted   EventType = "stage.started"
	EventStageCompleted EventType = "stage.completed"
	EventStageFailed    EventType = "stage.failed"
	EventStageWarning   EventType = "stage.warning"
	EventStageSkipped   EventType = "stage.skipped"

	EventCheckPassed EventType = "check.passed"

	EventResourceCreating   EventType = "resource.creating"
	EventResourceCreated    EventType = "resource.created"
	EventResourceExists     EventType = "resource.exists"
	EventResourceConfigured EventType = "resource.configured"

	EventObjectUploaded EventType = "object.uploaded"

	EventDeployCompleted EventType = "deploy.completed"

	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	log.Print(FormatEvent(withContext(event, o.contextFields)))
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(stage string, current, total int) {
	log.Print(formatProgress(stage, current, total))
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	return &ConsoleObserver{contextFields: mergeFields(o.contextFields, fields)}
}

// withContext stamps event with a timestamp and the observer's context
// fields. Fields already set on the event win.
func withContext(event Event, contextFields map[string]string) Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if len(contextFields) > 0 {
		event.Fields = mergeFields(contextFields, event.Fields)
	}
	return event
}

func mergeFields(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

var eventMarks = map[EventType]string{
	EventStageStarted:       "==>",
	EventStageCompleted:     "[OK]",
	EventStageFailed:        "[!!]",
	EventStageWarning:       "[??]",
	EventStageSkipped:       "[--]",
	EventCheckPassed:        "[OK]",
	EventResourceCreating:   "[..]",
	EventResourceCreated:    "[OK]",
	EventResourceExists:     "[OK]",
	EventResourceConfigured: "[OK]",
	EventObjectUploaded:     "  ->",
	EventDeployCompleted:    "[OK]",
}

// FormatEvent renders an event as a single console line. Context fields are
// printed in key order.
func FormatEvent(event Event) string {
	var parts []string

	if mark, ok := eventMarks[event.Type]; ok {
		parts = append(parts, mark)
	} else {
		parts = append(parts, string(event.Type))
	}

	if event.Stage != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Stage))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		keys := make([]string, 0, len(event.Fields))
		for k := range event.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fieldParts := make([]string, 0, len(keys))
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, event.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

func formatProgress(stage string, current, total int) string {
	if total == 0 {
		return fmt.Sprintf("[%s] Progress: %d/%d", stage, current, total)
	}
	percentage := (current * 100) / total
	return fmt.Sprintf("[%s] Progress: %d/%d (%d%%)", stage, current, total, percentage)
}

// Helper functions for common events

// LogStageStart logs a stage start event.
func LogStageStart(observer Observer, stage string, index, total int) {
	observer.Event(Event{
		Type:    EventStageStarted,
		Stage:   stage,
		Message: fmt.Sprintf("starting (%d/%d)", index, total),
		Fields: map[string]string{
			"index": fmt.Sprint(index),
			"total": fmt.Sprint(total),
		},
	})
}

// LogStageComplete logs a stage completion event.
func LogStageComplete(observer Observer, stage string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStageCompleted,
		Stage:   stage,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStageFailed logs a stage failure event.
func LogStageFailed(observer Observer, stage string, err error) {
	observer.Event(Event{
		Type:    EventStageFailed,
		Stage:   stage,
		Message: fmt.Sprintf("failed: %v", err),
		Fields: map[string]string{
			"category": string(CategoryOf(err)),
		},
	})
}

// LogStageWarning logs a non-fatal stage failure.
func LogStageWarning(observer Observer, stage string, err error) {
	observer.Event(Event{
		Type:    EventStageWarning,
		Stage:   stage,
		Message: fmt.Sprintf("%v (continuing)", err),
	})
}

// LogStageSkipped logs a stage that had nothing to do.
func LogStageSkipped(observer Observer, stage string, reason error) {
	observer.Event(Event{
		Type:    EventStageSkipped,
		Stage:   stage,
		Message: reason.Error(),
	})
}

// LogCheckPassed logs a successful preflight check.
func LogCheckPassed(observer Observer, stage, message string) {
	observer.Event(Event{
		Type:    EventCheckPassed,
		Stage:   stage,
		Message: message,
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, stage, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Stage:    stage,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, stage, resourceType, resourceName, resourceID string) {
	fields := map[string]string{"type": resourceType}
	if resourceID != "" {
		fields["id"] = resourceID
	}
	observer.Event(Event{
		Type:     EventResourceCreated,
		Stage:    stage,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   fields,
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, stage, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Stage:    stage,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceConfigured logs an applied configuration change.
func LogResourceConfigured(observer Observer, stage, resourceName, message string) {
	observer.Event(Event{
		Type:     EventResourceConfigured,
		Stage:    stage,
		Resource: resourceName,
		Message:  message,
	})
}

// LogObjectUploaded logs one uploaded object.
func LogObjectUploaded(observer Observer, stage, key, contentType string) {
	fields := map[string]string{}
	if contentType != "" {
		fields["content_type"] = contentType
	}
	observer.Event(Event{
		Type:     EventObjectUploaded,
		Stage:    stage,
		Resource: key,
		Message:  "uploaded",
		Fields:   fields,
	})
}

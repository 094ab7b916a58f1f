package deploy

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/imamik/s3deploy/internal/config"
	dtesting "github.com/imamik/s3deploy/internal/testing"
)

// recordingObserver records events. Observers derived through WithFields
// share the same log.
type recordingObserver struct {
	mu       *sync.Mutex
	events   *[]Event
	messages *[]string
	fields   map[string]string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		mu:       &sync.Mutex{},
		events:   &[]Event{},
		messages: &[]string{},
		fields:   map[string]string{},
	}
}

func (r *recordingObserver) Printf(format string, _ ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.messages = append(*r.messages, format)
}

func (r *recordingObserver) Event(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.Fields = mergeFields(r.fields, event.Fields)
	*r.events = append(*r.events, event)
}

func (r *recordingObserver) Progress(stage string, current, total int) {
	r.Event(Event{Type: EventProgress, Stage: stage, Message: formatProgress(stage, current, total)})
}

func (r *recordingObserver) WithFields(fields map[string]string) Observer {
	return &recordingObserver{
		mu:       r.mu,
		events:   r.events,
		messages: r.messages,
		fields:   mergeFields(r.fields, fields),
	}
}

func (r *recordingObserver) ofType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range *r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestContext(t *testing.T, cfg config.Deployment, services Services) (*Context, *recordingObserver) {
	t.Helper()
	return newTestContextWith(dtesting.TestContext(t), cfg, services)
}

func newTestContextWith(ctx context.Context, cfg config.Deployment, services Services) (*Context, *recordingObserver) {
	if services.Now == nil {
		services.Now = dtesting.FixedClock(testNow)
	}
	obs := newRecordingObserver()
	dctx := NewContext(ctx, "run-1", cfg, services, obs)
	dctx.Timeouts = &config.Timeouts{BucketWaitAttempts: 1, BucketWaitInitialDelay: time.Millisecond, BucketWaitMaxDelay: time.Millisecond}
	return dctx, obs
}

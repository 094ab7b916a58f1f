package deploy

import (
	"errors"
	"fmt"
	"time"
)

// Stage names in pipeline order.
const (
	StagePreflight  = "preflight"
	StageBuild      = "build"
	StageProvision  = "provision"
	StageConfigure  = "configure"
	StagePublish    = "publish"
	StageInvalidate = "invalidate"
	StageReport     = "report"
)

// Stage is one step of a deployment.
type Stage interface {
	Name() string
	// Fatal reports whether a failure of this stage aborts the run.
	Fatal() bool
	Run(ctx *Context) error
}

// Outcome is the result of running one stage.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeWarned  Outcome = "warned"
	OutcomeSkipped Outcome = "skipped"
)

// StageResult records how a stage ended.
type StageResult struct {
	Name     string
	Outcome  Outcome
	Duration time.Duration
	Err      error
}

// Report summarizes a deployment run. It is returned even when the run fails
// so callers can show how far it got.
type Report struct {
	RunID          string
	Bucket         string
	Region         string
	Stages         []StageResult
	Files          int
	Bytes          int64
	WebsiteURL     string
	InvalidationID string
	Duration       time.Duration
	Succeeded      bool
}

// Result returns the result of the named stage, if it ran.
func (r *Report) Result(name string) (StageResult, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageResult{}, false
}

// DefaultStages returns the deployment stages in execution order.
func DefaultStages() []Stage {
	return []Stage{
		&preflightStage{},
		&buildStage{},
		&provisionStage{},
		&configureStage{},
		&publishStage{},
		&invalidateStage{},
		&reportStage{},
	}
}

// Run executes stages sequentially. The first failing fatal stage stops the
// run and its error is returned. Failures of non-fatal stages, including
// panics, are reported as warnings.
func Run(ctx *Context, stages []Stage) (*Report, error) {
	start := ctx.Services.Now()
	report := &Report{
		RunID:  ctx.RunID,
		Bucket: ctx.Config.Bucket,
		Region: ctx.Config.Region,
	}
	defer func() {
		report.Files = ctx.State.Files
		report.Bytes = ctx.State.Bytes
		report.WebsiteURL = ctx.State.WebsiteURL
		report.InvalidationID = ctx.State.InvalidationID
		report.Duration = ctx.Services.Now().Sub(start)
	}()

	ctx.Observer.Printf("Starting deployment of %s with %d stages...", ctx.Config.Bucket, len(stages))

	for i, stage := range stages {
		if err := ctx.Err(); err != nil {
			derr := newError(CategoryInterrupted, err, nil, "deployment interrupted before %s", stage.Name())
			derr.Stage = stage.Name()
			LogStageFailed(ctx.Observer, stage.Name(), derr)
			report.Stages = append(report.Stages, StageResult{Name: stage.Name(), Outcome: OutcomeFailed, Err: derr})
			return report, fmt.Errorf("%s stage failed: %w", stage.Name(), derr)
		}

		LogStageStart(ctx.Observer, stage.Name(), i+1, len(stages))
		stageStart := ctx.Services.Now()
		err := runStage(ctx, stage)
		result := StageResult{Name: stage.Name(), Duration: ctx.Services.Now().Sub(stageStart)}

		switch {
		case err == nil:
			result.Outcome = OutcomeOK
			LogStageComplete(ctx.Observer, stage.Name(), result.Duration)
		case errors.Is(err, ErrSkipped):
			result.Outcome = OutcomeSkipped
			LogStageSkipped(ctx.Observer, stage.Name(), err)
		case !stage.Fatal():
			result.Outcome = OutcomeWarned
			result.Err = stamp(err, stage.Name())
			LogStageWarning(ctx.Observer, stage.Name(), err)
		default:
			result.Outcome = OutcomeFailed
			result.Err = stamp(err, stage.Name())
			LogStageFailed(ctx.Observer, stage.Name(), result.Err)
			report.Stages = append(report.Stages, result)
			return report, fmt.Errorf("%s stage failed: %w", stage.Name(), result.Err)
		}
		report.Stages = append(report.Stages, result)
	}

	report.Succeeded = true
	ctx.Observer.Event(Event{
		Type:    EventDeployCompleted,
		Message: fmt.Sprintf("deployment completed in %v", ctx.Services.Now().Sub(start).Round(time.Millisecond)),
		Fields:  map[string]string{"url": ctx.State.WebsiteURL},
	})
	return report, nil
}

// runStage runs a stage, converting a panic in a non-fatal stage into an error.
func runStage(ctx *Context, stage Stage) (err error) {
	if !stage.Fatal() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("unexpected error: %v", r)
			}
		}()
	}
	return stage.Run(ctx)
}

// stamp records the stage name on a categorized error, or wraps an
// uncategorized one.
func stamp(err error, stage string) error {
	var derr *Error
	if errors.As(err, &derr) {
		if derr.Stage == "" {
			derr.Stage = stage
		}
		return err
	}
	return &Error{Stage: stage, Category: CategoryUnknown, Message: stage + " failed", Err: err}
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

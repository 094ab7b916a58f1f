package deploy

import (
	"errors"

	"github.com/imamik/s3deploy/internal/build"
)

// buildStage installs dependencies and produces the static output directory.
type buildStage struct{}

func (s *buildStage) Name() string { return StageBuild }
func (s *buildStage) Fatal() bool  { return true }

func (s *buildStage) Run(ctx *Context) error {
	src := ctx.Config.SourceDir

	ctx.Observer.Printf("[%s] Installing npm dependencies...", StageBuild)
	if err := ctx.Services.Builder.Install(ctx, src); err != nil {
		return newError(CategoryBuild, err, nil, "failed to install dependencies")
	}
	LogCheckPassed(ctx.Observer, StageBuild, "dependencies installed")

	ctx.Observer.Printf("[%s] Building application...", StageBuild)
	artifact, err := ctx.Services.Builder.Build(ctx, src, ctx.Config.BuildDir)
	if err != nil {
		if errors.Is(err, build.ErrOutputMissing) {
			return newError(CategoryBuild, err,
				[]string{"Check that the build writes to '" + ctx.Config.BuildDir + "' (see --build-dir)"},
				"build directory not found, the build may have failed")
		}
		return newError(CategoryBuild, err,
			[]string{"Make sure the app has a 'build' script in package.json"},
			"failed to build application")
	}

	ctx.State.Artifact = artifact
	LogCheckPassed(ctx.Observer, StageBuild, "application built into "+artifact.Dir)
	return nil
}

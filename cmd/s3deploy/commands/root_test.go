package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/s3deploy/internal/config"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "s3deploy", cmd.Use)
	assert.Equal(t, "Build a web app and deploy it to an S3 static website", cmd.Short)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, expected := range []string{"init", "regions", "version", "completion"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
	assert.Len(t, cmd.Commands(), 4)
}

func TestRoot_Flags(t *testing.T) {
	cmd := Root()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"bucket", "b", ""},
		{"path", "p", "."},
		{"region", "", "us-east-1"},
		{"profile", "", ""},
		{"distribution-id", "d", ""},
		{"list-regions", "", "false"},
		{"config", "c", ""},
		{"build-dir", "", "build"},
		{"invalidate-path", "", "[]"},
		{"log-format", "", "text"},
		{"tui", "", "false"},
		{"metrics-file", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "flag %s should exist", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestRoot_ListRegionsDoesNotDeploy(t *testing.T) {
	cmd := Root()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--list-regions"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Available AWS regions:")
	assert.Contains(t, out.String(), "eu-central-1")
}

func TestRoot_InvalidLogFormat(t *testing.T) {
	cmd := Root()
	cmd.SetArgs([]string{"--bucket", "b", "--log-format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --log-format "xml"`)
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	cmd := Root()
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestOverridesFromFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want config.Deployment
	}{
		{
			name: "defaults are not overrides",
			args: nil,
			want: config.Deployment{},
		},
		{
			name: "explicit values",
			args: []string{"-b", "site", "-p", "web", "--region", "eu-west-1", "--profile", "dev", "-d", "E1", "--build-dir", "dist"},
			want: config.Deployment{Bucket: "site", SourceDir: "web", Region: "eu-west-1", Profile: "dev", DistributionID: "E1", BuildDir: "dist"},
		},
		{
			name: "repeated invalidation paths",
			args: []string{"--invalidate-path", "/index.html", "--invalidate-path", "/static/*"},
			want: config.Deployment{InvalidationPaths: []string{"/index.html", "/static/*"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &deployFlags{}
			fs := newDeployFlagSet(f)
			require.NoError(t, fs.Parse(tt.args))
			assert.Equal(t, tt.want, overridesFromFlags(fs, f))
		})
	}
}

func newDeployFlagSet(f *deployFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("s3deploy", pflag.ContinueOnError)
	bindDeployFlags(fs, f)
	return fs
}

func TestVersion_Output(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() { SetVersionInfo(origVersion, origCommit, origDate) })
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")

	cmd := Version()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "s3deploy 1.2.3")
	assert.Contains(t, out.String(), "commit: abc123")
	assert.Contains(t, out.String(), "built:  2026-01-01")
}

func TestInit_OutputFlag(t *testing.T) {
	cmd := Init()

	flag := cmd.Flags().Lookup("output")
	require.NotNil(t, flag, "output flag should exist")
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "s3deploy.yaml", flag.DefValue)
}

func TestRegions_Command(t *testing.T) {
	cmd := Regions()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "sa-east-1")
}

func TestCompletion_Bash(t *testing.T) {
	root := Root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "s3deploy")
}

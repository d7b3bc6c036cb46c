package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/output"
	"github.com/Kargones/frontcheck/internal/pkg/testutil"
)

// isolate сбрасывает переменные, влияющие на выбор команды и проекта.
func isolate(t *testing.T, format string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(constants.EnvCommand, "")
	t.Setenv(constants.EnvConfigFile, "")
	t.Setenv(output.EnvOutputFormat, format)
	t.Setenv("BR_PROJECT_ROOT", dir)
	t.Setenv("BR_LOG_LEVEL", "error")
	return dir
}

func decode(t *testing.T, out string) output.Result {
	t.Helper()
	var res output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	return res
}

func TestRun_Version(t *testing.T) {
	isolate(t, "json")

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = Run(context.Background(), constants.ActVersion, nil)
	})

	assert.Equal(t, constants.ExitOK, code)
	res := decode(t, out)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, constants.ActVersion, res.Command)
	require.NotNil(t, res.Metadata)
	assert.Len(t, res.Metadata.TraceID, 32)
}

func TestRun_EmptyCommandShowsHelp(t *testing.T) {
	isolate(t, "text")

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = Run(context.Background(), "", nil)
	})

	assert.Equal(t, constants.ExitOK, code)
	assert.Contains(t, out, constants.ActValidateVersions)
	assert.Contains(t, out, constants.ActSmokeTest)
}

func TestRun_CommandFromEnv(t *testing.T) {
	isolate(t, "json")
	t.Setenv(constants.EnvCommand, constants.ActVersion)

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = Run(context.Background(), "", nil)
	})

	assert.Equal(t, constants.ExitOK, code)
	assert.Equal(t, constants.ActVersion, decode(t, out).Command)
}

func TestRun_UnknownCommand(t *testing.T) {
	isolate(t, "json")

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = Run(context.Background(), "deploy-everything", nil)
	})

	assert.Equal(t, constants.ExitUnknownCommand, code)
	res := decode(t, out)
	assert.Equal(t, "error", res.Status)
	require.NotNil(t, res.Error)
	assert.Equal(t, "COMMAND.NOT_FOUND", res.Error.Code)
}

func TestRun_ValidateVersions(t *testing.T) {
	tests := []struct {
		name string
		deps map[string]string
		want int
	}{
		{
			name: "compatible",
			deps: map[string]string{"react": "^18.2.0", "react-dom": "^18.2.0"},
			want: constants.ExitOK,
		},
		{
			name: "major mismatch is a warning",
			deps: map[string]string{"react": "^18.2.0", "react-dom": "^17.0.2"},
			want: constants.ExitOK,
		},
		{
			name: "react 19 with react-dom 17",
			deps: map[string]string{"react": "^19.0.0", "react-dom": "^17.0.2"},
			want: constants.ExitFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t, "text")
			testutil.WriteManifest(t, dir, tt.deps)

			var code int
			testutil.CaptureStdout(t, func() {
				code = Run(context.Background(), constants.ActValidateVersions, nil)
			})
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRun_DeprecatedAlias(t *testing.T) {
	dir := isolate(t, "text")
	testutil.WriteManifest(t, dir, map[string]string{"react": "19.0.0", "react-dom": "17.0.2"})

	var code int
	stderr := testutil.CaptureStderr(t, func() {
		testutil.CaptureStdout(t, func() {
			code = Run(context.Background(), constants.ActCheckReact, nil)
		})
	})

	assert.Equal(t, constants.ExitFailure, code)
	assert.Contains(t, stderr, "deprecated")
}

func TestRun_SmokeTestWithoutBuild(t *testing.T) {
	isolate(t, "text")

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = Run(context.Background(), constants.ActSmokeTest, nil)
	})

	assert.Equal(t, constants.ExitFailure, code)
	assert.Contains(t, out, "build")
}

func TestRun_InvalidConfig(t *testing.T) {
	isolate(t, "text")
	t.Setenv("BR_SERVER_PORT", "0")

	var code int
	testutil.CaptureStderr(t, func() {
		code = Run(context.Background(), constants.ActVersion, nil)
	})
	assert.Equal(t, constants.ExitFailure, code)
}

func TestRun_RegistersOnce(t *testing.T) {
	require.NoError(t, register())
	require.NoError(t, register())
}

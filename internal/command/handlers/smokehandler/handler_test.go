package smokehandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/pkg/output"
	"github.com/Kargones/frontcheck/internal/pkg/testutil"
	"github.com/Kargones/frontcheck/internal/smoke"
)

func init() {
	color.NoColor = true
}

// stubServer отдаёт фиксированное тело, пока его не остановят.
type stubServer struct {
	srv    *httptest.Server
	exited chan struct{}
	once   sync.Once
	stops  int
}

func newStubServer(body string) *stubServer {
	return &stubServer{
		srv: httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, body)
		})),
		exited: make(chan struct{}),
	}
}

func (s *stubServer) Stop(time.Duration) error {
	s.stops++
	s.once.Do(func() {
		s.srv.Close()
		close(s.exited)
	})
	return nil
}

func (s *stubServer) Output() []byte          { return nil }
func (s *stubServer) Exited() <-chan struct{} { return s.exited }

func (s *stubServer) port(t *testing.T) int {
	t.Helper()
	_, portStr, err := splitHostPort(s.srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return port
}

type stubLauncher struct {
	server   *stubServer
	launched int
}

func (l *stubLauncher) Launch(string) (smoke.Server, error) {
	l.launched++
	return l.server, nil
}

func testConfig(t *testing.T, buildDir string, port int) *config.Config {
	t.Helper()
	return &config.Config{
		ProjectConfig: &config.ProjectConfig{BuildDir: buildDir},
		ServerConfig: &config.ServerConfig{
			Command:   "static-server",
			Args:      "-s {dir} -l {port}",
			Host:      "127.0.0.1",
			Port:      port,
			StopGrace: time.Second,
		},
		SmokeConfig: &config.SmokeConfig{
			Warmup:         10 * time.Millisecond,
			WaitMode:       constants.WaitModeDelay,
			RequestTimeout: time.Second,
			Budget:         5 * time.Second,
		},
	}
}

func execute(t *testing.T, h *Handler, cfg *config.Config) (string, error) {
	t.Helper()
	var err error
	out := testutil.CaptureStdout(t, func() {
		err = h.Execute(context.Background(), cfg)
	})
	return out, err
}

func TestHandler_Metadata(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, "smoke-test", h.Name())
	assert.NotEmpty(t, h.Description())
}

func TestExecute_ScenarioC_BuildMissing(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "text")
	l := &stubLauncher{}
	cfg := testConfig(t, filepath.Join(t.TempDir(), "build"), 3000)

	out, err := execute(t, NewHandler(l), cfg)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBuildMissing, apperrors.CodeOf(err))
	assert.Zero(t, l.launched, "сервер не должен запускаться")
	assert.Contains(t, out, "❌ build directory")
	assert.NotContains(t, out, "Hint:")
}

func TestExecute_ScenarioD_Pass(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "text")
	srv := newStubServer(`<div id="root"></div>`)
	l := &stubLauncher{server: srv}
	cfg := testConfig(t, testutil.WriteBuild(t, t.TempDir(), "unused"), srv.port(t))

	out, err := execute(t, NewHandler(l), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ app root element rendered")
	assert.Equal(t, 1, srv.stops)
}

func TestExecute_ScenarioE_TypeError(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "text")
	srv := newStubServer(`<div id="root"></div><script>TypeError</script>`)
	l := &stubLauncher{server: srv}
	cfg := testConfig(t, testutil.WriteBuild(t, t.TempDir(), "unused"), srv.port(t))

	out, err := execute(t, NewHandler(l), cfg)
	require.Error(t, err)
	assert.Contains(t, out, "❌ runtime error detected")
	assert.Contains(t, out, "Hint: this is usually caused by react 19.x running with react-dom 17.x")
	assert.Equal(t, 1, srv.stops)
}

func TestExecute_RootMissing_JSON(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "json")
	srv := newStubServer(`<div id="app"></div>`)
	l := &stubLauncher{server: srv}
	cfg := testConfig(t, testutil.WriteBuild(t, t.TempDir(), "unused"), srv.port(t))

	out, err := execute(t, NewHandler(l), cfg)
	require.Error(t, err)

	var result output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, output.StatusError, result.Status)
	assert.Equal(t, apperrors.ErrRootMissing, result.Error.Code)
	assert.Equal(t, "app root element not found", result.Error.Message)
	assert.NotEmpty(t, result.Error.Hint)
}

func TestExecute_Pass_JSON(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "json")
	srv := newStubServer(`<div id='root'></div>`)
	l := &stubLauncher{server: srv}
	cfg := testConfig(t, testutil.WriteBuild(t, t.TempDir(), "unused"), srv.port(t))

	out, err := execute(t, NewHandler(l), cfg)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, output.StatusSuccess, result["status"])
	data, ok := result["data"].(map[string]any)
	require.True(t, ok)
	probe, ok := data["probe"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, probe["root_found"])
}

func TestExecute_DryRun(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "json")
	t.Setenv(constants.EnvDryRun, "true")
	l := &stubLauncher{}
	buildDir := testutil.WriteBuild(t, t.TempDir(), "unused")
	cfg := testConfig(t, buildDir, 3000)

	out, err := execute(t, NewHandler(l), cfg)
	require.NoError(t, err)
	assert.Zero(t, l.launched)

	var result output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.DryRun)
	require.NotNil(t, result.Plan)
	assert.True(t, result.Plan.ValidationPassed)
	require.Len(t, result.Plan.Steps, 5)
	assert.Equal(t, "-s "+buildDir+" -l 3000", result.Plan.Steps[1].Parameters["args"])
	assert.Equal(t, "http://127.0.0.1:3000/", result.Plan.Steps[3].Parameters["url"])
}

func TestExecute_DryRunBuildMissing(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "text")
	t.Setenv(constants.EnvDryRun, "true")
	cfg := testConfig(t, filepath.Join(t.TempDir(), "build"), 3000)

	out, err := execute(t, NewHandler(&stubLauncher{}), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "=== DRY RUN ===")
	assert.Contains(t, out, "Валидация: НЕ пройдена")
}

func TestExecute_NilConfig(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "text")
	_, err := execute(t, &Handler{}, nil)
	assert.Equal(t, apperrors.ErrConfigLoad, apperrors.CodeOf(err))
}

func TestHintFor(t *testing.T) {
	assert.Empty(t, hintFor(apperrors.NewAppError(apperrors.ErrBuildMissing, "x", nil)))
	assert.NotEmpty(t, hintFor(apperrors.NewAppError(apperrors.ErrRequestTimeout, "x", nil)))
}

package version

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/output"
	"github.com/Kargones/frontcheck/internal/pkg/testutil"
)

type fakeHandler struct{ name string }

func (h *fakeHandler) Name() string                                      { return h.name }
func (h *fakeHandler) Description() string                               { return "fake" }
func (h *fakeHandler) Execute(_ context.Context, _ *config.Config) error { return nil }

func TestMain(m *testing.M) {
	if err := RegisterCmd(); err != nil {
		panic(err)
	}
	if err := command.RegisterWithAlias(&fakeHandler{name: "smoke-test"}, "test-runtime"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestBuildVersionData_Defaults(t *testing.T) {
	d := buildVersionData("", "")
	assert.Equal(t, "dev", d.Version)
	assert.Equal(t, "unknown", d.Commit)
	assert.NotEmpty(t, d.GoVersion)
	assert.Equal(t, []AliasEntry{{Command: "smoke-test", Alias: "test-runtime"}}, d.Aliases)
}

func TestVersionHandler_Registered(t *testing.T) {
	h, ok := command.Get(constants.ActVersion)
	require.True(t, ok)
	assert.IsType(t, &VersionHandler{}, h)
}

func TestVersionHandler_Text(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "text")

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = (&VersionHandler{}).Execute(context.Background(), nil)
	})
	require.NoError(t, err)
	assert.Contains(t, out, "frontcheck version")
	assert.Contains(t, out, "test-runtime")
}

// TestVersionHandler_StdoutOnlyJSON проверяет, что stdout содержит ровно один JSON-объект.
func TestVersionHandler_StdoutOnlyJSON(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "json")

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = (&VersionHandler{}).Execute(context.Background(), nil)
	})
	require.NoError(t, err)

	decoder := json.NewDecoder(bytes.NewReader([]byte(out)))
	var result output.Result
	require.NoError(t, decoder.Decode(&result))
	assert.Equal(t, output.StatusSuccess, result.Status)
	assert.Equal(t, constants.ActVersion, result.Command)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, constants.APIVersion, result.Metadata.APIVersion)

	var rest bytes.Buffer
	_, _ = rest.ReadFrom(decoder.Buffered())
	assert.Empty(t, bytes.TrimSpace(rest.Bytes()))
}

package help

import (
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
func (h *fakeHandler) Description() string                               { return "Проверка версий" }
func (h *fakeHandler) Execute(_ context.Context, _ *config.Config) error { return nil }

func TestMain(m *testing.M) {
	if err := RegisterCmd(); err != nil {
		panic(err)
	}
	if err := command.RegisterWithAlias(&fakeHandler{name: "validate-versions"}, "check-react"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestHandler_Metadata(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, constants.ActHelp, h.Name())
	assert.Equal(t, "Вывод списка доступных команд", h.Description())
}

func TestExecute_Text(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "text")

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = (&Handler{}).Execute(context.Background(), nil)
	})
	require.NoError(t, err)

	assert.Contains(t, out, "frontcheck — проверки фронтенда перед сборкой")
	assert.Contains(t, out, "validate-versions")
	assert.Contains(t, out, "[deprecated → validate-versions] Проверка версий")
	assert.Contains(t, out, "BR_OUTPUT_FORMAT=json")
}

func TestExecute_JSON(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "json")

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = (&Handler{}).Execute(context.Background(), nil)
	})
	require.NoError(t, err)

	var result struct {
		Status string `json:"status"`
		Data   Data   `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, output.StatusSuccess, result.Status)

	names := make([]string, 0, len(result.Data.Commands))
	for _, c := range result.Data.Commands {
		names = append(names, c.Name)
		if c.Name == "check-react" {
			assert.True(t, c.Deprecated)
			assert.Equal(t, "validate-versions", c.NewName)
		}
	}
	assert.Equal(t, []string{"check-react", "help", "validate-versions"}, names)
}

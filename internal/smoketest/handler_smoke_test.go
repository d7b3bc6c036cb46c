package smoketest

import (
	"bytes"
	"context"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/pkg/output"
	"github.com/Kargones/frontcheck/internal/pkg/testutil"
)

// Тесты этого файла не используют t.Parallel(): CaptureStdout подменяет os.Stdout.

const resultSchema = "../pkg/output/testdata/schema/result.schema.json"

func compileSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	schema, err := jsonschema.NewCompiler().Compile(resultSchema)
	require.NoError(t, err)
	return schema
}

// TestSmoke_JSONOutputMatchesSchema запускает каждую команду без конфигурации
// (кроме serve, которая блокируется) и проверяет JSON по схеме.
func TestSmoke_JSONOutputMatchesSchema(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "json")
	schema := compileSchema(t)

	for _, name := range allCommands {
		if name == "serve" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			h, ok := command.Get(name)
			require.True(t, ok)

			out := testutil.CaptureStdout(t, func() {
				_ = h.Execute(context.Background(), nil)
			})

			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(out)))
			require.NoError(t, err, "вывод %s должен быть JSON: %s", name, out)
			assert.NoError(t, schema.Validate(doc))
		})
	}
}

// TestSmoke_DeprecatedAliasesProduceSameResult сравнивает статус вывода
// команды и её старого имени.
func TestSmoke_DeprecatedAliasesProduceSameResult(t *testing.T) {
	t.Setenv(output.EnvOutputFormat, "json")

	for alias, newName := range deprecatedAliases {
		t.Run(alias, func(t *testing.T) {
			main, _ := command.Get(newName)
			bridge, _ := command.Get(alias)

			var mainErr, aliasErr error
			_ = testutil.CaptureStdout(t, func() { mainErr = main.Execute(context.Background(), nil) })
			_ = testutil.CaptureStderr(t, func() {
				_ = testutil.CaptureStdout(t, func() { aliasErr = bridge.Execute(context.Background(), nil) })
			})

			require.Error(t, mainErr)
			require.Error(t, aliasErr)
			assert.Equal(t, mainErr.Error(), aliasErr.Error())
		})
	}
}

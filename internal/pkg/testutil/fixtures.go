package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kargones/frontcheck/internal/constants"
)

// WriteManifest создаёт dir/package.json с указанными dependencies
// и возвращает путь к файлу.
func WriteManifest(t *testing.T, dir string, deps map[string]string) string {
	t.Helper()
	data, err := json.MarshalIndent(map[string]any{
		"name":         "fixture-app",
		"version":      "0.1.0",
		"dependencies": deps,
	}, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, data, constants.FilePermPrivate))
	return path
}

// WriteInstalled создаёт modulesDir/<pkg>/package.json с версией.
func WriteInstalled(t *testing.T, modulesDir, pkg, version string) {
	t.Helper()
	pkgDir := filepath.Join(modulesDir, pkg)
	require.NoError(t, os.MkdirAll(pkgDir, constants.DirPermStandard))
	data := []byte(`{"name":"` + pkg + `","version":"` + version + `"}`)
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), data, constants.FilePermPrivate))
}

// WriteBuild создаёт каталог сборки с index.html и возвращает его путь.
func WriteBuild(t *testing.T, dir, indexBody string) string {
	t.Helper()
	buildDir := filepath.Join(dir, "build")
	require.NoError(t, os.MkdirAll(buildDir, constants.DirPermStandard))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, constants.IndexDocument), []byte(indexBody), constants.FilePermPrivate))
	return buildDir
}

package compat

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
)

type fixture struct {
	root     string
	manifest string
	modules  string
}

func newFixture(t *testing.T, react, reactDOM string) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root:     root,
		manifest: filepath.Join(root, "package.json"),
		modules:  filepath.Join(root, "node_modules"),
	}
	body := fmt.Sprintf(`{"name":"web","dependencies":{"react":%q,"react-dom":%q}}`, react, reactDOM)
	require.NoError(t, os.WriteFile(f.manifest, []byte(body), 0o600))
	return f
}

func (f *fixture) install(t *testing.T, pkg, content string) {
	t.Helper()
	dir := filepath.Join(f.modules, pkg)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o600))
}

func TestValidator_ScenarioA_Critical(t *testing.T) {
	f := newFixture(t, "19.0.0", "17.0.2")

	report, err := NewValidator(f.manifest, f.modules, nil).Run()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrDeclaredIncompatible, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.CategoryCompatibility, apperrors.Category(apperrors.CodeOf(err)))
	assert.Equal(t, LevelCritical, report.Declared.Level)
	assert.Len(t, report.Declared.Remedies, 2)
}

func TestValidator_ScenarioB_Pass(t *testing.T) {
	f := newFixture(t, "18.2.0", "18.2.0")

	report, err := NewValidator(f.manifest, f.modules, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, LevelPass, report.Declared.Level)
	assert.Empty(t, report.Warnings)
	assert.Nil(t, report.Installed)
	assert.NotEmpty(t, report.InstalledSkipReason)
}

func TestValidator_WarningIsNotFatal(t *testing.T) {
	f := newFixture(t, "^18.2.0", "^17.0.2")

	report, err := NewValidator(f.manifest, f.modules, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, LevelWarning, report.Declared.Level)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "differs")
}

func TestValidator_MalformedVersion(t *testing.T) {
	for _, pair := range [][2]string{{"latest", "18.2.0"}, {"18.2.0", "next"}, {"", ""}} {
		f := newFixture(t, pair[0], pair[1])
		_, err := NewValidator(f.manifest, f.modules, nil).Run()
		require.Error(t, err, "pair %v", pair)
		assert.Equal(t, apperrors.ErrVersionParse, apperrors.CodeOf(err))
	}
}

func TestValidator_DependencyMissing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dependencies":{"react":"18.2.0"}}`), 0o600))

	_, err := NewValidator(path, "", nil).Run()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrDependencyMissing, apperrors.CodeOf(err))
}

func TestValidator_ManifestMissing(t *testing.T) {
	_, err := NewValidator(filepath.Join(t.TempDir(), "package.json"), "", nil).Run()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrManifestMissing, apperrors.CodeOf(err))
}

func TestValidator_InstalledIncompatible(t *testing.T) {
	f := newFixture(t, "^18.0.0", "^18.0.0")
	f.install(t, "react", `{"version":"19.0.0"}`)
	f.install(t, "react-dom", `{"version":"17.0.2"}`)

	report, err := NewValidator(f.manifest, f.modules, nil).Run()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInstalledIncompatible, apperrors.CodeOf(err))
	require.NotNil(t, report.Installed)
	assert.Contains(t, report.Installed.Message, "installed packages")
}

func TestValidator_InstalledCompatible(t *testing.T) {
	f := newFixture(t, "18.2.0", "18.2.0")
	f.install(t, "react", `{"version":"18.3.1"}`)
	f.install(t, "react-dom", `{"version":"18.3.1"}`)

	report, err := NewValidator(f.manifest, f.modules, nil).Run()
	require.NoError(t, err)
	require.NotNil(t, report.Installed)
	assert.Equal(t, LevelPass, report.Installed.Level)
}

func TestValidator_InstalledPartialIsSkippedSilently(t *testing.T) {
	f := newFixture(t, "18.2.0", "18.2.0")
	f.install(t, "react", `{"version":"19.0.0"}`)

	report, err := NewValidator(f.manifest, f.modules, nil).Run()
	require.NoError(t, err)
	assert.Nil(t, report.Installed)
	assert.Empty(t, report.Warnings)
}

func TestValidator_InstalledUnreadableIsSoftWarning(t *testing.T) {
	f := newFixture(t, "18.2.0", "18.2.0")
	f.install(t, "react", `{"version":`)
	f.install(t, "react-dom", `{"version":"17.0.2"}`)

	report, err := NewValidator(f.manifest, f.modules, nil).Run()
	require.NoError(t, err)
	assert.Nil(t, report.Installed)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "could not verify installed react")
}

func TestValidator_Idempotent(t *testing.T) {
	f := newFixture(t, "19.1.0", "17.0.2")
	v := NewValidator(f.manifest, f.modules, nil)

	r1, err1 := v.Run()
	r2, err2 := v.Run()
	assert.Equal(t, r1, r2)
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestReport_CriticalAndFixLines(t *testing.T) {
	f := newFixture(t, "19.0.0", "17.0.2")
	report, err := NewValidator(f.manifest, f.modules, nil).Run()
	require.Error(t, err)

	require.Same(t, &report.Declared, report.Critical())
	lines := report.FixLines()
	require.Len(t, lines, len(Remedies))
	for i, remedy := range Remedies {
		assert.Equal(t, "Fix: "+remedy, lines[i])
	}

	installed := newFixture(t, "^18.2.0", "^18.2.0")
	installed.install(t, "react", `{"version":"19.0.0"}`)
	installed.install(t, "react-dom", `{"version":"17.0.2"}`)
	report, err = NewValidator(installed.manifest, installed.modules, nil).Run()
	require.Error(t, err)
	assert.Same(t, report.Installed, report.Critical())
	assert.Len(t, report.FixLines(), len(Remedies))

	var none *Report
	assert.Nil(t, none.Critical())
	assert.Nil(t, none.FixLines())

	pass := newFixture(t, "18.2.0", "18.2.0")
	report, err = NewValidator(pass.manifest, pass.modules, nil).Run()
	require.NoError(t, err)
	assert.Nil(t, report.Critical())
	assert.Empty(t, report.FixLines())
}

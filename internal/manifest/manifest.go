// Package manifest читает package.json проекта и метаданные
// установленных пакетов из node_modules.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
)

//go:embed schema/package.schema.json
var schemaJSON []byte

const schemaURL = "package.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Manifest - поля package.json, нужные для проверки версий.
// После загрузки не изменяется.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`

	// Path - путь, из которого манифест был прочитан.
	Path string `json:"-"`
}

// Lookup возвращает спецификатор версии пакета name.
// Сначала ищет в dependencies, затем в devDependencies.
func (m *Manifest) Lookup(name string) (string, bool) {
	if spec, ok := m.Dependencies[name]; ok {
		return spec, true
	}
	spec, ok := m.DevDependencies[name]
	return spec, ok
}

// Require возвращает спецификаторы для всех names или ConfigurationError
// с кодом CONFIG.DEPENDENCY_MISSING для первого отсутствующего.
func (m *Manifest) Require(names ...string) (map[string]string, error) {
	specs := make(map[string]string, len(names))
	for _, name := range names {
		spec, ok := m.Lookup(name)
		if !ok {
			return nil, apperrors.NewAppError(apperrors.ErrDependencyMissing,
				fmt.Sprintf("зависимость %q не объявлена в %s", name, m.Path), nil)
		}
		specs[name] = spec
	}
	return specs, nil
}

// Load читает и валидирует манифест по пути path.
// Файлы с BOM (UTF-8, UTF-16LE/BE) декодируются прозрачно.
func Load(path string) (*Manifest, error) {
	raw, err := readDecoded(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewAppError(apperrors.ErrManifestMissing,
				fmt.Sprintf("манифест %s не найден", path), err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrManifestMissing,
			fmt.Sprintf("не удалось прочитать манифест %s", path), err)
	}

	if err := validate(raw); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrManifestInvalid,
			fmt.Sprintf("манифест %s некорректен", path), err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrManifestInvalid,
			fmt.Sprintf("манифест %s некорректен", path), err)
	}
	m.Path = path
	return &m, nil
}

// readDecoded читает файл, снимая BOM и перекодируя UTF-16 в UTF-8.
func readDecoded(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // путь задаётся конфигурацией
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return io.ReadAll(transform.NewReader(f, decoder))
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("встроенная схема повреждена: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validate проверяет что raw - JSON-объект с map[string]string
// в dependencies и devDependencies.
func validate(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("невалидный JSON: %w", err)
	}
	return schema.Validate(inst)
}

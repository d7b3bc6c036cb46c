package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotInstalled возвращается когда метаданных пакета нет на диске.
var ErrNotInstalled = errors.New("пакет не установлен")

type installedPackage struct {
	Version string `json:"version"`
}

// InstalledPath возвращает путь к package.json установленного пакета.
func InstalledPath(modulesDir, pkg string) string {
	return filepath.Join(modulesDir, pkg, "package.json")
}

// ReadInstalledVersion читает поле version из
// <modulesDir>/<pkg>/package.json.
// Отсутствующий файл даёт ErrNotInstalled; нечитаемый или
// некорректный файл даёт другую ошибку.
func ReadInstalledVersion(modulesDir, pkg string) (string, error) {
	path := InstalledPath(modulesDir, pkg)
	raw, err := readDecoded(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNotInstalled)
		}
		return "", fmt.Errorf("чтение %s: %w", path, err)
	}

	var p installedPackage
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", fmt.Errorf("разбор %s: %w", path, err)
	}
	if p.Version == "" {
		return "", fmt.Errorf("в %s нет поля version", path)
	}
	return p.Version, nil
}

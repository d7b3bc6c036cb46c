package constants

import "os"

// Права на создаваемые каталоги и файлы (каталог логов, тестовые фикстуры).
const (
	// DirPermStandard - owner rwx, group r-x
	DirPermStandard os.FileMode = 0750
	// FilePermPrivate - owner rw
	FilePermPrivate os.FileMode = 0600
)

// Package versioning извлекает числовые тройки версий из строк
// спецификаторов зависимостей ("^18.2.0", "~19.0.0-rc.1", "npm:react@17.0.2").
package versioning

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// triplePattern находит первую тройку major.minor.patch в любом месте строки.
var triplePattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

// VersionTriple - числовая версия major.minor.patch.
type VersionTriple struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

// String возвращает версию в виде "major.minor.patch".
func (v VersionTriple) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseError возвращается когда в строке нет тройки версии.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("не удалось извлечь версию из %q", e.Input)
}

// Parse извлекает первую тройку версии из s.
// Диапазоны и префиксы игнорируются: "^18.2.0" → 18.2.0,
// ">=16.8.0 <19.0.0" → 16.8.0. Пре-релизные суффиксы отбрасываются,
// ведущие нули допускаются: "18.02.0" → 18.2.0.
func Parse(s string) (VersionTriple, error) {
	m := triplePattern.FindStringSubmatch(s)
	if m == nil {
		return VersionTriple{}, &ParseError{Input: s}
	}

	var parts [3]uint64
	for i, group := range m[1:] {
		n, err := strconv.ParseUint(group, 10, 64)
		if err != nil {
			// Компонент не помещается в uint64.
			return VersionTriple{}, fmt.Errorf("%w: %v", &ParseError{Input: s}, err)
		}
		parts[i] = n
	}

	v := semver.New(parts[0], parts[1], parts[2], "", "")
	return VersionTriple{Major: v.Major(), Minor: v.Minor(), Patch: v.Patch()}, nil
}

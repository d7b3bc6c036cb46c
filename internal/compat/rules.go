// Package compat проверяет совместимость версий UI-библиотеки и рендерера.
//
// Таблица правил намеренно узкая: единственная фатальная пара -
// react 19 с react-dom 17. Любое другое расхождение мажоров - предупреждение.
package compat

import (
	"fmt"

	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/versioning"
)

// Level - уровень вердикта.
type Level string

// Уровни вердикта.
const (
	LevelPass     Level = "pass"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Source - откуда взяты версии.
type Source string

// Источники версий.
const (
	SourceDeclared  Source = "declared"
	SourceInstalled Source = "installed"
)

// Verdict - результат применения таблицы правил к паре версий.
type Verdict struct {
	Level    Level                    `json:"level"`
	Library  versioning.VersionTriple `json:"library"`
	Renderer versioning.VersionTriple `json:"renderer"`
	Source   Source                   `json:"source"`
	Rule     string                   `json:"rule,omitempty"`
	Message  string                   `json:"message"`
	Remedies []string                 `json:"remedies,omitempty"`
}

// Remedies - фиксированные рекомендации для пары 19/17.
var Remedies = []string{
	fmt.Sprintf("upgrade %s to %d: npm install %s@%d",
		constants.PkgRenderer, constants.IncompatibleLibraryMajor,
		constants.PkgRenderer, constants.IncompatibleLibraryMajor),
	fmt.Sprintf("or downgrade %s to %d: npm install %s@%d",
		constants.PkgLibrary, constants.IncompatibleRendererMajor,
		constants.PkgLibrary, constants.IncompatibleRendererMajor),
}

// Hint - подсказка, которую smoke-test печатает при любом провале.
var Hint = fmt.Sprintf("this is usually caused by %s %d.x running with %s %d.x; align the majors and rebuild",
	constants.PkgLibrary, constants.IncompatibleLibraryMajor,
	constants.PkgRenderer, constants.IncompatibleRendererMajor)

type rule struct {
	name string
	// installed - применяется ли правило к установленным пакетам.
	installed bool
	level     Level
	match     func(lib, ren versioning.VersionTriple) bool
	message   func(lib, ren versioning.VersionTriple, src Source) string
	remedies  []string
}

// rules применяются по порядку, первое совпадение побеждает.
var rules = []rule{
	{
		name:      "known-incompatible",
		installed: true,
		level:     LevelCritical,
		match:     IsKnownIncompatible,
		message:   criticalMessage,
		remedies:  Remedies,
	},
	{
		name:  "major-mismatch",
		level: LevelWarning,
		match: func(lib, ren versioning.VersionTriple) bool { return lib.Major != ren.Major },
		message: func(lib, ren versioning.VersionTriple, _ Source) string {
			return fmt.Sprintf("%s major %d differs from %s major %d",
				constants.PkgLibrary, lib.Major, constants.PkgRenderer, ren.Major)
		},
	},
}

// IsKnownIncompatible сообщает, является ли пара известной несовместимой (19/17).
// Минорные и патч-версии не учитываются.
func IsKnownIncompatible(lib, ren versioning.VersionTriple) bool {
	return lib.Major == constants.IncompatibleLibraryMajor &&
		ren.Major == constants.IncompatibleRendererMajor
}

func criticalMessage(lib, ren versioning.VersionTriple, src Source) string {
	if src == SourceInstalled {
		return fmt.Sprintf("CRITICAL: incompatible versions detected in installed packages: %s %s with %s %s",
			constants.PkgLibrary, lib, constants.PkgRenderer, ren)
	}
	return fmt.Sprintf("CRITICAL: %s %s is incompatible with %s %s",
		constants.PkgLibrary, lib, constants.PkgRenderer, ren)
}

// Evaluate применяет таблицу правил к паре версий.
// Для SourceInstalled проверяется только известная несовместимая пара.
func Evaluate(lib, ren versioning.VersionTriple, src Source) Verdict {
	v := Verdict{Level: LevelPass, Library: lib, Renderer: ren, Source: src}
	for _, r := range rules {
		if src == SourceInstalled && !r.installed {
			continue
		}
		if !r.match(lib, ren) {
			continue
		}
		v.Level = r.level
		v.Rule = r.name
		v.Message = r.message(lib, ren, src)
		v.Remedies = r.remedies
		return v
	}
	v.Message = fmt.Sprintf("%s %s and %s %s are compatible",
		constants.PkgLibrary, lib, constants.PkgRenderer, ren)
	return v
}

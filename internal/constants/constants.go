// Package constants содержит константы, используемые в проекте frontcheck.
// Константы сгруппированы по функциональному назначению.
package constants

import "time"

// Константы сообщений приложения
const (
	// MsgAppExit - сообщение о завершении работы программы
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing - сообщение об обработке ошибки
	MsgErrProcessing = "Обработка ошибки"
)

// Константы действий (команд)
const (
	// ActValidateVersions - проверка совместимости версий react и react-dom
	ActValidateVersions = "validate-versions"
	// ActCheckReact - deprecated алиас для validate-versions
	ActCheckReact = "check-react"
	// ActSmokeTest - smoke-тест production сборки
	ActSmokeTest = "smoke-test"
	// ActTestRuntime - deprecated алиас для smoke-test
	ActTestRuntime = "test-runtime"
	// ActPreBuild - конвейер проверок перед сборкой
	ActPreBuild = "pre-build"
	// ActServe - встроенный статический сервер
	ActServe = "serve"
	// ActVersion - вывод информации о версии
	ActVersion = "version"
	// ActHelp - вывод списка команд
	ActHelp = "help"
)

// APIVersion - версия формата JSON-вывода
const APIVersion = "v1"

// Имена пакетов, совместимость которых проверяет валидатор.
const (
	// PkgLibrary - UI-библиотека
	PkgLibrary = "react"
	// PkgRenderer - рендерер для DOM
	PkgRenderer = "react-dom"
)

// Мажорные версии известной несовместимой пары.
const (
	// IncompatibleLibraryMajor - мажорная версия react
	IncompatibleLibraryMajor = 19
	// IncompatibleRendererMajor - мажорная версия react-dom
	IncompatibleRendererMajor = 17
)

// Пути по умолчанию относительно каталога проекта.
const (
	// DefaultManifestFile - манифест проекта
	DefaultManifestFile = "package.json"
	// DefaultModulesDir - каталог установленных пакетов
	DefaultModulesDir = "node_modules"
	// DefaultBuildDir - каталог production сборки
	DefaultBuildDir = "build"
	// DefaultAppConfigFile - необязательный файл конфигурации приложения
	DefaultAppConfigFile = "frontcheck.yaml"
	// IndexDocument - корневой HTML-документ сборки
	IndexDocument = "index.html"
)

// Параметры smoke-теста по умолчанию.
const (
	// DefaultServerPort - фиксированный порт статического сервера
	DefaultServerPort = 3000
	// DefaultWarmup - пауза перед запросом
	DefaultWarmup = 2 * time.Second
	// DefaultRequestTimeout - таймаут HTTP-запроса
	DefaultRequestTimeout = 5 * time.Second
	// DefaultBudget - общий бюджет времени smoke-теста
	DefaultBudget = 10 * time.Second
	// DefaultStopGrace - время ожидания завершения сервера после interrupt
	DefaultStopGrace = 3 * time.Second
)

// Режимы ожидания готовности сервера.
const (
	// WaitModeDelay - фиксированная пауза
	WaitModeDelay = "delay"
	// WaitModePoll - опрос до готовности в пределах той же паузы
	WaitModePoll = "poll"
)

// Коды завершения процесса.
const (
	// ExitOK - проверка пройдена
	ExitOK = 0
	// ExitFailure - проверка не пройдена
	ExitFailure = 1
	// ExitUnknownCommand - неизвестная команда
	ExitUnknownCommand = 2
)

// Переменные окружения, которые читаются вне пакета config.
const (
	// EnvCommand - имя команды для диспетчера
	EnvCommand = "BR_COMMAND"
	// EnvDryRun - режим dry-run
	EnvDryRun = "BR_DRY_RUN"
	// EnvConfigFile - путь к YAML-конфигурации приложения
	EnvConfigFile = "BR_CONFIG_FILE"
)

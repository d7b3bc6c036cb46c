// Package apperrors предоставляет структурированные ошибки приложения.
// Переименован из errors чтобы избежать конфликта со стандартной библиотекой.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
// Позволяет grep по категориям: `grep "TRANSPORT\."` для всех сетевых ошибок.
const (
	// Category: CONFIG - манифест и конфигурация приложения.
	ErrConfigLoad        = "CONFIG.LOAD_FAILED"
	ErrManifestMissing   = "CONFIG.MANIFEST_MISSING"
	ErrManifestInvalid   = "CONFIG.MANIFEST_INVALID"
	ErrDependencyMissing = "CONFIG.DEPENDENCY_MISSING"

	// Category: VERSION - разбор строк версий.
	ErrVersionParse = "VERSION.PARSE_FAILED"

	// Category: COMPAT - известная несовместимая пара версий.
	ErrDeclaredIncompatible  = "COMPAT.DECLARED_INCOMPATIBLE"
	ErrInstalledIncompatible = "COMPAT.INSTALLED_INCOMPATIBLE"

	// Category: PRECONDITION - отсутствует артефакт сборки.
	ErrBuildMissing = "PRECONDITION.BUILD_MISSING"

	// Category: TRANSPORT - запуск сервера и HTTP-запрос.
	ErrServerStart    = "TRANSPORT.SERVER_START_FAILED"
	ErrRequestFailed  = "TRANSPORT.REQUEST_FAILED"
	ErrRequestTimeout = "TRANSPORT.TIMEOUT"

	// Category: CONTENT - содержимое ответа.
	ErrRootMissing  = "CONTENT.ROOT_MISSING"
	ErrRuntimeError = "CONTENT.RUNTIME_ERROR"

	// Category: COMMAND - ошибки выполнения команд.
	ErrCommandNotFound = "COMMAND.NOT_FOUND"
)

// Категории ошибок в терминах таксономии отчёта.
const (
	CategoryConfiguration = "ConfigurationError"
	CategoryParse         = "ParseError"
	CategoryCompatibility = "CompatibilityError"
	CategoryPrecondition  = "PreconditionError"
	CategoryTransport     = "TransportError"
	CategoryContent       = "ContentError"
	CategoryCommand       = "CommandError"
	CategoryUnknown       = "UnknownError"
)

var categoryByPrefix = map[string]string{
	"CONFIG":       CategoryConfiguration,
	"VERSION":      CategoryParse,
	"COMPAT":       CategoryCompatibility,
	"PRECONDITION": CategoryPrecondition,
	"TRANSPORT":    CategoryTransport,
	"CONTENT":      CategoryContent,
	"COMMAND":      CategoryCommand,
}

// AppError представляет структурированную ошибку приложения.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrManifestMissing,
//	    "манифест проекта не найден",
//	    err)
type AppError struct {
	// Code - машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`
	// Message - человекочитаемое описание ошибки.
	Message string `json:"message"`
	// Cause - wrapped оригинальная ошибка.
	// Не сериализуется в JSON.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Category возвращает категорию таксономии по коду ошибки.
func Category(code string) string {
	prefix, _, _ := strings.Cut(code, ".")
	if c, ok := categoryByPrefix[prefix]; ok {
		return c
	}
	return CategoryUnknown
}

// CodeOf извлекает код из первой AppError в цепочке.
// Возвращает пустую строку если AppError в цепочке нет.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode сообщает содержит ли цепочка err AppError с кодом code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

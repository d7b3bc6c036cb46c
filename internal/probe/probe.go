// Package probe выполняет один HTTP GET к корню собранного приложения
// и проверяет разметку на признаки сбоя рендеринга.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
)

// rootMarker находит атрибут id="root" в любой форме: id=root, id='root', ID = "root".
// Перед id должен стоять пробельный символ, чтобы data-id="root" не совпадал.
var rootMarker = regexp.MustCompile(`(?i)(?:^|\s)id\s*=\s*["']?root(?:["'\s/>]|$)`)

// Signatures - подстроки, указывающие на ошибку рантайма в отданной разметке.
var Signatures = []string{
	"Cannot read properties of undefined",
	"__SECRET_INTERNALS_DO_NOT_USE_OR_YOU_WILL_BE_FIRED",
	"React error",
	"TypeError",
}

// Сообщения ContentError.
const (
	MsgRootMissing  = "app root element not found"
	MsgRuntimeError = "runtime error detected"
)

// Report - результат одной проверки.
type Report struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code,omitempty"`
	BodyBytes  int    `json:"body_bytes"`
	DurationMs int64  `json:"duration_ms"`
	RootFound  bool   `json:"root_found"`
	Signature  string `json:"signature,omitempty"`
}

// Prober выполняет GET с собственным таймаутом запроса.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// New создаёт Prober. Nil client заменяется клиентом без keep-alive,
// чтобы после проверки не оставалось открытых соединений.
func New(client *http.Client, timeout time.Duration) *Prober {
	if client == nil {
		client = &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	}
	return &Prober{client: client, timeout: timeout}
}

// Check выполняет запрос и анализирует тело ответа.
// Report возвращается всегда, даже вместе с ошибкой.
func (p *Prober) Check(ctx context.Context, url string) (*Report, error) {
	report := &Report{URL: url}
	start := time.Now()
	defer func() { report.DurationMs = time.Since(start).Milliseconds() }()

	body, status, err := p.fetch(ctx, url)
	report.StatusCode = status
	if err != nil {
		return report, err
	}
	report.BodyBytes = len(body)

	return report, Inspect(body, report)
}

func (p *Prober) fetch(ctx context.Context, url string) (string, int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, apperrors.NewAppError(apperrors.ErrRequestFailed,
			fmt.Sprintf("invalid probe URL %s", url), err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", 0, classify(url, p.timeout, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, classify(url, p.timeout, err)
	}
	return string(raw), resp.StatusCode, nil
}

// classify отличает таймаут от прочих сетевых ошибок.
func classify(url string, timeout time.Duration, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewAppError(apperrors.ErrRequestTimeout,
			fmt.Sprintf("request to %s timed out after %s", url, timeout), err)
	}
	return apperrors.NewAppError(apperrors.ErrRequestFailed,
		fmt.Sprintf("request to %s failed", url), err)
}

// Inspect проверяет тело ответа: сначала наличие корневого элемента,
// затем сигнатуры ошибок. Заполняет report, если он не nil.
func Inspect(body string, report *Report) error {
	if report == nil {
		report = &Report{}
	}
	report.RootFound = HasRoot(body)
	if !report.RootFound {
		return apperrors.NewAppError(apperrors.ErrRootMissing, MsgRootMissing, nil)
	}
	if sig := FindSignature(body); sig != "" {
		report.Signature = sig
		return apperrors.NewAppError(apperrors.ErrRuntimeError,
			fmt.Sprintf("%s: %q", MsgRuntimeError, sig), nil)
	}
	return nil
}

// HasRoot сообщает, содержит ли разметка корневой элемент приложения.
func HasRoot(body string) bool {
	return rootMarker.MatchString(body)
}

// FindSignature возвращает первую найденную сигнатуру ошибки или "".
func FindSignature(body string) string {
	for _, sig := range Signatures {
		if strings.Contains(body, sig) {
			return sig
		}
	}
	return ""
}

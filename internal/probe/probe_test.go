package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func serveBody(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHasRoot(t *testing.T) {
	positive := []string{
		`<div id="root"></div>`,
		`<div id='root'></div>`,
		`<div id=root></div>`,
		`<div ID = "root" class="app"></div>`,
		`<main class="x" id="root"/>`,
		`<div id=root`,
		"<div\n\tid=\"root\">",
	}
	for _, body := range positive {
		assert.True(t, HasRoot(body), body)
	}

	negative := []string{
		``,
		`<div id="app"></div>`,
		`<div id="rootless"></div>`,
		`<div class="root"></div>`,
		`<div data-id="root"></div>`,
		`<div aria-id=root>`,
	}
	for _, body := range negative {
		assert.False(t, HasRoot(body), body)
	}
}

func TestFindSignature(t *testing.T) {
	assert.Empty(t, FindSignature(`<div id="root"></div>`))
	assert.Equal(t, "TypeError", FindSignature(`<script>TypeError: x</script>`))
	assert.Equal(t, "React error", FindSignature(`Minified React error #31`))
	assert.Equal(t, "Cannot read properties of undefined",
		FindSignature(`Cannot read properties of undefined (reading 'ReactCurrentDispatcher')`))
	assert.Equal(t, "__SECRET_INTERNALS_DO_NOT_USE_OR_YOU_WILL_BE_FIRED",
		FindSignature(`a.__SECRET_INTERNALS_DO_NOT_USE_OR_YOU_WILL_BE_FIRED.ReactCurrentOwner`))
}

func TestInspect_Order(t *testing.T) {
	// Отсутствие корня проверяется раньше сигнатур.
	err := Inspect(`TypeError`, nil)
	assert.Equal(t, apperrors.ErrRootMissing, apperrors.CodeOf(err))

	report := &Report{}
	err = Inspect(`<div id="root"></div><pre>TypeError</pre>`, report)
	assert.Equal(t, apperrors.ErrRuntimeError, apperrors.CodeOf(err))
	assert.True(t, report.RootFound)
	assert.Equal(t, "TypeError", report.Signature)
}

func TestCheck_Pass(t *testing.T) {
	srv := serveBody(t, `<!doctype html><html><body><div id="root"></div></body></html>`)

	report, err := New(srv.Client(), time.Second).Check(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, report.StatusCode)
	assert.True(t, report.RootFound)
	assert.Empty(t, report.Signature)
	assert.Positive(t, report.BodyBytes)
}

func TestCheck_RootMissing(t *testing.T) {
	srv := serveBody(t, `<html><body><div id="app"></div></body></html>`)

	report, err := New(nil, time.Second).Check(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRootMissing, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), MsgRootMissing)
	assert.False(t, report.RootFound)
}

func TestCheck_RuntimeError(t *testing.T) {
	srv := serveBody(t, `<div id="root"></div><script>throw new TypeError("x")</script>`)

	_, err := New(nil, time.Second).Check(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRuntimeError, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), MsgRuntimeError)
}

func TestCheck_ConnectionRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	_, err = New(nil, time.Second).Check(context.Background(), "http://"+addr+"/")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRequestFailed, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.CategoryTransport, apperrors.Category(apperrors.CodeOf(err)))
}

func TestCheck_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := New(nil, 150*time.Millisecond).Check(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRequestTimeout, apperrors.CodeOf(err))
	assert.Less(t, time.Since(start), 3*time.Second, "запрос должен быть прерван по таймауту")
}

func TestCheck_ParentBudgetExpired(t *testing.T) {
	srv := serveBody(t, `<div id="root"></div>`)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := New(nil, time.Second).Check(ctx, srv.URL)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRequestTimeout, apperrors.CodeOf(err))
}

func TestCheck_InvalidURL(t *testing.T) {
	_, err := New(nil, time.Second).Check(context.Background(), "://bad")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRequestFailed, apperrors.CodeOf(err))
}

func TestWaitReady(t *testing.T) {
	srv := serveBody(t, "ok")
	assert.True(t, WaitReady(context.Background(), nil, srv.URL, time.Second))
}

func TestWaitReady_NeverReady(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	start := time.Now()
	assert.False(t, WaitReady(context.Background(), nil, "http://"+addr, 300*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond)
}

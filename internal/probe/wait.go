package probe

import (
	"context"
	"net/http"
	"time"
)

const pollInterval = 100 * time.Millisecond

// WaitReady опрашивает url до первого ответа с любым статусом
// или до истечения budget. Возвращает false, если сервер так и не ответил.
// Ответ не анализируется: это только ожидание готовности.
func WaitReady(ctx context.Context, client *http.Client, url string, budget time.Duration) bool {
	if client == nil {
		client = &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if ping(ctx, client, url) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

func ping(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}

// Package urlutil содержит утилиты для построения и безопасного логирования URL.
package urlutil

import (
	"net"
	"net/url"
	"strconv"
)

// MaskURL оставляет только scheme и host: path, query и userinfo
// могут содержать токены.
// Пример: "http://user:pw@pushgateway:9091/metrics" → "http://pushgateway:9091/***"
func MaskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "***invalid-url***"
	}
	return u.Scheme + "://" + u.Host + "/***"
}

// RootURL возвращает "http://<host>:<port>/".
// IPv6-адреса берутся в квадратные скобки.
func RootURL(host string, port int) string {
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/",
	}
	return u.String()
}

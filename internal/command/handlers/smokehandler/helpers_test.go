package smokehandler

import (
	"net"
	"net/url"
)

func splitHostPort(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}
	return net.SplitHostPort(u.Host)
}

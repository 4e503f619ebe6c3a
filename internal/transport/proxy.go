package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpproxy"
)

// ProxyFunc is the proxy selector used by the HTTP transport.
type ProxyFunc func(*http.Request) (*url.URL, error)

// explicitProxy routes every request through address. Credentials embedded in
// the address are only forwarded when useDefaultCredentials is set.
func explicitProxy(address string, useDefaultCredentials bool) (ProxyFunc, error) {
	proxyURL, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy address [%s]: %w", address, err)
	}
	if proxyURL.Scheme == "" || proxyURL.Host == "" {
		return nil, fmt.Errorf("invalid proxy address [%s]: scheme and host are required", address)
	}
	if !useDefaultCredentials {
		proxyURL.User = nil
	}
	return http.ProxyURL(proxyURL), nil
}

// environmentProxy consults HTTP_PROXY, HTTPS_PROXY and NO_PROXY for every
// request. Malformed proxy settings and lookup failures are ignored and the
// request goes direct.
func environmentProxy(cfg *httpproxy.Config) ProxyFunc {
	sanitized := *cfg
	if !isValidProxy(sanitized.HTTPProxy) {
		sanitized.HTTPProxy = ""
	}
	if !isValidProxy(sanitized.HTTPSProxy) {
		sanitized.HTTPSProxy = ""
	}
	lookup := sanitized.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		proxyURL, err := lookup(req.URL)
		if err != nil {
			return nil, nil
		}
		return proxyURL, nil
	}
}

// isValidProxy mirrors how httpproxy parses a setting: a value without a
// known scheme is retried with http:// prepended, so a value that already
// carries a scheme separator must parse on its own.
func isValidProxy(raw string) bool {
	if raw == "" {
		return true
	}
	proxyURL, err := url.Parse(raw)
	if err == nil && isProxyScheme(proxyURL.Scheme) {
		return proxyURL.Host != ""
	}
	if strings.Contains(raw, "://") {
		return false
	}
	proxyURL, err = url.Parse("http://" + raw)
	return err == nil && proxyURL.Host != ""
}

func isProxyScheme(scheme string) bool {
	switch scheme {
	case "http", "https", "socks5":
		return true
	}
	return false
}

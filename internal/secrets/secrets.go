// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials and network settings from a directory of
// plain-text files. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
// Nothing sensitive is compiled into the binary.
//
// Supported key files: http-proxy, https-proxy, no-proxy.
package secrets

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/http/httpproxy"
)

// Proxy secret key names.
const (
	KeyHTTPProxy  = "http-proxy"
	KeyHTTPSProxy = "https-proxy"
	KeyNoProxy    = "no-proxy"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ProxyConfig layers proxy secrets over the HTTP_PROXY, HTTPS_PROXY and
// NO_PROXY environment variables. A secret wins over the environment.
func ProxyConfig(s map[string]string) *httpproxy.Config {
	cfg := httpproxy.FromEnvironment()
	if v, ok := s[KeyHTTPProxy]; ok {
		cfg.HTTPProxy = v
	}
	if v, ok := s[KeyHTTPSProxy]; ok {
		cfg.HTTPSProxy = v
	}
	if v, ok := s[KeyNoProxy]; ok {
		cfg.NoProxy = v
	}
	return cfg
}

// ProxyFunc returns a function suitable for http.Transport.Proxy built from
// ProxyConfig(s).
func ProxyFunc(s map[string]string) func(*http.Request) (*url.URL, error) {
	fn := ProxyConfig(s).ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return fn(req.URL)
	}
}

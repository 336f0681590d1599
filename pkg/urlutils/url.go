// Package urlutils provides URL helpers for building backend endpoints.
package urlutils

import (
	"fmt"
	"net/url"
	"strings"
)

// IsValidURL checks that urlStr is an absolute http or https URL
func IsValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ResolveURL appends endpointPath to the path of baseURL.
// An absolute endpointPath is returned unchanged. A path prefix on the base
// (e.g. a reverse-proxy mount point) is kept.
func ResolveURL(baseURL, endpointPath string) (string, error) {
	rel, err := url.Parse(endpointPath)
	if err != nil {
		return "", err
	}

	if rel.IsAbs() {
		return endpointPath, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	if base.Host == "" {
		return "", fmt.Errorf("base URL %q has no host", baseURL)
	}

	resolved := *base
	resolved.Path = strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(rel.Path, "/")
	resolved.RawPath = ""
	resolved.RawQuery = rel.RawQuery
	resolved.Fragment = ""
	return resolved.String(), nil
}

package eshttpx

import (
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strings"
)

// RequestBuilder merges transport-level defaults onto an inbound
// request to produce the request actually dispatched. The inbound
// request is never modified.
type RequestBuilder struct {
	DefaultHeaders http.Header
	UserAgent      string
	ClientMeta     string
	BasicAuthUser  string
	BasicAuthPass  string
}

// BuildRequest clones req and decorates the clone. The endpoint is the
// base URL of the selected node; it is only applied when the inbound
// request does not already carry an absolute URI. An existing query
// string is preserved unchanged.
func (b RequestBuilder) BuildRequest(req *http.Request, endpoint string) (*http.Request, error) {
	out := req.Clone(req.Context())

	// Each attempt needs its own body so a retry does not replay a
	// consumed reader, and so the caller's request stays untouched.
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		out.Body = body
	}

	if out.URL.Host == "" {
		if endpoint == "" {
			return nil, fmt.Errorf("request %q has no host and no node endpoint was provided", out.URL)
		}

		ep, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to parse node endpoint %q: %w", endpoint, err)
		}

		out.URL.Scheme = ep.Scheme
		out.URL.Host = ep.Host
		if ep.Path != "" && ep.Path != "/" {
			out.URL.Path = strings.TrimSuffix(ep.Path, "/") + out.URL.Path
		}
	}

	for name, values := range b.DefaultHeaders {
		out.Header.Del(name)
		for _, value := range values {
			out.Header.Add(name, value)
		}
	}

	if b.UserAgent != "" {
		out.Header.Set("User-Agent", b.UserAgent)
	}

	if b.ClientMeta != "" {
		out.Header.Set(ClientMetaHeader, b.ClientMeta)
	}

	if b.BasicAuthUser != "" || b.BasicAuthPass != "" {
		out.URL.User = url.UserPassword(b.BasicAuthUser, b.BasicAuthPass)
	}

	return out, nil
}

// FormatUserAgent renders the conventional User-Agent header value for
// a client product, e.g. "myclient/1.0 (linux amd64; Go 1.24.0)".
func FormatUserAgent(product, version string) string {
	return fmt.Sprintf("%s/%s (%s %s; Go %s)",
		product, version,
		runtime.GOOS, runtime.GOARCH,
		strings.TrimPrefix(runtime.Version(), "go"))
}

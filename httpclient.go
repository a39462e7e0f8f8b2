package escorex

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPClient executes a prepared request and returns its response.
// Connectivity failures must be reported as *NetworkError so the
// transport can fail over to another node; every other error is treated
// as a request-level problem and propagated unchanged.
type HTTPClient interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

type HTTPClientOptions struct {
	Logger *zap.Logger

	// Transport overrides the underlying round tripper. When set, the
	// dialer options below are ignored.
	Transport http.RoundTripper

	ConnectTimeout      time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleTimeout         time.Duration
}

type httpClient struct {
	cli    *http.Client
	logger *zap.Logger
}

// NewHTTPClient returns the default HTTPClient backed by net/http.
func NewHTTPClient(opts *HTTPClientOptions) *httpClient {
	if opts == nil {
		opts = &HTTPClientOptions{}
	}

	cli := &httpClient{
		logger: loggerOrNop(opts.Logger),
	}
	cli.setupBaseHTTPClient(opts)

	return cli
}

func (c *httpClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.cli.Do(req.WithContext(ctx))
	if err != nil {
		return nil, classifyTransportError(req, err)
	}

	return resp, nil
}

func (c *httpClient) setupBaseHTTPClient(opts *HTTPClientOptions) {
	if opts.Transport != nil {
		c.cli = &http.Client{
			Transport:     opts.Transport,
			CheckRedirect: redirectAuthPolicy,
		}
		return
	}

	httpDialer := &net.Dialer{
		Timeout:   opts.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	httpTransport := &http.Transport{
		ForceAttemptHTTP2: true,

		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return httpDialer.DialContext(ctx, network, addr)
		},
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleTimeout,
	}

	c.cli = &http.Client{
		Transport:     httpTransport,
		CheckRedirect: redirectAuthPolicy,
	}
}

func redirectAuthPolicy(req *http.Request, via []*http.Request) error {
	// All that we're doing here is setting auth on any redirects.
	// For that reason we can just pull it off the oldest (first) request.
	if len(via) >= 10 {
		// Just duplicate the default behaviour for maximum redirects.
		return errors.New("stopped after 10 redirects")
	}

	oldest := via[0]
	auth := oldest.Header.Get("Authorization")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	return nil
}

// classifyTransportError decides whether a failure is tied to reaching
// the node, in which case failover to another node can help.
func classifyTransportError(req *http.Request, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &NetworkError{Cause: err, Request: req}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &NetworkError{Cause: err, Request: req}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &NetworkError{Cause: err, Request: req}
	}

	return err
}

package escorex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/escorex/escorex/eshttpx"
	"github.com/escorex/escorex/zaputils"
)

type transportState struct {
	headers     http.Header
	userAgent   string
	clientMeta  string
	username    string
	password    string
	hasUserInfo bool
	maxRetries  int
	asyncClient AsyncHTTPClient
	compression CompressionManager
}

func (s *transportState) clone() *transportState {
	next := *s
	next.headers = s.headers.Clone()
	if next.headers == nil {
		next.headers = make(http.Header)
	}
	return &next
}

type TransportOptions struct {
	Logger *zap.Logger

	NodePool    NodePool
	Client      HTTPClient
	AsyncClient AsyncHTTPClient

	// MaxRetries bounds the number of retry attempts after the first
	// one; the default of 0 means a single attempt without retry.
	MaxRetries int

	Headers     http.Header
	Compression CompressionManager
}

// Transport dispatches requests through a pool of candidate nodes,
// failing over to the next node on network failures up to the
// configured retry budget.
//
// The last-request/last-response slots are instance-scoped: concurrent
// synchronous dispatches on one Transport race for them, so callers
// needing those accessors must serialize their dispatches.
type Transport struct {
	logger *zap.Logger
	pool   NodePool
	client HTTPClient

	state        atomic.Pointer[transportState]
	lastRequest  atomic.Pointer[http.Request]
	lastResponse atomic.Pointer[http.Response]
}

func NewTransport(opts *TransportOptions) (*Transport, error) {
	if opts == nil {
		return nil, invalidArgumentError{"must pass options for Transport"}
	}
	if opts.NodePool == nil {
		return nil, invalidArgumentError{"must pass a node pool for Transport"}
	}
	if opts.MaxRetries < 0 {
		return nil, invalidArgumentError{"max retries must be non-negative"}
	}

	client := opts.Client
	if client == nil {
		client = NewHTTPClient(&HTTPClientOptions{
			Logger: opts.Logger,
		})
	}

	t := &Transport{
		logger: loggerOrNop(opts.Logger),
		pool:   opts.NodePool,
		client: client,
	}

	headers := opts.Headers.Clone()
	if headers == nil {
		headers = make(http.Header)
	}
	t.state.Store(&transportState{
		headers:     headers,
		maxRetries:  opts.MaxRetries,
		asyncClient: opts.AsyncClient,
		compression: opts.Compression,
	})

	return t, nil
}

// SendRequest dispatches req against the next node from the pool,
// rotating to another node on network failure until the retry budget is
// spent. Client and protocol failures are never retried.
func (t *Transport) SendRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	state := t.state.Load()

	logger := t.logger.With(zaputils.DispatchID("dispatch-id", uuid.NewString()))

	ctx, span := startDispatchSpan(ctx, req.Method)

	var retries int
	resp, err := t.dispatch(ctx, logger, state, req, &retries)
	if err != nil {
		dispatchFailures.Add(ctx, 1)
	}
	endDispatchSpan(span, retries, err)

	return resp, err
}

func (t *Transport) dispatch(
	ctx context.Context,
	logger *zap.Logger,
	state *transportState,
	req *http.Request,
	retriesOut *int,
) (*http.Response, error) {
	for retry := 0; ; retry++ {
		*retriesOut = retry

		node, err := t.pool.Next()
		if err != nil {
			// Pool exhaustion is immediately fatal, it is not itself
			// subject to the retry budget.
			logger.Error(fmt.Sprintf("Exceeded maximum number of retries (%d)", state.maxRetries),
				zaputils.Attempt("retry", retry))
			return nil, &NoNodeAvailableError{
				Retries:    retry,
				MaxRetries: state.maxRetries,
				Cause:      err,
			}
		}

		out, err := t.buildRequest(req, node, state)
		if err != nil {
			return nil, err
		}

		// The slot has to reflect the attempt even if the attempt fails.
		t.lastRequest.Store(out)

		logger.Info(fmt.Sprintf("Request: %s %s", out.Method, out.URL),
			zaputils.Attempt("retry", retry))
		t.debugRequest(logger, out)

		dispatchAttempts.Add(ctx, 1)
		if retry > 0 {
			dispatchRetries.Add(ctx, 1)
		}

		resp, err := t.client.Do(ctx, out)
		if err == nil {
			t.lastResponse.Store(resp)
			if reporter, ok := t.pool.(DeadNodeReporter); ok {
				reporter.MarkLive(node)
			}

			logger.Info(fmt.Sprintf("Response (retry %d): %d", retry, resp.StatusCode),
				zaputils.StatusCode("status", resp.StatusCode))
			t.debugResponse(logger, resp)

			return resp, nil
		}

		logger.Error(fmt.Sprintf("Retry %d: %s", retry, err))

		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			// A client or protocol failure is a problem with the request
			// itself; switching nodes cannot fix it.
			return nil, err
		}

		if reporter, ok := t.pool.(DeadNodeReporter); ok {
			reporter.MarkDead(node)
		}

		if retry >= state.maxRetries {
			logger.Error(fmt.Sprintf("Exceeded maximum number of retries (%d)", state.maxRetries))
			return nil, &NoNodeAvailableError{
				Retries:    retry,
				MaxRetries: state.maxRetries,
				Cause:      err,
			}
		}
	}
}

// SendRequestAsync decorates req against the pool's next node and hands
// it to the asynchronous client, returning immediately with a pending
// handle. There is no failover in the asynchronous path; retry policy
// belongs to the caller. Resolution is logged when it happens.
func (t *Transport) SendRequestAsync(req *http.Request) *PendingRequest {
	state := t.state.Load()

	logger := t.logger.With(zaputils.DispatchID("dispatch-id", uuid.NewString()))

	node, err := t.pool.Next()
	if err != nil {
		logger.Error(fmt.Sprintf("Exceeded maximum number of retries (%d)", state.maxRetries))
		return resolvedPendingRequest(nil, &NoNodeAvailableError{
			MaxRetries: state.maxRetries,
			Cause:      err,
		})
	}

	out, err := t.buildRequest(req, node, state)
	if err != nil {
		return resolvedPendingRequest(nil, err)
	}

	t.lastRequest.Store(out)

	logger.Info(fmt.Sprintf("Request: %s %s", out.Method, out.URL))
	t.debugRequest(logger, out)

	op := t.asyncClientFor(state).DoAsync(out)
	op.onComplete(func(resp *http.Response, err error) {
		if err != nil {
			logger.Error(fmt.Sprintf("Retry 0: %s", err))
			return
		}

		t.lastResponse.Store(resp)
		logger.Info(fmt.Sprintf("Response (retry 0): %d", resp.StatusCode),
			zaputils.StatusCode("status", resp.StatusCode))
	})

	return op
}

func (t *Transport) buildRequest(req *http.Request, node Node, state *transportState) (*http.Request, error) {
	builder := eshttpx.RequestBuilder{
		DefaultHeaders: state.headers,
		UserAgent:      state.userAgent,
		ClientMeta:     state.clientMeta,
	}
	if state.hasUserInfo {
		builder.BasicAuthUser = state.username
		builder.BasicAuthPass = state.password
	}

	out, err := builder.BuildRequest(req, node.URL().String())
	if err != nil {
		return nil, err
	}

	if state.compression != nil {
		if err := compressRequestBody(out, state.compression); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func compressRequestBody(req *http.Request, compression CompressionManager) error {
	if req.Body == nil || req.Header.Get("Content-Encoding") != "" {
		return nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	_ = req.Body.Close()

	encoded, encoding, err := compression.Compress(body)
	if err != nil {
		return err
	}

	req.Body = io.NopCloser(bytes.NewReader(encoded))
	req.ContentLength = int64(len(encoded))
	if encoding != "" {
		req.Header.Set("Content-Encoding", encoding)
	}

	return nil
}

func (t *Transport) debugRequest(logger *zap.Logger, req *http.Request) {
	if !logger.Core().Enabled(zap.DebugLevel) {
		return
	}

	var body []byte
	if req.GetBody != nil {
		if rc, err := req.GetBody(); err == nil {
			body, _ = io.ReadAll(rc)
			_ = rc.Close()
		}
	}

	logger.Debug(formatHeadersAndBody(req.Header, body))
}

func (t *Transport) debugResponse(logger *zap.Logger, resp *http.Response) {
	if !logger.Core().Enabled(zap.DebugLevel) {
		return
	}

	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	logger.Debug(formatHeadersAndBody(resp.Header, body))
}

func formatHeadersAndBody(headers http.Header, body []byte) string {
	if headers == nil {
		headers = make(http.Header)
	}
	headerJSON, _ := json.Marshal(headers)

	return fmt.Sprintf("Headers: %s\nBody: %s", headerJSON, body)
}

func resolvedPendingRequest(resp *http.Response, err error) *PendingRequest {
	op := newPendingRequest()
	op.resolve(resp, err)
	return op
}

func (t *Transport) asyncClientFor(state *transportState) AsyncHTTPClient {
	if state.asyncClient != nil {
		return state.asyncClient
	}
	return NewAsyncAdapter(t.client, t.logger)
}

func (t *Transport) updateState(fn func(s *transportState)) {
	for {
		oldState := t.state.Load()
		newState := oldState.clone()
		fn(newState)
		if t.state.CompareAndSwap(oldState, newState) {
			return
		}
	}
}

// LastRequest returns the most recent decorated request handed to the
// HTTP client, or nil if no dispatch has occurred.
func (t *Transport) LastRequest() *http.Request {
	return t.lastRequest.Load()
}

// LastResponse returns the most recent response obtained from the HTTP
// client, or nil if none has been obtained.
func (t *Transport) LastResponse() *http.Response {
	return t.lastResponse.Load()
}

// Headers returns a copy of the default headers applied to every
// dispatched request.
func (t *Transport) Headers() http.Header {
	return t.state.Load().headers.Clone()
}

// SetHeader sets a default header applied to every dispatched request,
// replacing any value the inbound request carries under the same name.
func (t *Transport) SetHeader(name, value string) {
	t.updateState(func(s *transportState) {
		s.headers.Set(name, value)
	})
}

// SetUserAgent configures the User-Agent header from a client product
// name and version.
func (t *Transport) SetUserAgent(product, version string) {
	userAgent := eshttpx.FormatUserAgent(product, version)
	t.updateState(func(s *transportState) {
		s.userAgent = userAgent
	})
}

// SetElasticMetaHeader configures the x-elastic-client-meta header from
// a client short-name and version.
func (t *Transport) SetElasticMetaHeader(name, version string) {
	clientMeta := eshttpx.FormatClientMeta(name, version, buildVersion)
	t.updateState(func(s *transportState) {
		s.clientMeta = clientMeta
	})
}

// SetUserInfo configures basic-auth credentials set on the authority of
// every dispatched request URI.
func (t *Transport) SetUserInfo(username, password string) {
	t.updateState(func(s *transportState) {
		s.username = username
		s.password = password
		s.hasUserInfo = true
	})
}

// Retries returns the configured retry budget.
func (t *Transport) Retries() int {
	return t.state.Load().maxRetries
}

// SetRetries configures the retry budget: the number of additional
// attempts after the first one.
func (t *Transport) SetRetries(maxRetries int) error {
	if maxRetries < 0 {
		return invalidArgumentError{"max retries must be non-negative"}
	}

	t.updateState(func(s *transportState) {
		s.maxRetries = maxRetries
	})

	return nil
}

// AsyncClient returns the configured asynchronous client, or the
// default adapter over the synchronous client when none is set.
func (t *Transport) AsyncClient() AsyncHTTPClient {
	return t.asyncClientFor(t.state.Load())
}

// SetAsyncClient configures the client used by SendRequestAsync.
func (t *Transport) SetAsyncClient(client AsyncHTTPClient) {
	t.updateState(func(s *transportState) {
		s.asyncClient = client
	})
}

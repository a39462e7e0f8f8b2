package escorex

import (
	"context"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// AsyncHTTPClient executes a prepared request without blocking the
// caller, returning a handle that resolves once the request completes.
type AsyncHTTPClient interface {
	DoAsync(req *http.Request) *PendingRequest
}

type asyncResult struct {
	resp *http.Response
	err  error
}

type asyncCompleteFn struct {
	wasInvoked uint32
	fn         func(*http.Response, error)
}

// PendingRequest represents one in-flight asynchronous dispatch. It is
// resolved exactly once; later resolutions are ignored.
type PendingRequest struct {
	result     atomic.Pointer[asyncResult]
	completeFn atomic.Pointer[asyncCompleteFn]
	doneCh     chan struct{}
}

func newPendingRequest() *PendingRequest {
	return &PendingRequest{
		doneCh: make(chan struct{}),
	}
}

// Done is closed once the request has resolved.
func (p *PendingRequest) Done() <-chan struct{} {
	return p.doneCh
}

// Wait blocks until the request resolves or the context ends.
func (p *PendingRequest) Wait(ctx context.Context) (*http.Response, error) {
	select {
	case <-p.doneCh:
		res := p.result.Load()
		return res.resp, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Response returns the resolved response, or nil while still pending.
func (p *PendingRequest) Response() *http.Response {
	if res := p.result.Load(); res != nil {
		return res.resp
	}
	return nil
}

// Err returns the resolved error, or nil while still pending.
func (p *PendingRequest) Err() error {
	if res := p.result.Load(); res != nil {
		return res.err
	}
	return nil
}

func (p *PendingRequest) resolve(resp *http.Response, err error) {
	if !p.result.CompareAndSwap(nil, &asyncResult{resp: resp, err: err}) {
		return
	}

	// The completion callback runs before waiters unblock so state it
	// records is visible to anyone woken by Done.
	completeFn := p.completeFn.Load()
	if completeFn != nil {
		if atomic.CompareAndSwapUint32(&completeFn.wasInvoked, 0, 1) {
			completeFn.fn(resp, err)
		}
	}

	close(p.doneCh)
}

func (p *PendingRequest) onComplete(fn func(*http.Response, error)) {
	completeFn := &asyncCompleteFn{
		fn:         fn,
		wasInvoked: 0,
	}
	if !p.completeFn.CompareAndSwap(nil, completeFn) {
		panic("completion callback registered twice")
	}

	res := p.result.Load()
	if res != nil {
		if atomic.CompareAndSwapUint32(&completeFn.wasInvoked, 0, 1) {
			completeFn.fn(res.resp, res.err)
		}
	}
}

type asyncClientAdapter struct {
	client HTTPClient
	logger *zap.Logger
}

// NewAsyncAdapter lifts a synchronous HTTPClient into an
// AsyncHTTPClient by running each request on its own goroutine.
func NewAsyncAdapter(client HTTPClient, logger *zap.Logger) AsyncHTTPClient {
	return &asyncClientAdapter{
		client: client,
		logger: loggerOrNop(logger),
	}
}

func (a *asyncClientAdapter) DoAsync(req *http.Request) *PendingRequest {
	op := newPendingRequest()

	go func() {
		resp, err := a.client.Do(req.Context(), req)
		op.resolve(resp, err)
	}()

	return op
}

package router

import (
	"context"
	"net/http"

	"golang.org/x/exp/slices"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context or reject
// the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response was written, even if the request failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	rootCtx context.Context
	mux     *http.ServeMux

	befores []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router. The configs, logger and database of rootCtx are
// available in the context of every handler.
func New(rootCtx context.Context) *Router {
	return &Router{rootCtx: rootCtx, mux: http.NewServeMux()}
}

// Branch returns a router sharing the same routes but having its own
// middlewares. Middlewares added to the branch don't affect the parent.
func (r *Router) Branch() *Router {
	return &Router{
		rootCtx: r.rootCtx,
		mux:     r.mux,
		befores: slices.Clone(r.befores),
		closers: slices.Clone(r.closers),
	}
}

func (r *Router) Before(middlewares ...MiddlewareFunc) {
	r.befores = append(r.befores, middlewares...)
}

func (r *Router) AddCloser(closers ...CloserFunc) {
	r.closers = append(r.closers, closers...)
}

// Handle registers a raw http.Handler, it bypasses all middlewares.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

type endpointOptions struct {
	successStatus int
}

type EndpointOption func(*endpointOptions)

// WithSuccessStatus changes the http status of successful responses, the
// default is 200.
func WithSuccessStatus(status int) EndpointOption {
	return func(o *endpointOptions) {
		o.successStatus = status
	}
}

func GET[Request, Response any](
	r *Router, pattern string, handler HandlerFunc[Request, Response], opts ...EndpointOption,
) {
	r.mux.Handle(pattern, wrapHandler(r, http.MethodGet, handler, opts...))
}

func POST[Request, Response any](
	r *Router, pattern string, handler HandlerFunc[Request, Response], opts ...EndpointOption,
) {
	r.mux.Handle(pattern, wrapHandler(r, http.MethodPost, handler, opts...))
}

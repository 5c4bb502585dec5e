package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"golang.org/x/exp/slices"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
	opts ...EndpointOption,
) http.HandlerFunc {
	options := endpointOptions{successStatus: http.StatusOK}
	for _, opt := range opts {
		opt(&options)
	}

	// Middlewares added after the registration of this handler are ignored.
	befores := slices.Clone(r.befores)
	closers := slices.Clone(r.closers)

	return func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.Inherit(req.Context(), r.rootCtx)
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		ctx, resp, err := serve(ctx, req, method, befores, handler)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, w, err)
		} else {
			ctx = xcontext.WithResponse(ctx, resp)
			writeResponse(ctx, w, options.successStatus, resp)
		}

		for _, closer := range closers {
			closer(ctx)
		}
	}
}

func serve[Request, Response any](
	ctx context.Context,
	req *http.Request,
	method string,
	befores []MiddlewareFunc,
	handler HandlerFunc[Request, Response],
) (context.Context, *Response, error) {
	if req.Method != method {
		return ctx, nil, errMethodNotAllowed
	}

	var err error
	for _, before := range befores {
		ctx, err = before(ctx)
		if err != nil {
			return ctx, nil, err
		}
	}

	var request Request
	switch method {
	case http.MethodGet:
		err = bindQuery(req.URL.Query(), &request)
	case http.MethodPost:
		err = bindJSON(req.Body, &request)
	}
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
		return ctx, nil, errorx.New(errorx.BadRequest, "Invalid request")
	}

	resp, err := handler(ctx, &request)
	return ctx, resp, err
}

func bindJSON(body io.Reader, out any) error {
	err := json.NewDecoder(body).Decode(out)
	if errors.Is(err, io.EOF) {
		// Empty body.
		return nil
	}

	return err
}

// bindQuery decodes the query parameters into a struct by its json tags.
// Times are formatted as RFC3339.
func bindQuery(values url.Values, out any) error {
	params := map[string]any{}
	for key, value := range values {
		if len(value) == 1 {
			params[key] = value[0]
		} else {
			params[key] = value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(params)
}

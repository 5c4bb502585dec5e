package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

var errMethodNotAllowed = errors.New("method not allowed")

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// HTTPStatus returns the http status corresponding to the error. A nil error
// is 200.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if errors.Is(err, errMethodNotAllowed) {
		return http.StatusMethodNotAllowed
	}

	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.BadRequest:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.Gone:
		return http.StatusGone
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	if err := WriteJson(w, status, newResponse(data)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if err := WriteJson(w, HTTPStatus(err), newErrorResponse(err)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
	}
}

func WriteJson(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}

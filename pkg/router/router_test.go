package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/logger"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	ID    string    `json:"id"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

type echoResponse struct {
	ID     string `json:"id"`
	Count  int    `json:"count"`
	At     string `json:"at,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	resp := &echoResponse{ID: req.ID, Count: req.Count, UserID: xcontext.RequestUserID(ctx)}
	if !req.At.IsZero() {
		resp.At = req.At.UTC().Format(time.RFC3339)
	}

	return resp, nil
}

func fail(err error) HandlerFunc[echoRequest, echoResponse] {
	return func(context.Context, *echoRequest) (*echoResponse, error) {
		return nil, err
	}
}

func newTestRouter() *Router {
	return New(xcontext.WithLogger(context.Background(), logger.NewNopLogger()))
}

func serveRequest(t *testing.T, r *Router, method, target, body string) (int, response) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestGET(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echo)

	status, resp := serveRequest(t, r, http.MethodGet, "/echo?id=abc&count=3&at=2023-05-01T10:00:00Z", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(0), resp.Code)
	require.Equal(t, map[string]any{"id": "abc", "count": float64(3), "at": "2023-05-01T10:00:00Z"}, resp.Data)

	status, resp = serveRequest(t, r, http.MethodGet, "/echo?count=many", "")
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)

	status, _ = serveRequest(t, r, http.MethodPost, "/echo", "{}")
	require.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestPOST(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echo, WithSuccessStatus(http.StatusCreated))

	status, resp := serveRequest(t, r, http.MethodPost, "/echo", `{"id":"abc","count":2}`)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, map[string]any{"id": "abc", "count": float64(2)}, resp.Data)

	status, resp = serveRequest(t, r, http.MethodPost, "/echo", "")
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, map[string]any{"id": "", "count": float64(0)}, resp.Data)

	status, resp = serveRequest(t, r, http.MethodPost, "/echo", `{"id":`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid request", resp.Error)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: errorx.New(errorx.BadRequest, "bad"), status: http.StatusBadRequest},
		{err: errorx.New(errorx.Unauthenticated, "who"), status: http.StatusUnauthorized},
		{err: errorx.New(errorx.PermissionDenied, "no"), status: http.StatusForbidden},
		{err: errorx.New(errorx.NotFound, "where"), status: http.StatusNotFound},
		{err: errorx.New(errorx.AlreadyExists, "again"), status: http.StatusConflict},
		{err: errorx.New(errorx.Gone, "empty"), status: http.StatusGone},
		{err: errorx.New(errorx.TooManyRequests, "slow"), status: http.StatusTooManyRequests},
		{err: errorx.Unknown, status: http.StatusInternalServerError},
		{err: errors.New("raw error"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r := newTestRouter()
			GET(r, "/fail", fail(tt.err))

			status, resp := serveRequest(t, r, http.MethodGet, "/fail", "")
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.status, HTTPStatus(tt.err))
			require.NotZero(t, resp.Code)
			require.NotEmpty(t, resp.Error)
			require.Nil(t, resp.Data)
		})
	}
}

func TestMiddlewares(t *testing.T) {
	r := newTestRouter()

	var closed []error
	r.Before(func(ctx context.Context) (context.Context, error) {
		userID := xcontext.HTTPRequest(ctx).Header.Get("X-User")
		if userID == "banned" {
			return ctx, errorx.New(errorx.PermissionDenied, "banned")
		}

		return xcontext.WithRequestUserID(ctx, userID), nil
	})
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, xcontext.Error(ctx))
	})

	GET(r, "/echo", echo)

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return ctx, errorx.New(errorx.Unauthenticated, "branch only")
	})
	GET(branch, "/private", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("X-User", "user1")
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":"user1"`)

	req = httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("X-User", "banned")
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	status, _ := serveRequest(t, r, http.MethodGet, "/private", "")
	require.Equal(t, http.StatusUnauthorized, status)

	require.Len(t, closed, 3)
	require.NoError(t, closed[0])
	require.True(t, errorx.Is(closed[1], errorx.PermissionDenied))
	require.True(t, errorx.Is(closed[2], errorx.Unauthenticated))
}

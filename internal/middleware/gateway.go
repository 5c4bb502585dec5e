package middleware

import (
	"context"

	"github.com/questx-lab/eventreward/pkg/router"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

const (
	UserIDHeader   = "X-User-ID"
	UserRoleHeader = "X-User-Role"
)

// ImportUserFromGateway trusts the user headers set by the gateway, which
// already authenticated the request. Requests without them are anonymous.
func ImportUserFromGateway() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		if userID := req.Header.Get(UserIDHeader); userID != "" {
			ctx = xcontext.WithRequestUserID(ctx, userID)
			ctx = xcontext.WithRequestUserRole(ctx, req.Header.Get(UserRoleHeader))
		}

		return ctx, nil
	}
}

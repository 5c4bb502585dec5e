package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/questx-lab/eventreward/internal/common"
	"github.com/questx-lab/eventreward/pkg/router"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		startTime := xcontext.StartTime(ctx)
		path := xcontext.HTTPRequest(ctx).URL.Path
		code := fmt.Sprint(router.HTTPStatus(xcontext.Error(ctx)))

		common.PromCounters[common.HTTPRequestTotal].WithLabelValues(path, code).Inc()
		if !startTime.IsZero() {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(path, code).Observe(time.Since(startTime).Seconds())
		}
	}
}

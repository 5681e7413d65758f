package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

// AccessLog tags every request with an id and logs method, path, status
// and duration once the handler chain finishes.
func AccessLog() iris.Handler {
	return func(ctx iris.Context) {
		reqID := uuid.NewString()
		ctx.Values().Set("request_id", reqID)
		ctx.Header("X-Request-ID", reqID)

		start := time.Now()
		ctx.Next()

		zap.L().Info("request",
			zap.String("request_id", reqID),
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Int("status", ctx.GetStatusCode()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

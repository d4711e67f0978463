package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger logs one structured line per request with request_id, method, path,
// status and latency (milliseconds, float), plus trace_id when the request is
// traced. Requests ending in a 5xx are logged at error level together with
// the handler error.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := responseStatus(c, err)
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("http_request", append(fields, zap.Error(err))...)
		} else {
			logger.Info("http_request", fields...)
		}
		return err
	}
}

// LoggerWithWriter is Logger writing JSON lines to w, with timestamps
// rendered in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.Local
	}
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey:  "msg",
		LevelKey:    "level",
		TimeKey:     "ts",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, e zapcore.PrimitiveArrayEncoder) {
			e.AppendString(t.In(loc).Format(time.RFC3339Nano))
		},
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)
	return Logger(zap.New(core))
}

// responseStatus is the status the client will see. The global error handler
// has not run yet when middleware regains control, so a returned error decides.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fiberErr, ok := err.(*fiber.Error); ok {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

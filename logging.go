package httpkit

import (
	"context"

	"github.com/taluhq/httpkit/logger"
)

// LoggingMiddleware emits one structured log line per pipeline phase. It
// never mutates the descriptors and never fails.
type LoggingMiddleware struct {
	logRequests  bool
	logResponses bool
	log          *logger.Logger
}

// Logging creates middleware that logs both requests and responses.
// A nil logger falls back to the package default.
func Logging(log *logger.Logger) *LoggingMiddleware {
	return newLogging(log, true, true)
}

// LoggingRequestsOnly creates middleware that logs requests only.
func LoggingRequestsOnly(log *logger.Logger) *LoggingMiddleware {
	return newLogging(log, true, false)
}

// LoggingResponsesOnly creates middleware that logs responses only.
func LoggingResponsesOnly(log *logger.Logger) *LoggingMiddleware {
	return newLogging(log, false, true)
}

func newLogging(log *logger.Logger, requests, responses bool) *LoggingMiddleware {
	if log == nil {
		log = logger.NewDefault("httpkit")
	}
	return &LoggingMiddleware{
		logRequests:  requests,
		logResponses: responses,
		log:          log,
	}
}

// OnRequest logs the outgoing method and URL.
func (m *LoggingMiddleware) OnRequest(_ context.Context, req *Request) error {
	if m.logRequests {
		m.log.Info("http request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}
	return nil
}

// OnResponse logs the received status and URL.
func (m *LoggingMiddleware) OnResponse(_ context.Context, resp *Response) error {
	if m.logResponses {
		m.log.Info("http response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.URL,
		})
	}
	return nil
}

// Name returns the middleware identifier.
func (m *LoggingMiddleware) Name() string {
	return "LoggingMiddleware"
}

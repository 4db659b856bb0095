package server

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

// requestLogger emits one debug entry per request through logrus.
func requestLogger(log logrus.FieldLogger, next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
		log.WithFields(logrus.Fields{
			"method": p.Request.Method,
			"path":   p.URL.Path,
			"status": p.StatusCode,
			"size":   p.Size,
		}).Debug("request")
	})
}

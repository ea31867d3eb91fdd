package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger логирует каждый запрос: метод, путь, статус и длительность.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithField("component", "api")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if len(c.Errors) > 0 {
			failed := entry.WithFields(fields).WithError(c.Errors[0].Err)
			// клиентские ошибки (в том числе отклоненные подписи оплаты) - warn, серверные - error.
			if c.Writer.Status() >= http.StatusInternalServerError {
				failed.Error("request failed")
				return
			}
			failed.Warn("request failed")
			return
		}
		entry.WithFields(fields).Info("request")
	}
}

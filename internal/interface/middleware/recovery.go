package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-service/pkg/response"
)

// SomethingWentWrong is the message for any unexpected failure.
const SomethingWentWrong = "Something Went Wrong"

// Recovery turns a handler panic into a 500 envelope.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.FullPath(),
				"panic":      rec,
			}).Error("panic recovered")
		}
		response.Error[any](c, http.StatusInternalServerError, SomethingWentWrong, nil)
	})
}

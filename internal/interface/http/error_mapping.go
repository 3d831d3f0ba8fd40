package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-service/internal/application"
	"github.com/oksasatya/account-service/internal/interface/middleware"
	"github.com/oksasatya/account-service/pkg/response"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError resolves err against cases. Anything unmatched is
// logged and answered with a bare 500.
func RespondWithMappedError(c *gin.Context, logger *logrus.Logger, err error, cases []ErrorCase) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		response.Error[any](c, http.StatusUnprocessableEntity, verr.Error(), verr.Details)
		return
	}

	for _, cs := range cases {
		if cs.Err != nil && errors.Is(err, cs.Err) {
			response.Error[any](c, cs.Status, cs.Message, nil)
			return
		}
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")
	}
	response.Error[any](c, http.StatusInternalServerError, middleware.SomethingWentWrong, nil)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-service/internal/application"
	"github.com/oksasatya/account-service/pkg/response"
	"github.com/oksasatya/account-service/pkg/validation"
)

const (
	MsgSuccess             = "operation successful"
	MsgInvalidPhoneNumber  = "Invalid Phone Number"
	MsgInvalidConfirmation = "Invalid confirmation token or code"
	MsgAlreadyConfirmed    = "Account already confirmed"
)

// AccountHandler serves registration and confirmation.
type AccountHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.Service, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type registerResponse struct {
	ID string `json:"_id"`
}

// Register handles POST /register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithMappedError(c, h.Logger, &application.ValidationError{Details: validation.ToDetails(err)}, nil)
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		RespondWithMappedError(c, h.Logger, err, []ErrorCase{
			{Err: application.ErrInvalidPhoneNumber, Status: http.StatusUnprocessableEntity, Message: MsgInvalidPhoneNumber},
			{Err: application.ErrDuplicateEntity, Status: http.StatusUnprocessableEntity, Message: alreadyExists("User", req.EmailAddress)},
		})
		return
	}
	response.Success(c, http.StatusCreated, registerResponse{ID: u.ID}, MsgSuccess, nil)
}

// Confirm handles PUT /confirmation/:token?code=.
func (h *AccountHandler) Confirm(c *gin.Context) {
	_, err := h.Svc.Confirm(c.Request.Context(), c.Param("token"), c.Query("code"))
	if err != nil {
		RespondWithMappedError(c, h.Logger, err, []ErrorCase{
			{Err: application.ErrInvalidConfirmation, Status: http.StatusBadRequest, Message: MsgInvalidConfirmation},
			{Err: application.ErrAlreadyConfirmed, Status: http.StatusBadRequest, Message: MsgAlreadyConfirmed},
		})
		return
	}
	response.Success[any](c, http.StatusOK, nil, MsgSuccess, nil)
}

func alreadyExists(entity, identifier string) string {
	return entity + " is already exist with " + identifier
}

package api

import (
	"errors"
	"io"
	"net/http"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgFieldsRequired  = "All fields are required"
	msgInvalidBody     = "Invalid request body"
	msgBodyTooLarge    = "Request body too large"
	msgConfigError     = "Server configuration error"
	msgDeliveryFailed  = "Failed to send message"
	msgContactAccepted = "Message sent successfully!"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a contact form message to the site owner. Only presence of the fields is checked.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      413      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = c.Error(apperror.New(http.StatusRequestEntityTooLarge, msgBodyTooLarge, err))
			return
		}
		// An empty body is treated like an empty object
		if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
			_ = c.Error(apperror.New(http.StatusBadRequest, msgFieldsRequired, err))
			return
		}
		_ = c.Error(apperror.New(http.StatusBadRequest, msgInvalidBody, err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		_ = c.Error(contactError(err))
		return
	}

	response.Success(c, http.StatusOK, msgContactAccepted, nil)
}

func contactError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return apperror.New(http.StatusBadRequest, msgFieldsRequired, err)
	case errors.Is(err, domain.ErrRelayNotConfigured):
		return apperror.New(http.StatusInternalServerError, msgConfigError, err)
	case errors.Is(err, domain.ErrDeliveryFailed):
		return apperror.New(http.StatusInternalServerError, msgDeliveryFailed, err)
	default:
		return apperror.Internal(err)
	}
}

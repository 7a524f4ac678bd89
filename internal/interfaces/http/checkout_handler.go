package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/sazonlab/campus-bff/internal/infrastructure/auth"
	"github.com/sazonlab/campus-bff/internal/infrastructure/validate"
)

type CheckoutHandler struct {
	checkoutUseCase domain.CheckoutUseCase
	jwtUtil         *auth.JWTUtil
	validator       validate.Validator
}

func NewCheckoutHandler(CheckoutUseCase domain.CheckoutUseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *CheckoutHandler {
	handler := &CheckoutHandler{CheckoutUseCase, JWTUtil, Validator}
	return handler
}

// SaveCheckoutRequest prefill data for the payment form
type SaveCheckoutRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email"`
}

func (ch *CheckoutHandler) HandleSaveSession(c echo.Context) (err error) {
	claims := ch.jwtUtil.GetContextToken(c)

	payload := new(SaveCheckoutRequest)
	if err := c.Bind(payload); err != nil {
		return invalidParam(c, "body", "request body must be valid JSON")
	}
	if fieldErrors := ch.validator.Struct(payload); fieldErrors != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", fieldErrors))
	}

	saved, err := ch.checkoutUseCase.Save(c.Request().Context(), claims.UID, &domain.CheckoutContext{
		Name:  payload.Name,
		Email: payload.Email,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (ch *CheckoutHandler) HandleGetSession(c echo.Context) (err error) {
	claims := ch.jwtUtil.GetContextToken(c)

	ctx, err := ch.checkoutUseCase.Hydrate(c.Request().Context(), claims.UID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ctx)
}

func (ch *CheckoutHandler) HandleClearSession(c echo.Context) (err error) {
	claims := ch.jwtUtil.GetContextToken(c)

	if err := ch.checkoutUseCase.Clear(c.Request().Context(), claims.UID); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

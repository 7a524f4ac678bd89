package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/sazonlab/campus-bff/internal/infrastructure/auth"
	"github.com/sazonlab/campus-bff/internal/infrastructure/validate"
)

type CertificateHandler struct {
	certificateUseCase domain.CertificateUseCase
	jwtUtil            *auth.JWTUtil
	validator          validate.Validator
}

func NewCertificateHandler(CertificateUseCase domain.CertificateUseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *CertificateHandler {
	handler := &CertificateHandler{CertificateUseCase, JWTUtil, Validator}
	return handler
}

func (ch *CertificateHandler) HandleGetStatus(c echo.Context) (err error) {
	claims := ch.jwtUtil.GetContextToken(c)
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}

	status, err := ch.certificateUseCase.GetStatus(c.Request().Context(), courseID, claims.UID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

func (ch *CertificateHandler) HandleGenerate(c echo.Context) (err error) {
	claims := ch.jwtUtil.GetContextToken(c)
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}

	certificate, err := ch.certificateUseCase.Generate(c.Request().Context(), courseID, claims.UID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, certificate)
}

func (ch *CertificateHandler) HandleList(c echo.Context) (err error) {
	claims := ch.jwtUtil.GetContextToken(c)

	certificates, err := ch.certificateUseCase.List(c.Request().Context(), claims.UID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, certificates)
}

func (ch *CertificateHandler) HandleVerify(c echo.Context) (err error) {
	certificateID := c.Param("certificateID")
	if fieldErrors := ch.validator.Empty("certificateID", certificateID); fieldErrors != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", fieldErrors))
	}

	verification, err := ch.certificateUseCase.Verify(c.Request().Context(), certificateID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, verification)
}

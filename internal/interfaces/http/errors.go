package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/sazonlab/campus-bff/internal/infrastructure/validate"
)

// RESTStandardError response error
type RESTStandardError struct {
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

func NewRESTStandardError(code int, detail string) *RESTStandardError {
	return &RESTStandardError{
		Code:   code,
		Title:  http.StatusText(code),
		Detail: detail,
	}
}

func (re RESTStandardError) Error() string {
	return re.Detail
}

func (re RESTStandardError) SetTraceID(traceID string) RESTStandardError {
	re.TraceID = traceID
	return re
}

// RESTValidationError standard validation error
type RESTValidationError struct {
	RESTStandardError
	InvalidParams []*validate.FieldError `json:"invalid_params"`
}

func NewRESTValidationError(code int, detail string, internal []*validate.FieldError) *RESTValidationError {
	return &RESTValidationError{
		RESTStandardError: RESTStandardError{
			Code:   code,
			Title:  http.StatusText(code),
			Detail: detail,
		},
		InvalidParams: internal,
	}
}

func (rve RESTValidationError) Error() string {
	return rve.Detail
}

func (rve RESTValidationError) SetTraceID(traceID string) RESTValidationError {
	rve.RESTStandardError.TraceID = traceID
	return rve
}

// respondDomainError translate use case sentinels into REST responses.
// Transport failures map to 502 because the upstream course API, not this
// service, failed. Unclassified errors bubble up to the error middleware.
func respondDomainError(c echo.Context, err error) error {
	traceID := c.Response().Header().Get(echo.HeaderXRequestID)
	switch {
	case errors.Is(err, domain.ErrNoSuchCourse),
		errors.Is(err, domain.ErrNoSuchLecture),
		errors.Is(err, domain.ErrNoSuchVideo),
		errors.Is(err, domain.ErrNoSuchQuiz),
		errors.Is(err, domain.ErrNoSuchCertificate):
		return c.JSON(http.StatusNotFound, NewRESTStandardError(http.StatusNotFound, err.Error()).SetTraceID(traceID))
	case errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, domain.ErrQuizNotPassed):
		return c.JSON(http.StatusForbidden, NewRESTStandardError(http.StatusForbidden, err.Error()).SetTraceID(traceID))
	case errors.Is(err, domain.ErrStaleResponse):
		return c.JSON(http.StatusConflict, NewRESTStandardError(http.StatusConflict, err.Error()).SetTraceID(traceID))
	case domain.IsTransportError(err):
		return c.JSON(http.StatusBadGateway, NewRESTStandardError(http.StatusBadGateway, err.Error()).SetTraceID(traceID))
	}
	return err
}

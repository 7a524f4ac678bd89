package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/sazonlab/campus-bff/internal/infrastructure/auth"
	"github.com/sazonlab/campus-bff/internal/infrastructure/validate"
)

type QuizHandler struct {
	quizUseCase domain.QuizUseCase
	jwtUtil     *auth.JWTUtil
	validator   validate.Validator
}

func NewQuizHandler(QuizUseCase domain.QuizUseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *QuizHandler {
	handler := &QuizHandler{QuizUseCase, JWTUtil, Validator}
	return handler
}

// SubmitQuizRequest answers indexed by question order
type SubmitQuizRequest struct {
	Answers []int `json:"answers" validate:"required,min=1"`
}

func (qh *QuizHandler) HandleGetQuizzes(c echo.Context) (err error) {
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}

	quizzes, err := qh.quizUseCase.GetQuizzes(c.Request().Context(), courseID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, quizzes)
}

func (qh *QuizHandler) HandleGetQuiz(c echo.Context) (err error) {
	claims := qh.jwtUtil.GetContextToken(c)
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}
	quizID := c.Param("quizID")
	if fieldErrors := qh.validator.Empty("quizID", quizID); fieldErrors != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", fieldErrors))
	}

	quiz, err := qh.quizUseCase.GetQuiz(c.Request().Context(), claims.UID, courseID, quizID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

func (qh *QuizHandler) HandleSubmitQuiz(c echo.Context) (err error) {
	claims := qh.jwtUtil.GetContextToken(c)
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}
	quizID := c.Param("quizID")

	payload := new(SubmitQuizRequest)
	if err := c.Bind(payload); err != nil {
		return invalidParam(c, "answers", "request body must be valid JSON")
	}
	if fieldErrors := qh.validator.Struct(payload); fieldErrors != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", fieldErrors))
	}

	result, err := qh.quizUseCase.SubmitQuiz(c.Request().Context(), claims.UID, courseID, quizID, payload.Answers)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

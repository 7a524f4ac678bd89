package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/sazonlab/campus-bff/internal/infrastructure/auth"
	"github.com/sazonlab/campus-bff/internal/infrastructure/validate"
)

type CourseHandler struct {
	courseUseCase domain.CourseUseCase
	jwtUtil       *auth.JWTUtil
}

func NewCourseHandler(CourseUseCase domain.CourseUseCase, JWTUtil *auth.JWTUtil) *CourseHandler {
	handler := &CourseHandler{CourseUseCase, JWTUtil}
	return handler
}

// CatalogResponse catalog page plus pagination meta
type CatalogResponse struct {
	Courses []*domain.CourseModel `json:"courses"`
	Meta    *domain.CatalogMeta   `json:"meta"`
}

// NextLectureResponse sequencer result, Lecture is null at end of scope
type NextLectureResponse struct {
	Lecture    *domain.LectureModel `json:"lecture"`
	EndOfScope bool                 `json:"end_of_scope"`
}

func (ch *CourseHandler) HandleListCourses(c echo.Context) (err error) {
	query := &domain.CatalogQuery{Page: 1, PerPage: 12}
	if raw := c.QueryParam("page"); raw != "" {
		if query.Page, err = strconv.Atoi(raw); err != nil || query.Page < 1 {
			return invalidParam(c, "page", "page must be a positive integer")
		}
	}
	if raw := c.QueryParam("per_page"); raw != "" {
		if query.PerPage, err = strconv.Atoi(raw); err != nil || query.PerPage < 1 {
			return invalidParam(c, "per_page", "per_page must be a positive integer")
		}
	}

	courses, meta, err := ch.courseUseCase.ListCourses(c.Request().Context(), query)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, &CatalogResponse{Courses: courses, Meta: meta})
}

func (ch *CourseHandler) HandleGetEnrolledCourses(c echo.Context) (err error) {
	claims := ch.jwtUtil.GetContextToken(c)

	courses, err := ch.courseUseCase.GetEnrolledCourses(c.Request().Context(), claims.TeachableUID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, courses)
}

func (ch *CourseHandler) HandleEnroll(c echo.Context) (err error) {
	claims := ch.jwtUtil.GetContextToken(c)
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}

	if err := ch.courseUseCase.Enroll(c.Request().Context(), courseID, claims.TeachableUID); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (ch *CourseHandler) HandleGetCourse(c echo.Context) (err error) {
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}

	course, err := ch.courseUseCase.GetCourse(c.Request().Context(), courseID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, course)
}

func (ch *CourseHandler) HandleGetLecture(c echo.Context) (err error) {
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}
	lectureID, ok := parseID(c.Param("lectureID"))
	if !ok {
		return invalidParam(c, "lectureID", "lectureID must be a positive integer")
	}

	lecture, err := ch.courseUseCase.GetLecture(c.Request().Context(), courseID, lectureID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, lecture)
}

func (ch *CourseHandler) HandleGetVideo(c echo.Context) (err error) {
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}
	lectureID, ok := parseID(c.Param("lectureID"))
	if !ok {
		return invalidParam(c, "lectureID", "lectureID must be a positive integer")
	}
	videoID, ok := parseID(c.Param("videoID"))
	if !ok {
		return invalidParam(c, "videoID", "videoID must be a positive integer")
	}

	video, err := ch.courseUseCase.GetVideo(c.Request().Context(), courseID, lectureID, videoID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, video)
}

func (ch *CourseHandler) HandleNextLecture(c echo.Context) (err error) {
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}
	lectureID, ok := parseID(c.Param("lectureID"))
	if !ok {
		return invalidParam(c, "lectureID", "lectureID must be a positive integer")
	}

	scope := domain.ScopeGlobal
	switch c.QueryParam("scope") {
	case "", "global":
	case "section":
		scope = domain.ScopeSection
	default:
		return invalidParam(c, "scope", "scope must be 'global' or 'section'")
	}

	lecture, found, err := ch.courseUseCase.NextLecture(c.Request().Context(), courseID, lectureID, scope)
	if err != nil {
		return respondDomainError(c, err)
	}
	if !found {
		return c.JSON(http.StatusOK, &NextLectureResponse{EndOfScope: true})
	}
	return c.JSON(http.StatusOK, &NextLectureResponse{Lecture: lecture})
}

// parseID parse a route id, ids handed out by the upstream API start at 1
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func invalidParam(c echo.Context, name, reason string) error {
	return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", []*validate.FieldError{
		validate.NewFieldError(name, reason),
	}))
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/sazonlab/campus-bff/internal/infrastructure/auth"
)

type ProgressHandler struct {
	progressUseCase domain.ProgressUseCase
	jwtUtil         *auth.JWTUtil
}

func NewProgressHandler(ProgressUseCase domain.ProgressUseCase, JWTUtil *auth.JWTUtil) *ProgressHandler {
	handler := &ProgressHandler{ProgressUseCase, JWTUtil}
	return handler
}

// ProgressResponse session snapshot. Started is false when upstream has no
// progress record yet, which is a normal state for a fresh enrollment.
// Synced reports whether the latest completion reached upstream.
type ProgressResponse struct {
	*domain.ProgressSnapshot
	Started bool `json:"started"`
	Synced  bool `json:"synced"`
}

func (ph *ProgressHandler) HandleGetProgress(c echo.Context) (err error) {
	claims := ph.jwtUtil.GetContextToken(c)
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}

	snapshot, err := ph.progressUseCase.Refresh(c.Request().Context(), claims.UID, courseID)
	if errors.Is(err, domain.ErrProgressNotFound) {
		return c.JSON(http.StatusOK, &ProgressResponse{ProgressSnapshot: snapshot, Started: false, Synced: true})
	}
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, &ProgressResponse{ProgressSnapshot: snapshot, Started: true, Synced: true})
}

func (ph *ProgressHandler) HandleCompleteLecture(c echo.Context) (err error) {
	claims := ph.jwtUtil.GetContextToken(c)
	courseID, ok := parseID(c.Param("courseID"))
	if !ok {
		return invalidParam(c, "courseID", "courseID must be a positive integer")
	}
	lectureID, ok := parseID(c.Param("lectureID"))
	if !ok {
		return invalidParam(c, "lectureID", "lectureID must be a positive integer")
	}

	snapshot, err := ph.progressUseCase.CompleteLecture(c.Request().Context(), claims.UID, claims.TeachableUID, courseID, lectureID)
	if err != nil {
		// the local mark survived, report the snapshot with the sync flag
		// down so the SPA can retry instead of losing the completion
		if snapshot != nil && domain.IsTransportError(err) {
			return c.JSON(http.StatusOK, &ProgressResponse{ProgressSnapshot: snapshot, Started: true, Synced: false})
		}
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, &ProgressResponse{ProgressSnapshot: snapshot, Started: true, Synced: true})
}

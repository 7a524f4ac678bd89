package course

import (
	"context"

	"github.com/sazonlab/campus-bff/internal/domain"
	"go.elastic.co/apm"
)

// CourseUseCaseImpl ...
type CourseUseCaseImpl struct {
	CourseGateway    domain.CourseGateway
	PlaceholderCount int
}

var _ domain.CourseUseCase = &CourseUseCaseImpl{}

// NewCourseUseCase ...
func NewCourseUseCase(CourseGateway domain.CourseGateway, placeholderCount int) *CourseUseCaseImpl {
	return &CourseUseCaseImpl{CourseGateway, placeholderCount}
}

// ListCourses list published courses, padding the catalog with placeholders
// when upstream returns fewer than the configured grid size
func (cu *CourseUseCaseImpl) ListCourses(ctx context.Context, query *domain.CatalogQuery) ([]*domain.CourseModel, *domain.CatalogMeta, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.ListCourses", "service")
	defer apmSpan.End()

	courses, meta, err := cu.CourseGateway.ListCourses(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	return FillPlaceholders(courses, cu.PlaceholderCount), meta, nil
}

// GetEnrolledCourses courses the learner is enrolled in
func (cu *CourseUseCaseImpl) GetEnrolledCourses(ctx context.Context, userID string) ([]*domain.CourseModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.GetEnrolledCourses", "service")
	defer apmSpan.End()

	return cu.CourseGateway.GetEnrolledCourses(ctx, userID)
}

// GetCourse fetch the canonical course document
func (cu *CourseUseCaseImpl) GetCourse(ctx context.Context, courseID int64) (*domain.CourseModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.GetCourse", "service")
	defer apmSpan.End()

	return cu.CourseGateway.GetCourse(ctx, courseID)
}

// GetLecture fetch a single lecture
func (cu *CourseUseCaseImpl) GetLecture(ctx context.Context, courseID, lectureID int64) (*domain.LectureModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.GetLecture", "service")
	defer apmSpan.End()

	return cu.CourseGateway.GetLecture(ctx, courseID, lectureID)
}

// GetVideo fetch the playback descriptor for a lecture's video
func (cu *CourseUseCaseImpl) GetVideo(ctx context.Context, courseID, lectureID, videoID int64) (*domain.VideoModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.GetVideo", "service")
	defer apmSpan.End()

	return cu.CourseGateway.GetVideo(ctx, courseID, lectureID, videoID)
}

// Enroll enroll the learner into a course
func (cu *CourseUseCaseImpl) Enroll(ctx context.Context, courseID int64, userID string) error {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.Enroll", "service")
	defer apmSpan.End()

	return cu.CourseGateway.Enroll(ctx, courseID, userID)
}

// NextLecture resolve the lecture following the current one under the given
// scope, fetching a fresh course document first. The bool result is false
// when the scope is exhausted.
func (cu *CourseUseCaseImpl) NextLecture(ctx context.Context, courseID, currentLectureID int64, scope domain.Scope) (*domain.LectureModel, bool, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CourseUseCaseImpl.NextLecture", "service")
	defer apmSpan.End()

	course, err := cu.CourseGateway.GetCourse(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	next, ok := NextLecture(course, currentLectureID, scope)
	return next, ok, nil
}

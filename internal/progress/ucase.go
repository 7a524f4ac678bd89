package progress

import (
	"context"
	"errors"

	"github.com/sazonlab/campus-bff/internal/course"
	"github.com/sazonlab/campus-bff/internal/domain"
	"go.elastic.co/apm"
)

// ProgressUseCaseImpl reconciles upstream progress with the per-session
// optimistic state and publishes completion events
type ProgressUseCaseImpl struct {
	ProgressGateway domain.ProgressGateway
	CourseGateway   domain.CourseGateway
	Sessions        *SessionManager
	Broker          *Broker
}

var _ domain.ProgressUseCase = &ProgressUseCaseImpl{}

// NewProgressUseCase ...
func NewProgressUseCase(
	ProgressGateway domain.ProgressGateway,
	CourseGateway domain.CourseGateway,
	Sessions *SessionManager,
	Broker *Broker,
) *ProgressUseCaseImpl {
	return &ProgressUseCaseImpl{ProgressGateway, CourseGateway, Sessions, Broker}
}

// Refresh fetch the authoritative progress for the active course and merge it
// into the session. Classification of the outcome:
//   - success: reconciled snapshot, nil error
//   - no progress record yet: zeroed-but-unioned snapshot plus
//     domain.ErrProgressNotFound so the caller can render "not started"
//   - transport failure: previous snapshot untouched, *domain.TransportError
//   - stale response: discarded, domain.ErrStaleResponse
func (pu *ProgressUseCaseImpl) Refresh(ctx context.Context, userID string, courseID int64) (*domain.ProgressSnapshot, error) {
	apmSpan, _ := apm.StartSpan(ctx, "ProgressUseCaseImpl.Refresh", "service")
	defer apmSpan.End()

	session := pu.Sessions.Session(userID)
	session.Activate(courseID)

	server, err := pu.ProgressGateway.FetchProgress(ctx, courseID, userID)
	switch {
	case errors.Is(err, domain.ErrProgressNotFound):
		server = &domain.ProgressSnapshot{}
	case err != nil:
		return nil, err
	}

	if reconcileErr := session.Reconcile(courseID, server); reconcileErr != nil {
		return nil, reconcileErr
	}
	if snapErr := pu.ensureTotal(ctx, session, courseID); snapErr != nil {
		return nil, snapErr
	}

	snapshot, snapErr := session.Snapshot(courseID)
	if snapErr != nil {
		return nil, snapErr
	}
	if errors.Is(err, domain.ErrProgressNotFound) {
		return snapshot, domain.ErrProgressNotFound
	}
	return snapshot, nil
}

// CompleteLecture optimistic-first completion: the local mark is applied and
// visible before the upstream call returns. A transport failure keeps the
// local mark (a later reconcile unions it anyway) and surfaces the
// classification alongside the post-mark snapshot. A definitive upstream
// rejection rolls the mark back instead, the completed set must stay a
// subset of the course's actual lectures.
func (pu *ProgressUseCaseImpl) CompleteLecture(ctx context.Context, userID, teachableUserID string, courseID, lectureID int64) (*domain.ProgressSnapshot, error) {
	apmSpan, _ := apm.StartSpan(ctx, "ProgressUseCaseImpl.CompleteLecture", "service")
	defer apmSpan.End()

	session := pu.Sessions.Session(userID)
	session.Activate(courseID)

	snapshot, first, err := session.MarkCompleted(courseID, lectureID)
	if err != nil {
		return nil, err
	}
	if err := pu.ensureTotal(ctx, session, courseID); err == nil {
		if refreshed, snapErr := session.Snapshot(courseID); snapErr == nil {
			snapshot = refreshed
		}
	}

	input := &domain.CompleteLectureInput{UserID: userID, TeachableUserID: teachableUserID}
	if err := pu.ProgressGateway.CompleteLecture(ctx, courseID, lectureID, input); err != nil {
		if domain.IsTransportError(err) {
			return snapshot, err
		}
		// definitive rejection: a mark for a lecture the course does not
		// have must not linger and inflate the completion count
		if first {
			if rolled, unmarkErr := session.UnmarkCompleted(courseID, lectureID); unmarkErr == nil {
				snapshot = rolled
			}
		}
		return snapshot, err
	}

	if first {
		pu.Broker.Publish(domain.CompletionEvent{
			UserID:    userID,
			CourseID:  courseID,
			LectureID: lectureID,
			Percent:   snapshot.Percent,
		})
	}
	return snapshot, nil
}

// Snapshot current session view without touching upstream
func (pu *ProgressUseCaseImpl) Snapshot(ctx context.Context, userID string, courseID int64) (*domain.ProgressSnapshot, error) {
	apmSpan, _ := apm.StartSpan(ctx, "ProgressUseCaseImpl.Snapshot", "service")
	defer apmSpan.End()

	session := pu.Sessions.Session(userID)
	session.Activate(courseID)
	return session.Snapshot(courseID)
}

// IsCompleted membership test against the session state
func (pu *ProgressUseCaseImpl) IsCompleted(ctx context.Context, userID string, courseID, lectureID int64) (bool, error) {
	apmSpan, _ := apm.StartSpan(ctx, "ProgressUseCaseImpl.IsCompleted", "service")
	defer apmSpan.End()

	session := pu.Sessions.Session(userID)
	session.Activate(courseID)
	return session.IsCompleted(courseID, lectureID)
}

// ensureTotal fill in the local lecture count fallback when no total is known
// yet. Failing to load the course document is not fatal, percent simply stays
// at 0 until a total shows up.
func (pu *ProgressUseCaseImpl) ensureTotal(ctx context.Context, session *Session, courseID int64) error {
	snapshot, err := session.Snapshot(courseID)
	if err != nil {
		return err
	}
	if snapshot.TotalCount > 0 {
		return nil
	}
	doc, err := pu.CourseGateway.GetCourse(ctx, courseID)
	if err != nil {
		return nil
	}
	return session.SetLocalTotal(courseID, course.TotalLectures(doc))
}

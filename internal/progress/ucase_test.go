package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgressGateway struct {
	snapshot    *domain.ProgressSnapshot
	fetchErr    error
	completeErr error
	completions []int64
}

func (f *fakeProgressGateway) FetchProgress(ctx context.Context, courseID int64, userID string) (*domain.ProgressSnapshot, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.snapshot, nil
}

func (f *fakeProgressGateway) CompleteLecture(ctx context.Context, courseID, lectureID int64, input *domain.CompleteLectureInput) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completions = append(f.completions, lectureID)
	return nil
}

type fakeCourseGateway struct {
	course *domain.CourseModel
	err    error
}

func (f *fakeCourseGateway) ListCourses(ctx context.Context, query *domain.CatalogQuery) ([]*domain.CourseModel, *domain.CatalogMeta, error) {
	return nil, nil, f.err
}

func (f *fakeCourseGateway) GetEnrolledCourses(ctx context.Context, userID string) ([]*domain.CourseModel, error) {
	return nil, f.err
}

func (f *fakeCourseGateway) GetCourse(ctx context.Context, courseID int64) (*domain.CourseModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.course, nil
}

func (f *fakeCourseGateway) GetLecture(ctx context.Context, courseID, lectureID int64) (*domain.LectureModel, error) {
	return nil, f.err
}

func (f *fakeCourseGateway) GetVideo(ctx context.Context, courseID, lectureID, videoID int64) (*domain.VideoModel, error) {
	return nil, f.err
}

func (f *fakeCourseGateway) Enroll(ctx context.Context, courseID int64, userID string) error {
	return f.err
}

func fiveLectureCourse() *domain.CourseModel {
	return &domain.CourseModel{
		ID: 1,
		Sections: []domain.SectionModel{
			{ID: 1, Position: 1, Lectures: []domain.LectureModel{
				{ID: 10, Position: 1}, {ID: 11, Position: 2}, {ID: 12, Position: 3},
			}},
			{ID: 2, Position: 2, Lectures: []domain.LectureModel{
				{ID: 20, Position: 1}, {ID: 21, Position: 2},
			}},
		},
	}
}

func newTestUseCase(pg *fakeProgressGateway, cg *fakeCourseGateway) *ProgressUseCaseImpl {
	return NewProgressUseCase(pg, cg, NewSessionManager(), NewBroker())
}

func TestRefresh_AppliesServerSnapshot(t *testing.T) {
	pg := &fakeProgressGateway{snapshot: &domain.ProgressSnapshot{
		TotalCount:          5,
		CompletedCount:      2,
		CompletedLectureIDs: []int64{10, 11},
	}}
	pu := newTestUseCase(pg, &fakeCourseGateway{course: fiveLectureCourse()})

	snapshot, err := pu.Refresh(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 40, snapshot.Percent)
	assert.Equal(t, 2, snapshot.CompletedCount)
	assert.Equal(t, 5, snapshot.TotalCount)
}

func TestRefresh_NotFoundIsBenign(t *testing.T) {
	pg := &fakeProgressGateway{fetchErr: domain.ErrProgressNotFound}
	pu := newTestUseCase(pg, &fakeCourseGateway{course: fiveLectureCourse()})

	snapshot, err := pu.Refresh(context.Background(), "user-1", 1)
	require.ErrorIs(t, err, domain.ErrProgressNotFound)
	assert.False(t, domain.IsTransportError(err))
	require.NotNil(t, snapshot)
	assert.Equal(t, 0, snapshot.Percent)
	assert.Equal(t, 0, snapshot.CompletedCount)
	assert.Empty(t, snapshot.CompletedLectureIDs)
	// the locally counted total still fills in
	assert.Equal(t, 5, snapshot.TotalCount)
}

func TestRefresh_TransportFailurePreservesSnapshot(t *testing.T) {
	pg := &fakeProgressGateway{snapshot: &domain.ProgressSnapshot{
		TotalCount:          5,
		CompletedCount:      2,
		CompletedLectureIDs: []int64{10, 11},
	}}
	pu := newTestUseCase(pg, &fakeCourseGateway{course: fiveLectureCourse()})

	_, err := pu.Refresh(context.Background(), "user-1", 1)
	require.NoError(t, err)

	pg.fetchErr = domain.NewTransportError("GetProgress", errors.New("connection refused"))
	_, err = pu.Refresh(context.Background(), "user-1", 1)
	require.Error(t, err)
	assert.True(t, domain.IsTransportError(err))

	snapshot, err := pu.Snapshot(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 40, snapshot.Percent)
}

func TestRefresh_UnionWithOptimisticMark(t *testing.T) {
	pg := &fakeProgressGateway{snapshot: &domain.ProgressSnapshot{
		TotalCount:          5,
		CompletedLectureIDs: []int64{10},
	}}
	pu := newTestUseCase(pg, &fakeCourseGateway{course: fiveLectureCourse()})

	_, err := pu.CompleteLecture(context.Background(), "user-1", "", 1, 12)
	require.NoError(t, err)

	// the server read does not include lecture 12 yet
	snapshot, err := pu.Refresh(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{10, 12}, snapshot.CompletedLectureIDs)
	assert.Equal(t, 40, snapshot.Percent)
}

func TestCompleteLecture_OptimisticEvenWhenUpstreamFails(t *testing.T) {
	pg := &fakeProgressGateway{completeErr: domain.NewTransportError("CompleteLecture", errors.New("boom"))}
	pu := newTestUseCase(pg, &fakeCourseGateway{course: fiveLectureCourse()})

	snapshot, err := pu.CompleteLecture(context.Background(), "user-1", "", 1, 10)
	require.Error(t, err)
	assert.True(t, domain.IsTransportError(err))
	// local mark is already visible
	require.NotNil(t, snapshot)
	assert.Equal(t, []int64{10}, snapshot.CompletedLectureIDs)
	assert.Equal(t, 20, snapshot.Percent)

	done, err := pu.IsCompleted(context.Background(), "user-1", 1, 10)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestCompleteLecture_RejectedLectureRollsBackMark(t *testing.T) {
	twoLectures := &domain.CourseModel{
		ID: 1,
		Sections: []domain.SectionModel{
			{ID: 1, Position: 1, Lectures: []domain.LectureModel{
				{ID: 10, Position: 1}, {ID: 11, Position: 2},
			}},
		},
	}
	pg := &fakeProgressGateway{
		completeErr: domain.ErrNoSuchLecture,
		fetchErr:    domain.ErrProgressNotFound,
	}
	pu := newTestUseCase(pg, &fakeCourseGateway{course: twoLectures})

	// lecture ids the course does not have, both definitively rejected
	_, err := pu.CompleteLecture(context.Background(), "user-1", "", 1, 998)
	assert.ErrorIs(t, err, domain.ErrNoSuchLecture)
	_, err = pu.CompleteLecture(context.Background(), "user-1", "", 1, 999)
	assert.ErrorIs(t, err, domain.ErrNoSuchLecture)

	snapshot, err := pu.Refresh(context.Background(), "user-1", 1)
	require.ErrorIs(t, err, domain.ErrProgressNotFound)
	assert.Empty(t, snapshot.CompletedLectureIDs)
	assert.Equal(t, 0, snapshot.Percent)
	assert.False(t, snapshot.Complete())

	done, err := pu.IsCompleted(context.Background(), "user-1", 1, 998)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestCompleteLecture_PublishesEventOncePerLecture(t *testing.T) {
	pg := &fakeProgressGateway{}
	pu := newTestUseCase(pg, &fakeCourseGateway{course: fiveLectureCourse()})
	sub := pu.Broker.Subscribe("user-1")
	defer pu.Broker.Unsubscribe(sub)

	_, err := pu.CompleteLecture(context.Background(), "user-1", "tid-9", 1, 10)
	require.NoError(t, err)
	_, err = pu.CompleteLecture(context.Background(), "user-1", "tid-9", 1, 10)
	require.NoError(t, err)

	event := <-sub.C
	assert.Equal(t, int64(10), event.LectureID)
	assert.Equal(t, int64(1), event.CourseID)
	assert.Equal(t, 20, event.Percent)
	select {
	case extra := <-sub.C:
		t.Fatalf("unexpected second event: %+v", extra)
	default:
	}

	// upstream was still told both times
	assert.Equal(t, []int64{10, 10}, pg.completions)
}

func TestCompleteLecture_SwitchingCourseResetsSnapshot(t *testing.T) {
	pg := &fakeProgressGateway{}
	pu := newTestUseCase(pg, &fakeCourseGateway{course: fiveLectureCourse()})

	_, err := pu.CompleteLecture(context.Background(), "user-1", "", 1, 10)
	require.NoError(t, err)

	snapshot, err := pu.Snapshot(context.Background(), "user-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.CompletedCount)
}

func TestBroker_OnlyMatchingLearnerReceives(t *testing.T) {
	broker := NewBroker()
	mine := broker.Subscribe("user-1")
	other := broker.Subscribe("user-2")
	defer broker.Unsubscribe(mine)
	defer broker.Unsubscribe(other)

	broker.Publish(domain.CompletionEvent{UserID: "user-1", CourseID: 1, LectureID: 10})

	assert.Len(t, mine.C, 1)
	assert.Len(t, other.C, 0)
}

package progress

import (
	"testing"

	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ActivateResetsOnCourseChange(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Session("user-1")

	session.Activate(1)
	_, _, err := session.MarkCompleted(1, 10)
	require.NoError(t, err)

	session.Activate(2)
	snapshot, err := session.Snapshot(2)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.CompletedCount)

	// re-activating the same course keeps state
	session.Activate(2)
	_, _, err = session.MarkCompleted(2, 20)
	require.NoError(t, err)
	session.Activate(2)
	done, err := session.IsCompleted(2, 20)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSession_StaleReconcileDiscarded(t *testing.T) {
	session := NewSessionManager().Session("user-1")
	session.Activate(1)

	// a refresh for course 1 is in flight while the learner opens course 2
	session.Activate(2)
	session.MarkCompleted(2, 20)

	err := session.Reconcile(1, &domain.ProgressSnapshot{
		TotalCount:          5,
		CompletedLectureIDs: []int64{10, 11},
	})
	assert.ErrorIs(t, err, domain.ErrStaleResponse)

	// state of the active course is untouched
	snapshot, err := session.Snapshot(2)
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, snapshot.CompletedLectureIDs)
}

func TestSession_MarkDuringInflightRefreshSurvivesReconcile(t *testing.T) {
	session := NewSessionManager().Session("user-1")
	session.Activate(1)

	// refresh-then-mark: the server response was produced before the mark
	_, _, err := session.MarkCompleted(1, 30)
	require.NoError(t, err)
	require.NoError(t, session.Reconcile(1, &domain.ProgressSnapshot{
		TotalCount:          3,
		CompletedLectureIDs: []int64{10},
	}))

	done, err := session.IsCompleted(1, 30)
	require.NoError(t, err)
	assert.True(t, done)

	snapshot, err := session.Snapshot(1)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.CompletedCount)
	assert.Equal(t, 67, snapshot.Percent)
}

func TestSessionManager_OneSessionPerLearner(t *testing.T) {
	manager := NewSessionManager()
	assert.Same(t, manager.Session("a"), manager.Session("a"))
	assert.NotSame(t, manager.Session("a"), manager.Session("b"))

	manager.Drop("a")
	assert.NotNil(t, manager.Session("a"))
}

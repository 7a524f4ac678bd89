package progress

import (
	"testing"

	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_MarkCompletedIdempotent(t *testing.T) {
	tracker := NewTracker()
	tracker.SetLocalTotal(4)

	assert.True(t, tracker.MarkCompleted(10))
	assert.False(t, tracker.MarkCompleted(10))

	snapshot := tracker.Snapshot()
	assert.Equal(t, 1, snapshot.CompletedCount)
	assert.Equal(t, []int64{10}, snapshot.CompletedLectureIDs)
}

func TestTracker_ReconcileUnionKeepsOptimisticMark(t *testing.T) {
	tracker := NewTracker()
	tracker.MarkCompleted(10)

	// server read is stale, it does not know lecture 10 yet
	tracker.Reconcile(&domain.ProgressSnapshot{
		TotalCount:          4,
		CompletedCount:      1,
		CompletedLectureIDs: []int64{20},
	})

	assert.True(t, tracker.IsCompleted(10))
	assert.True(t, tracker.IsCompleted(20))
	snapshot := tracker.Snapshot()
	assert.Equal(t, 2, snapshot.CompletedCount)
	assert.Equal(t, 50, snapshot.Percent)
}

func TestTracker_UnmarkOnlyTouchesPendingLayer(t *testing.T) {
	tracker := NewTracker()
	tracker.Reconcile(&domain.ProgressSnapshot{
		TotalCount:          4,
		CompletedCount:      1,
		CompletedLectureIDs: []int64{20},
	})
	tracker.MarkCompleted(10)

	tracker.Unmark(10)
	tracker.Unmark(20)

	assert.False(t, tracker.IsCompleted(10))
	// server-confirmed completion is authoritative and stays
	assert.True(t, tracker.IsCompleted(20))
	assert.Equal(t, 1, tracker.Snapshot().CompletedCount)
}

func TestTracker_ReconcileSupersedesConfirmedMarks(t *testing.T) {
	tracker := NewTracker()
	tracker.MarkCompleted(10)

	tracker.Reconcile(&domain.ProgressSnapshot{
		TotalCount:          2,
		CompletedCount:      1,
		CompletedLectureIDs: []int64{10},
	})

	// no double counting once the server confirms the same lecture
	snapshot := tracker.Snapshot()
	assert.Equal(t, 1, snapshot.CompletedCount)
	assert.Equal(t, []int64{10}, snapshot.CompletedLectureIDs)

	// a later reconcile without 10 drops it: the server is authoritative for
	// completions it has confirmed once
	tracker.Reconcile(&domain.ProgressSnapshot{TotalCount: 2})
	assert.False(t, tracker.IsCompleted(10))
}

func TestTracker_TotalResolutionPriority(t *testing.T) {
	tracker := NewTracker()
	tracker.SetLocalTotal(10)
	tracker.MarkCompleted(1)
	assert.Equal(t, 10, tracker.Snapshot().TotalCount)

	// a nonzero server total wins over the local count
	tracker.Reconcile(&domain.ProgressSnapshot{TotalCount: 8, CompletedLectureIDs: []int64{1}})
	assert.Equal(t, 8, tracker.Snapshot().TotalCount)

	// a zero server total falls back to the local count
	tracker.Reconcile(&domain.ProgressSnapshot{CompletedLectureIDs: []int64{1}})
	assert.Equal(t, 10, tracker.Snapshot().TotalCount)
}

func TestTracker_SnapshotWithNoTotal(t *testing.T) {
	tracker := NewTracker()
	tracker.MarkCompleted(1)

	snapshot := tracker.Snapshot()
	assert.Equal(t, 0, snapshot.TotalCount)
	assert.Equal(t, 0, snapshot.Percent)
	assert.Equal(t, 1, snapshot.CompletedCount)
}

func TestPercent(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 10, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{3, 4, 75},
		{4, 4, 100},
		{7, 4, 100}, // clamped
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Percent(c.completed, c.total), "Percent(%d, %d)", c.completed, c.total)
	}
}

func TestPercent_AlwaysInRange(t *testing.T) {
	for completed := 0; completed <= 20; completed++ {
		for total := 0; total <= 12; total++ {
			percent := Percent(completed, total)
			require.GreaterOrEqual(t, percent, 0)
			require.LessOrEqual(t, percent, 100)
		}
	}
}

package progress

import (
	"sort"

	"github.com/sazonlab/campus-bff/internal/domain"
)

// Tracker two-layer completion state for one learner on one course: an
// authoritative base replaced wholesale on reconcile plus an optimistic
// overlay of locally submitted completions. The union of both layers is what
// the learner sees, so a stale server read can never "uncomplete" a lecture
// that was just marked. Not safe for concurrent use, Session adds the lock.
type Tracker struct {
	authoritative map[int64]struct{}
	pending       map[int64]struct{}
	serverTotal   int
	localTotal    int
}

// NewTracker empty state, 0 of 0 lectures completed
func NewTracker() *Tracker {
	return &Tracker{
		authoritative: make(map[int64]struct{}),
		pending:       make(map[int64]struct{}),
	}
}

// SetLocalTotal record the locally counted lecture total, used only when the
// server never reported a nonzero total
func (t *Tracker) SetLocalTotal(total int) {
	if total > 0 {
		t.localTotal = total
	}
}

// MarkCompleted add an optimistic completion. Idempotent: re-marking a
// completed lecture reports false and changes nothing.
func (t *Tracker) MarkCompleted(lectureID int64) bool {
	if t.IsCompleted(lectureID) {
		return false
	}
	t.pending[lectureID] = struct{}{}
	return true
}

// Unmark withdraw an optimistic completion. Only the pending overlay is
// touched, a server-confirmed completion is authoritative and stays.
func (t *Tracker) Unmark(lectureID int64) {
	delete(t.pending, lectureID)
}

// IsCompleted membership across both layers
func (t *Tracker) IsCompleted(lectureID int64) bool {
	if _, ok := t.authoritative[lectureID]; ok {
		return true
	}
	_, ok := t.pending[lectureID]
	return ok
}

// Reconcile replace the authoritative base with the server view. Pending
// completions the server now confirms are superseded, the rest stay in the
// overlay so the union never regresses.
func (t *Tracker) Reconcile(server *domain.ProgressSnapshot) {
	base := make(map[int64]struct{}, len(server.CompletedLectureIDs))
	for _, id := range server.CompletedLectureIDs {
		base[id] = struct{}{}
	}
	t.authoritative = base
	t.serverTotal = server.TotalCount
	for id := range t.pending {
		if _, ok := base[id]; ok {
			delete(t.pending, id)
		}
	}
}

// Total server-reported total wins when nonzero, else the local count
func (t *Tracker) Total() int {
	if t.serverTotal > 0 {
		return t.serverTotal
	}
	return t.localTotal
}

// Snapshot derive the canonical progress view from the current union
func (t *Tracker) Snapshot() *domain.ProgressSnapshot {
	ids := make([]int64, 0, len(t.authoritative)+len(t.pending))
	for id := range t.authoritative {
		ids = append(ids, id)
	}
	for id := range t.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := t.Total()
	return &domain.ProgressSnapshot{
		Percent:             Percent(len(ids), total),
		CompletedCount:      len(ids),
		TotalCount:          total,
		CompletedLectureIDs: ids,
	}
}

// Percent round-half-up of 100*completed/total, clamped to [0,100],
// 0 when the total is unknown
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	percent := (100*completed + total/2) / total
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

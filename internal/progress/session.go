package progress

import (
	"sync"

	"github.com/sazonlab/campus-bff/internal/domain"
)

// Session owns the progress state of one learner for the currently viewed
// course. Switching to another course discards the old tracker and starts a
// fresh one, snapshots are never mutated across courses. All methods take the
// course id the caller believes is active, a mismatch classifies as a stale
// response and leaves the state untouched.
type Session struct {
	mu       sync.Mutex
	userID   string
	courseID int64
	tracker  *Tracker
}

// Activate make courseID the active course, resetting state on change
func (s *Session) Activate(courseID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.courseID != courseID || s.tracker == nil {
		s.courseID = courseID
		s.tracker = NewTracker()
	}
}

// MarkCompleted apply an optimistic completion and return the resulting
// snapshot. The bool result is false when the lecture was already completed.
func (s *Session) MarkCompleted(courseID, lectureID int64) (*domain.ProgressSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(courseID); err != nil {
		return nil, false, err
	}
	first := s.tracker.MarkCompleted(lectureID)
	return s.tracker.Snapshot(), first, nil
}

// UnmarkCompleted withdraw an optimistic completion, eg. after the upstream
// definitively rejected the lecture id, and return the resulting snapshot
func (s *Session) UnmarkCompleted(courseID, lectureID int64) (*domain.ProgressSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(courseID); err != nil {
		return nil, err
	}
	s.tracker.Unmark(lectureID)
	return s.tracker.Snapshot(), nil
}

// IsCompleted membership test for the active course
func (s *Session) IsCompleted(courseID, lectureID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(courseID); err != nil {
		return false, err
	}
	return s.tracker.IsCompleted(lectureID), nil
}

// Reconcile merge an authoritative server snapshot into the session.
// A snapshot fetched for a course that is no longer active is rejected with
// ErrStaleResponse and discarded.
func (s *Session) Reconcile(courseID int64, server *domain.ProgressSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(courseID); err != nil {
		return err
	}
	s.tracker.Reconcile(server)
	return nil
}

// SetLocalTotal record the locally counted lecture total fallback
func (s *Session) SetLocalTotal(courseID int64, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(courseID); err != nil {
		return err
	}
	s.tracker.SetLocalTotal(total)
	return nil
}

// Snapshot current progress view for the active course
func (s *Session) Snapshot(courseID int64) (*domain.ProgressSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(courseID); err != nil {
		return nil, err
	}
	return s.tracker.Snapshot(), nil
}

func (s *Session) guard(courseID int64) error {
	if s.tracker == nil || s.courseID != courseID {
		return domain.ErrStaleResponse
	}
	return nil
}

// SessionManager hands out one Session per learner, created on demand
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager ...
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Session session for the given learner
func (sm *SessionManager) Session(userID string) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s, ok := sm.sessions[userID]; ok {
		return s
	}
	s := &Session{userID: userID}
	sm.sessions[userID] = s
	return s
}

// Drop discard a learner session, eg. on sign-out
func (sm *SessionManager) Drop(userID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, userID)
}

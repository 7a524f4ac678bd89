package quiz

import (
	"time"

	"github.com/sazonlab/campus-bff/internal/domain"
)

// CanAttemptQuiz derived eligibility: the course must be fully completed and
// any retry throttle from a previous attempt must have elapsed. Recomputed
// from its inputs on every call, nothing is cached.
func CanAttemptQuiz(snapshot *domain.ProgressSnapshot, status *domain.QuizStatus) bool {
	return CanAttemptQuizAt(snapshot, status, time.Now())
}

// CanAttemptQuizAt same check against an explicit clock
func CanAttemptQuizAt(snapshot *domain.ProgressSnapshot, status *domain.QuizStatus, now time.Time) bool {
	if snapshot == nil || !snapshot.Complete() {
		return false
	}
	if status != nil && status.RetryAvailableAt != nil && now.Before(*status.RetryAvailableAt) {
		return false
	}
	return true
}

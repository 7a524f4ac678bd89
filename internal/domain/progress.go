package domain

import "context"

// ProgressSnapshot canonical progress view for a learner on one course.
// CompletedLectureIDs carries membership only, order has no meaning.
type ProgressSnapshot struct {
	Percent             int     `json:"percent"`
	CompletedCount      int     `json:"completed_count"`
	TotalCount          int     `json:"total_count"`
	CompletedLectureIDs []int64 `json:"completed_lecture_ids"`
}

// Completed membership test against the snapshot
func (ps *ProgressSnapshot) Completed(lectureID int64) bool {
	for _, id := range ps.CompletedLectureIDs {
		if id == lectureID {
			return true
		}
	}
	return false
}

// Complete true once every lecture of the course is done
func (ps *ProgressSnapshot) Complete() bool {
	return ps.TotalCount > 0 && ps.CompletedCount >= ps.TotalCount
}

// CompletionEvent optimistic, locally-originated completion fact
type CompletionEvent struct {
	UserID    string `json:"user_id"`
	CourseID  int64  `json:"course_id"`
	LectureID int64  `json:"lecture_id"`
	Percent   int    `json:"percent"`
}

// CompleteLectureInput payload for the upstream completion call
type CompleteLectureInput struct {
	UserID          string `json:"userId"`
	TeachableUserID string `json:"teachableUserId,omitempty"`
}

// ProgressGateway upstream progress API boundary.
// FetchProgress reports a missing progress record via ErrProgressNotFound
// and malformed payloads degrade to an empty snapshot, they never fail hard.
type ProgressGateway interface {
	FetchProgress(ctx context.Context, courseID int64, userID string) (*ProgressSnapshot, error)
	CompleteLecture(ctx context.Context, courseID, lectureID int64, input *CompleteLectureInput) error
}

// ProgressUseCase per-session progress operations
type ProgressUseCase interface {
	Refresh(ctx context.Context, userID string, courseID int64) (*ProgressSnapshot, error)
	CompleteLecture(ctx context.Context, userID, teachableUserID string, courseID, lectureID int64) (*ProgressSnapshot, error)
	Snapshot(ctx context.Context, userID string, courseID int64) (*ProgressSnapshot, error)
	IsCompleted(ctx context.Context, userID string, courseID, lectureID int64) (bool, error)
}

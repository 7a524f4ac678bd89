package domain

import (
	"context"
	"time"
)

// QuizQuestionModel public question view, answer indexes are never exposed
type QuizQuestionModel struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// QuizModel quiz content as served to learners
type QuizModel struct {
	ID        string              `json:"id"`
	CourseID  int64               `json:"course_id"`
	Title     string              `json:"title"`
	Questions []QuizQuestionModel `json:"questions"`
}

// QuizSubmissionModel graded attempt record, grading happens upstream
type QuizSubmissionModel struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	QuizID  string `json:"quiz_id"`
	Score   int    `json:"score"`
	Passed  bool   `json:"passed"`
	Answers []int  `json:"answers"`
}

// QuizResultModel outcome of a submission including retry throttling
type QuizResultModel struct {
	Score            int                  `json:"score"`
	Passed           bool                 `json:"passed"`
	Submission       *QuizSubmissionModel `json:"submission,omitempty"`
	RetryAfter       time.Duration        `json:"-"`
	RetryAvailableAt *time.Time           `json:"retry_available_at,omitempty"`
}

// QuizStatus externally supplied attempt context used by the eligibility gate
type QuizStatus struct {
	HasQuiz          bool
	Passed           bool
	RetryAvailableAt *time.Time
}

// SubmitQuizInput learner answers forwarded upstream for grading
type SubmitQuizInput struct {
	UserID  string `json:"userId"`
	Answers []int  `json:"answers"`
}

// QuizGateway upstream quiz API boundary
type QuizGateway interface {
	GetQuizzes(ctx context.Context, courseID int64) ([]*QuizModel, error)
	GetQuiz(ctx context.Context, courseID int64, quizID string) (*QuizModel, error)
	SubmitQuiz(ctx context.Context, courseID int64, quizID string, input *SubmitQuizInput) (*QuizResultModel, error)
}

// QuizUseCase quiz operations gated on course completion
type QuizUseCase interface {
	GetQuizzes(ctx context.Context, courseID int64) ([]*QuizModel, error)
	GetQuiz(ctx context.Context, userID string, courseID int64, quizID string) (*QuizModel, error)
	SubmitQuiz(ctx context.Context, userID string, courseID int64, quizID string, answers []int) (*QuizResultModel, error)
}

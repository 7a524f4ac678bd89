package quiz

import (
	"context"
	"errors"

	"github.com/sazonlab/campus-bff/internal/domain"
	"go.elastic.co/apm"
)

// QuizUseCaseImpl quiz access gated on course completion, grading stays upstream
type QuizUseCaseImpl struct {
	QuizGateway     domain.QuizGateway
	ProgressUseCase domain.ProgressUseCase
}

var _ domain.QuizUseCase = &QuizUseCaseImpl{}

// NewQuizUseCase ...
func NewQuizUseCase(QuizGateway domain.QuizGateway, ProgressUseCase domain.ProgressUseCase) *QuizUseCaseImpl {
	return &QuizUseCaseImpl{QuizGateway, ProgressUseCase}
}

// GetQuizzes list a course's quizzes, titles are not gated
func (qu *QuizUseCaseImpl) GetQuizzes(ctx context.Context, courseID int64) ([]*domain.QuizModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "QuizUseCaseImpl.GetQuizzes", "service")
	defer apmSpan.End()

	return qu.QuizGateway.GetQuizzes(ctx, courseID)
}

// GetQuiz fetch quiz content, only for learners who completed the course
func (qu *QuizUseCaseImpl) GetQuiz(ctx context.Context, userID string, courseID int64, quizID string) (*domain.QuizModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "QuizUseCaseImpl.GetQuiz", "service")
	defer apmSpan.End()

	if err := qu.requireEligible(ctx, userID, courseID); err != nil {
		return nil, err
	}
	return qu.QuizGateway.GetQuiz(ctx, courseID, quizID)
}

// SubmitQuiz forward answers upstream for grading, gated like GetQuiz.
// Retry throttling of failed attempts is enforced upstream and surfaced
// verbatim in the result.
func (qu *QuizUseCaseImpl) SubmitQuiz(ctx context.Context, userID string, courseID int64, quizID string, answers []int) (*domain.QuizResultModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "QuizUseCaseImpl.SubmitQuiz", "service")
	defer apmSpan.End()

	if err := qu.requireEligible(ctx, userID, courseID); err != nil {
		return nil, err
	}
	return qu.QuizGateway.SubmitQuiz(ctx, courseID, quizID, &domain.SubmitQuizInput{
		UserID:  userID,
		Answers: answers,
	})
}

// requireEligible recompute eligibility from a fresh progress read.
// "Not started" counts as not eligible, transport failures propagate so the
// caller can retry instead of being wrongly locked out forever.
func (qu *QuizUseCaseImpl) requireEligible(ctx context.Context, userID string, courseID int64) error {
	snapshot, err := qu.ProgressUseCase.Refresh(ctx, userID, courseID)
	if err != nil && !errors.Is(err, domain.ErrProgressNotFound) {
		return err
	}
	if !CanAttemptQuiz(snapshot, nil) {
		return domain.ErrNotEligible
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
)

// ErrProgressNotFound no progress record exists yet for this learner/course pair.
// Benign, callers render "not started" instead of an error.
var ErrProgressNotFound = errors.New("No progress recorded for this course yet")

// ErrStaleResponse a fetch resolved for a course/user pair that is no longer
// the active context. Discarded, never applied or surfaced to the learner.
var ErrStaleResponse = errors.New("Response no longer matches the active course")

// ErrNotEligible learner has not met the completion requirements
var ErrNotEligible = errors.New("Course is not completed yet")

// ErrQuizNotPassed certificate requested without a passing quiz submission
var ErrQuizNotPassed = errors.New("Quiz has not been passed yet")

// ErrNoSuchCourse upstream does not know the course
var ErrNoSuchCourse = errors.New("No such course")

// ErrNoSuchLecture upstream does not know the lecture
var ErrNoSuchLecture = errors.New("No such lecture")

// ErrNoSuchVideo upstream does not know the video
var ErrNoSuchVideo = errors.New("No such video")

// ErrNoSuchQuiz upstream does not know the quiz
var ErrNoSuchQuiz = errors.New("No such quiz")

// ErrNoSuchCertificate certificate id cannot be resolved
var ErrNoSuchCertificate = errors.New("No such certificate")

// TransportError network or server failure while talking to upstream.
// The previous in-memory state is left untouched and the call may be retried.
type TransportError struct {
	Op  string
	Err error
}

func (te *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", te.Op, te.Err)
}

func (te *TransportError) Unwrap() error {
	return te.Err
}

// NewTransportError wrap an upstream failure with the operation that hit it
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// IsTransportError report whether err classifies as a transport failure
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

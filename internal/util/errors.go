package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrCompetencyNotFound = errors.New("competency not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAnswerNotFound     = errors.New("answer option not found")
	ErrKeyNotFound        = errors.New("answer key not found")
	ErrResultNotFound     = errors.New("result not found")
	ErrAttemptNotFound    = errors.New("attempt not found")

	ErrTestAlreadyCompleted = errors.New("test already completed")
	ErrTestNotStarted       = errors.New("test not started")
	ErrIncompleteSubmission = errors.New("submission does not answer every question")

	ErrHasResults       = errors.New("competency has recorded results")
	ErrPermissionDenied = errors.New("permission denied")
)

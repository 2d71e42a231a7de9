package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrNotLinked          = errors.New("learner is not linked to this account")
	ErrNotALearner        = errors.New("user is not a learner")
	ErrEmptyMessage       = errors.New("message must not be empty")
	ErrHelpNotFound       = errors.New("help request not found")
	ErrAlreadyLinked      = errors.New("learner already linked")
	ErrPhraseNotFound     = errors.New("encouragement phrase not found")
	ErrLastEnabledPhrase  = errors.New("at least one phrase must stay enabled")
)

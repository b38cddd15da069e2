package util

import "errors"

var (
	// exam workflow
	ErrEmptyQuestionSet     = errors.New("no questions available for this subject")
	ErrInvalidAnswerOption  = errors.New("answer is not one of the question's options")
	ErrAlreadySubmitted     = errors.New("exam already submitted")
	ErrBlocked              = errors.New("exam already taken")
	ErrAttemptNotStarted    = errors.New("exam not started")
	ErrQuestionNotInAttempt = errors.New("question is not part of this exam attempt")

	// question bank and catalog
	ErrInvalidQuestion = errors.New("invalid question: text, at least two distinct options and an answer among them are required")
	ErrInvalidName     = errors.New("name must not be empty")
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")

	// accounts
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrInvalidPassword    = errors.New("password must not be empty")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrStoreUnavailable = errors.New("document store unavailable, try again")
)

package model

import "errors"

// Domain errors. All of them are recoverable at the request boundary:
// controllers and the chat adapter translate them into user-facing
// messages instead of failing the process.
var (
	// ErrBadFormat means the raw input did not match the expected wire
	// format (CODE|NAME+ANSWERS, CODE*ANSWERS, or a bonus-score list).
	ErrBadFormat = errors.New("malformed input")

	// ErrDuplicateCode means a test with the requested code already exists.
	ErrDuplicateCode = errors.New("test code already exists")

	// ErrTestNotFound means no test matches the given code.
	ErrTestNotFound = errors.New("test not found")

	// ErrAlreadyAttempted means the user already has a graded attempt for
	// the test. Not retryable.
	ErrAlreadyAttempted = errors.New("test already attempted")

	// ErrEmptyAnswerKey guards scoring against a test with no answer key.
	ErrEmptyAnswerKey = errors.New("test has an empty answer key")

	// ErrUserNotFound means the user has not completed registration.
	ErrUserNotFound = errors.New("user not found")
)

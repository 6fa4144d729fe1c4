package util

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrSessionNotFound       = errors.New("test session not found")
	ErrNoQuestionsAvailable  = errors.New("no questions could be loaded for this configuration")
	ErrQuestionSourceTimeout = errors.New("question source timed out")
	ErrQuestionSourceFailure = errors.New("failed to load questions")
	ErrInvalidSession        = errors.New("invalid test session")
)

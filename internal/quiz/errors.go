package quiz

import "errors"

var (
	ErrEmptySession  = errors.New("quiz: no questions to ask")
	ErrNoQuestions   = errors.New("quiz: no questions in this category")
	ErrBlankAnswer   = errors.New("quiz: answer is blank")
	ErrAlreadyGraded = errors.New("quiz: current question already graded")
	ErrNotGraded     = errors.New("quiz: current question not graded yet")
	ErrFinished      = errors.New("quiz: session finished")
	ErrClosed        = errors.New("quiz: session closed")
	ErrNoOption      = errors.New("quiz: option out of range")
)

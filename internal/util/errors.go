package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user does not exist")
	ErrSubjectNotFound    = errors.New("subject does not exist")
	ErrChapterNotFound    = errors.New("chapter does not exist")
	ErrQuizNotFound       = errors.New("quiz does not exist")
	ErrQuestionNotFound   = errors.New("question does not exist")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrNameTaken          = errors.New("user name already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateName      = errors.New("name already in use")
	// ErrAlreadyAttempted 单次作答策略下的重复尝试，映射为 403 而非服务端错误
	ErrAlreadyAttempted = errors.New("you can only attempt this quiz once")
	// ErrNoQuestions 题目为空的测验不允许提交，避免除零
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrInvalidDuration = errors.New("quiz duration must be greater than zero")
)

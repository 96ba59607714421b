package domain

import "errors"

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidQuestionID = errors.New("invalid question id")
	ErrInvalidOption     = errors.New("invalid option for this question")
	ErrAlreadyVoted      = errors.New("session has already voted on this question")
	ErrVoteNotFound      = errors.New("no vote for this session")
	ErrValidation        = errors.New("validation failed")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrInternal          = errors.New("internal server error")
)

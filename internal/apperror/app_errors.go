package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidStep     = errors.New("invalid history step")
	ErrInvalidMark     = errors.New("invalid player mark")
)

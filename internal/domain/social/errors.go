package social

import "errors"

var (
	ErrSelfFollowNotAllowed = errors.New("users cannot follow themselves")
	ErrTargetNotFound       = errors.New("target user not found")
)

package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrParentMismatch  = errors.New("parent comment belongs to another post")
	ErrNotOwner        = errors.New("user is not the comment owner")
)

package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("not the post owner")
	ErrNotVisible   = errors.New("post is not visible")
)

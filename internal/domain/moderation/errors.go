package moderation

import "errors"

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrTargetNotFound    = errors.New("report target not found")
	ErrDuplicateReport   = errors.New("target already reported by this user")
	ErrUnsupportedAction = errors.New("action not applicable to this target type")
)

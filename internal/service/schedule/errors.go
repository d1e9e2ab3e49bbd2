package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidCounselor = errors.New("counselor id is required")
)

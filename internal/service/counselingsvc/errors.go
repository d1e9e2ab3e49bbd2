package counselingsvc

import "errors"

var (
	ErrScheduleNotFound   = errors.New("selected schedule no longer exists")
	ErrCounselingNotFound = errors.New("counseling not found")
)

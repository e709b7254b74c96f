package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrAlreadyApproved  = errors.New("employee registration already processed")
)

package domain

import "errors"

var (
	ErrConstructionNotFound  = errors.New("construction not found")
	ErrNonPositiveResistance = errors.New("total thermal resistance is not positive")
	ErrNonFiniteUValue       = errors.New("u-value is not finite")
	ErrResourcesNotFound     = errors.New("resources path not found")
	ErrInvalidProjectName    = errors.New("invalid project name")
)

package domain

import "errors"

var (
	ErrRunNotFound     = errors.New("simulation run not found")
	ErrSummaryNotFound = errors.New("simulation summary not found")
	ErrInvalidStatus   = errors.New("invalid run status")
	ErrRunFinished     = errors.New("simulation run already finished")
	ErrEngineNotFound  = errors.New("energyplus executable not found")
	ErrNotSupported    = errors.New("not supported")
)

package common

import "errors"

var (
	// ErrLoggerRequired is returned when CommandDeps.Logger is nil.
	ErrLoggerRequired = errors.New("logger is required")

	// ErrConfigRequired is returned when CommandDeps.Config is nil.
	ErrConfigRequired = errors.New("config is required")

	// ErrWikiRequired is returned when CommandDeps.Wiki is nil.
	ErrWikiRequired = errors.New("confluence client is required")
)

// Package util provides logging helpers, duration formatting and small
// generic helpers.
package util

import "github.com/rs/zerolog"

// LogError logs an error with context if it is non-nil.
func LogError(logger zerolog.Logger, context string, err error) {
	if err != nil {
		logger.Error().Err(err).Msg(context)
	}
}

// LogWarn logs a recoverable error with context if it is non-nil.
func LogWarn(logger zerolog.Logger, context string, err error) {
	if err != nil {
		logger.Warn().Err(err).Msg(context)
	}
}

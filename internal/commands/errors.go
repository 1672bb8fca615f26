package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// wrapValidationError attaches the validation category and text code to err.
// Errors that already carry a category pass through untouched.
func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

// wrapContextError maps context cancellation and deadline errors to their
// command text codes so callers can distinguish them from handler failures.
func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

// wrapExecuteError covers handler failures that reached the dispatcher
// without a category of their own.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}

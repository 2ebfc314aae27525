package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures.
const (
	CodeInvalidMessage = "BLOG_COMMAND_INVALID_MESSAGE"
	CodeCanceled       = "BLOG_COMMAND_CANCELED"
	CodeTimeout        = "BLOG_COMMAND_TIMEOUT"
	CodeContext        = "BLOG_COMMAND_CONTEXT"
	CodeFailed         = "BLOG_COMMAND_FAILED"
)

type failure struct {
	validation bool
	message    string
	code       string
}

var (
	badMessage    = failure{validation: true, message: "command message is invalid", code: CodeInvalidMessage}
	canceled      = failure{message: "command cancelled", code: CodeCanceled}
	timedOut      = failure{message: "command deadline exceeded", code: CodeTimeout}
	contextFailed = failure{message: "command context failed", code: CodeContext}
	execFailed    = failure{message: "command failed", code: CodeFailed}
)

// tag wraps err with the failure's category and code. Errors already carrying
// a go-errors category keep it.
func (f failure) tag(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	category := goerrors.CategoryCommand
	if f.validation {
		category = goerrors.CategoryValidation
	}
	return goerrors.Wrap(err, category, f.message).WithTextCode(f.code)
}

func wrapValidationError(err error) error {
	return badMessage.tag(err)
}

func wrapExecuteError(err error) error {
	return execFailed.tag(err)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return canceled.tag(err)
	case errors.Is(err, context.DeadlineExceeded):
		return timedOut.tag(err)
	default:
		return contextFailed.tag(err)
	}
}

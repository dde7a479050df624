package exitcode

import (
	"errors"

	"github.com/SuyashParmar/network-auditor/internal/audit"
	"github.com/SuyashParmar/network-auditor/internal/device"
	"github.com/SuyashParmar/network-auditor/internal/prompt"
)

const (
	OK            = 0
	Generic       = 1
	Validation    = 2
	Retrieval     = 3
	Serialization = 4
	Cancelled     = 130
)

type Error struct {
	Code  int
	Cause error
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Cause: err}
}

func Of(err error) int {
	if err == nil {
		return OK
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	var retrievalErr *device.RetrievalError
	if errors.As(err, &retrievalErr) {
		return Retrieval
	}

	var serializationErr *audit.SerializationError
	if errors.As(err, &serializationErr) {
		return Serialization
	}

	if errors.Is(err, prompt.ErrCancelled) {
		return Cancelled
	}
	return Generic
}

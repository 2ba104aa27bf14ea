// Package result provides the tagged outcome envelope returned at the
// core's in-process boundary. A Result is either a success carrying a
// payload, a failure carrying a message and numeric classification code,
// or a no-content success for operations with nothing to return.
package result

import "stockroom/internal/core/apperror"

// Result is the sole channel for propagating operation outcomes across
// the core boundary. ErrorCode is the numeric classification the
// transport layer maps to protocol status (404, 400, 409, 422, 500).
type Result[T any] struct {
	IsSuccess    bool   `json:"isSuccess"`
	Data         T      `json:"data,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	ErrorCode    int    `json:"errorCode,omitempty"`
	IsNoContent  bool   `json:"isNoContent,omitempty"`
}

// Success wraps a payload in a successful result.
func Success[T any](data T) Result[T] {
	return Result[T]{IsSuccess: true, Data: data}
}

// Failure creates a failed result with a message and classification code.
func Failure[T any](message string, code int) Result[T] {
	return Result[T]{ErrorMessage: message, ErrorCode: code}
}

// NoContent signals a successful operation with nothing to return.
func NoContent[T any]() Result[T] {
	return Result[T]{IsSuccess: true, IsNoContent: true}
}

// Of converts a (data, err) pair into a Result. A nil error becomes a
// success; an AppError keeps its message and HTTP-aligned code; any
// other error is classified as a storage failure so that raw
// infrastructure faults never cross the boundary.
func Of[T any](data T, err error) Result[T] {
	if err == nil {
		return Success(data)
	}
	return FromError[T](err)
}

// FromError converts an error into a failed Result.
func FromError[T any](err error) Result[T] {
	if appErr, ok := apperror.AsAppError(err); ok {
		return Failure[T](appErr.Message, appErr.HTTPStatus)
	}
	storage := apperror.NewStorageFailure(err)
	return Failure[T](storage.Message, storage.HTTPStatus)
}

// OfNoContent converts an error-only outcome into a Result.
func OfNoContent[T any](err error) Result[T] {
	if err == nil {
		return NoContent[T]()
	}
	return FromError[T](err)
}

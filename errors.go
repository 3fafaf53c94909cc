package ndarr

import "errors"

// Sentinel errors returned by the array engine. Callers match them
// with errors.Is; functions wrap them with fmt.Errorf("...: %w", ...)
// when extra context helps.
var (
	// ErrDims signals a rank or axis problem: too many dimensions,
	// an axis index out of range, or a repeated axis.
	ErrDims = errors.New("ndarr: dimension error")

	// ErrShape signals incompatible shapes or element counts between
	// operands, or an invalid requested shape.
	ErrShape = errors.New("ndarr: shape mismatch")

	// ErrDType signals an unknown dtype tag.
	ErrDType = errors.New("ndarr: unknown dtype")

	// ErrBroadcast signals that two operands could not be broadcast
	// together, or that broadcasting would grow an output operand.
	ErrBroadcast = errors.New("ndarr: operands could not be broadcast together")

	// ErrIndex signals an invalid subscript: out of range, wrong
	// count, or more than one ellipsis.
	ErrIndex = errors.New("ndarr: index error")

	// ErrDomain signals that a floating function produced NaN or Inf
	// from a finite input.
	ErrDomain = errors.New("ndarr: math domain error")

	// ErrUnsupported signals an element operation that is not defined
	// for the dtype pair involved.
	ErrUnsupported = errors.New("ndarr: operation not supported for dtype")

	// ErrNotImplemented signals a declared but unimplemented
	// operation.
	ErrNotImplemented = errors.New("ndarr: not implemented")
)

package domain

import "errors"

// Loading-time validation failures. Items failing any of these are dropped
// from the working set and their rows queued for deletion; none of them abort
// a migration run.
var (
	ErrUnparseableDescriptor = errors.New("unparseable launch descriptor")
	ErrUnresolvablePackage   = errors.New("package is not installed or installing")
	ErrEmptyFolder           = errors.New("folder has no valid children")
	ErrUnknownKind           = errors.New("unknown item kind")
)

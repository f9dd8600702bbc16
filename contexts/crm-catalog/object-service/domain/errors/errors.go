package errors

import "errors"

var (
	// ErrObjectNotFound covers both records that never existed and records
	// owned by another company; callers cannot tell the two apart.
	ErrObjectNotFound = errors.New("object not found")

	// ErrPermissionDenied means the caller's roles grant no flag covering
	// the attempted operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidObject rejects records failing structural validation.
	ErrInvalidObject = errors.New("invalid object")

	// ErrInvalidListFilter rejects unknown sort columns and malformed
	// field filters.
	ErrInvalidListFilter = errors.New("invalid list filter")

	// ErrInvalidRelation rejects self-links and blank labels.
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrInvalidObjectType rejects blank catalog entries.
	ErrInvalidObjectType = errors.New("invalid object type")
)

package service

import "errors"

var (
	ErrIDRequired = errors.New("id is required")
	ErrReaderNil  = errors.New("reader is nil")

	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateIdentity  = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("not allowed")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidVisibility   = errors.New("visibility must be private or public")
	ErrStorageWrite        = errors.New("storage write failed")
	ErrNotFound            = errors.New("document not found")
	ErrPresignUnsupported  = errors.New("storage backend cannot presign downloads")

	// ErrDocumentNotFound is returned by favorite operations whose document is
	// missing or invisible to the caller.
	ErrDocumentNotFound = errors.New("document not found")
)

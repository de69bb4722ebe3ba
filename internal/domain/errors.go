package domain

import "errors"

var (
	// ErrAuthenticationRequired means a mutating call arrived without a
	// resolved principal. Nothing is appended in that case.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrCommentRequired means a rejection was submitted without a comment.
	ErrCommentRequired = errors.New("comment is required")

	ErrDocumentNotFound = errors.New("document not found")
)

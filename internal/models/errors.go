package models

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks malformed request shapes, rejected before any
// external call is made.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrIndexUnavailable marks a vector index backend failure. It is retryable
// infrastructure trouble, distinct from a query that simply matches nothing.
var ErrIndexUnavailable = errors.New("vector index unavailable")

// AcquisitionError means the source media was unreachable or had no
// extractable audio. Fatal for that video only; sibling videos are unaffected.
type AcquisitionError struct {
	Source string
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.Source, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// UploadError means the blob write for one chunk failed. The chunk is dropped
// from segmentation results; siblings are unaffected and there is no automatic
// retry.
type UploadError struct {
	ChunkID string
	Key     string
	Err     error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload chunk %s (%s): %v", e.ChunkID, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// TranscriptionError means the engine call failed or returned malformed output
// for one chunk. The chunk becomes a coverage gap; siblings are unaffected.
type TranscriptionError struct {
	ChunkID string
	Err     error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcribe chunk %s: %v", e.ChunkID, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

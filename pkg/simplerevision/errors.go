package simplerevision

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrDocumentNotFound indicates a document was not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrRevisionNotFound indicates a revision was not found
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrRevisionExists indicates a revision with the same
	// (document_id, version) already exists
	ErrRevisionExists = errors.New("revision already exists")

	// ErrBlobNotFound indicates a blob was not found in storage
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBlobExists indicates a write-once blob key is already occupied
	ErrBlobExists = errors.New("blob already exists")

	// ErrLinkNotFound indicates a node-document link was not found
	ErrLinkNotFound = errors.New("node document link not found")

	// ErrLinkExists indicates the (node_id, document_id) pair is
	// already linked
	ErrLinkExists = errors.New("node document link already exists")

	// ErrInvalidContent indicates document content failed structural
	// validation
	ErrInvalidContent = errors.New("invalid document content")

	// ErrInvalidVersion indicates a version string is not a valid
	// semantic version
	ErrInvalidVersion = errors.New("invalid version string")
)

// RevisionError represents an error related to revision operations
type RevisionError struct {
	DocumentID uuid.UUID
	Version    string
	Op         string
	Err        error
}

func (e *RevisionError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("revision operation %s failed for document %s: %v", e.Op, e.DocumentID, e.Err)
	}
	return fmt.Sprintf("revision operation %s failed for document %s version %s: %v", e.Op, e.DocumentID, e.Version, e.Err)
}

func (e *RevisionError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob storage operations
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConsistencyError indicates a blob was written but the matching
// revision row could not be inserted. The orphaned key is reported so
// reconciliation can pick it up; see the scan package.
type ConsistencyError struct {
	DocumentID uuid.UUID
	Version    string
	StorageKey string
	Err        error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("blob %s written but revision insert failed for document %s version %s: %v",
		e.StorageKey, e.DocumentID, e.Version, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

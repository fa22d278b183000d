package simplerevision

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// BlobStore defines the interface for revision content storage.
// Payloads are opaque bytes to the store; it never parses them.
//
// Keys are write-once: Put must fail with ErrBlobExists rather than
// silently overwrite an occupied key. The uniqueness check belongs to
// the backend itself (a conditional write, not check-then-put) so the
// guarantee holds across concurrent service instances.
type BlobStore interface {
	// Put writes content under the given key, failing if the key exists
	Put(ctx context.Context, key string, reader io.Reader) error

	// Get reads content stored under the given key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content under the given key. It exists for
	// compensation and reconciliation only; committed revisions are
	// never deleted.
	Delete(ctx context.Context, key string) error

	// List returns the keys stored under the given prefix
	List(ctx context.Context, prefix string) ([]string, error)
}

// Repository defines the interface for document, revision, and
// node-link persistence.
//
// Revision rows are append-only: the interface deliberately has no
// update or delete operation for revisions. CreateRevision must rely on
// the backing store's unique constraint on (document_id, version) to
// reject duplicates; it is the sole serialization point in the system.
type Repository interface {
	// Document operations
	CreateDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	ListDocuments(ctx context.Context) ([]*Document, error)

	// Revision operations. CreateRevision also bumps the parent
	// document's updated_at.
	CreateRevision(ctx context.Context, rev *Revision) error
	GetRevisionByVersion(ctx context.Context, documentID uuid.UUID, version string) (*Revision, error)
	GetLatestRevision(ctx context.Context, documentID uuid.UUID) (*Revision, error)
	ListRevisions(ctx context.Context, documentID uuid.UUID) ([]*Revision, error)

	// Node-document link operations
	CreateNodeLink(ctx context.Context, link *NodeDocumentLink) error
	DeleteNodeLink(ctx context.Context, nodeID, documentID uuid.UUID) error
	ListNodeLinks(ctx context.Context, nodeID uuid.UUID) ([]*NodeDocumentLink, error)
}

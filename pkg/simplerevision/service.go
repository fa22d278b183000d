package simplerevision

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-revision library
type Service interface {
	// Document operations
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	ListDocuments(ctx context.Context) ([]*Document, error)

	// Revision operations
	CreateRevision(ctx context.Context, req CreateRevisionRequest) (*Revision, error)
	ListRevisions(ctx context.Context, documentID uuid.UUID) ([]*Revision, error)
	GetRevision(ctx context.Context, documentID uuid.UUID, version string) (*Revision, error)

	// Content operations. An empty version resolves to the latest
	// revision by creation order.
	GetContent(ctx context.Context, documentID uuid.UUID, version string) (*DocumentContent, *Revision, error)

	// Diff operations
	GetDiff(ctx context.Context, documentID uuid.UUID, fromVersion, toVersion string) (*DiffResult, error)

	// Node-document link operations
	LinkNodeDocument(ctx context.Context, req LinkNodeDocumentRequest) (*NodeDocumentLink, error)
	UnlinkNodeDocument(ctx context.Context, nodeID, documentID uuid.UUID) error
	ListNodeDocuments(ctx context.Context, nodeID uuid.UUID) ([]*NodeDocumentLink, error)
}

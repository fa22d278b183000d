package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-revision/pkg/simplerevision"
)

// Repository implements simplerevision.Repository using in-memory
// storage. Uniqueness of (document_id, version) and
// (node_id, document_id) is enforced under the repository mutex,
// mirroring the unique constraints the Postgres implementation gets
// from the database.
type Repository struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*simplerevision.Document
	revisions map[uuid.UUID][]*simplerevision.Revision // document_id -> revisions in creation order
	links     map[uuid.UUID][]*simplerevision.NodeDocumentLink
}

// New creates a new in-memory repository
func New() simplerevision.Repository {
	return &Repository{
		documents: make(map[uuid.UUID]*simplerevision.Document),
		revisions: make(map[uuid.UUID][]*simplerevision.Revision),
		links:     make(map[uuid.UUID][]*simplerevision.NodeDocumentLink),
	}
}

// Document operations

func (r *Repository) CreateDocument(ctx context.Context, doc *simplerevision.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to avoid external modifications
	docCopy := *doc
	r.documents[doc.ID] = &docCopy

	return nil
}

func (r *Repository) GetDocument(ctx context.Context, id uuid.UUID) (*simplerevision.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.documents[id]
	if !exists {
		return nil, simplerevision.ErrDocumentNotFound
	}

	docCopy := *doc
	return &docCopy, nil
}

func (r *Repository) ListDocuments(ctx context.Context) ([]*simplerevision.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simplerevision.Document, 0, len(r.documents))
	for _, doc := range r.documents {
		docCopy := *doc
		result = append(result, &docCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// Revision operations

func (r *Repository) CreateRevision(ctx context.Context, rev *simplerevision.Revision) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, exists := r.documents[rev.DocumentID]
	if !exists {
		return simplerevision.ErrDocumentNotFound
	}

	for _, existing := range r.revisions[rev.DocumentID] {
		if existing.Version == rev.Version {
			return simplerevision.ErrRevisionExists
		}
	}

	revCopy := *rev
	r.revisions[rev.DocumentID] = append(r.revisions[rev.DocumentID], &revCopy)
	doc.UpdatedAt = time.Now().UTC()

	return nil
}

func (r *Repository) GetRevisionByVersion(ctx context.Context, documentID uuid.UUID, version string) (*simplerevision.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.revisions[documentID] {
		if rev.Version == version {
			revCopy := *rev
			return &revCopy, nil
		}
	}

	return nil, simplerevision.ErrRevisionNotFound
}

func (r *Repository) GetLatestRevision(ctx context.Context, documentID uuid.UUID) (*simplerevision.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	revs := r.revisions[documentID]
	if len(revs) == 0 {
		return nil, simplerevision.ErrRevisionNotFound
	}

	revCopy := *revs[len(revs)-1]
	return &revCopy, nil
}

func (r *Repository) ListRevisions(ctx context.Context, documentID uuid.UUID) ([]*simplerevision.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	revs := r.revisions[documentID]
	result := make([]*simplerevision.Revision, 0, len(revs))
	for _, rev := range revs {
		revCopy := *rev
		result = append(result, &revCopy)
	}

	return result, nil
}

// Node-document link operations

func (r *Repository) CreateNodeLink(ctx context.Context, link *simplerevision.NodeDocumentLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.links[link.NodeID] {
		if existing.DocumentID == link.DocumentID {
			return simplerevision.ErrLinkExists
		}
	}

	linkCopy := *link
	r.links[link.NodeID] = append(r.links[link.NodeID], &linkCopy)

	return nil
}

func (r *Repository) DeleteNodeLink(ctx context.Context, nodeID, documentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	links := r.links[nodeID]
	for i, link := range links {
		if link.DocumentID == documentID {
			r.links[nodeID] = append(links[:i], links[i+1:]...)
			return nil
		}
	}

	return simplerevision.ErrLinkNotFound
}

func (r *Repository) ListNodeLinks(ctx context.Context, nodeID uuid.UUID) ([]*simplerevision.NodeDocumentLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	links := r.links[nodeID]
	result := make([]*simplerevision.NodeDocumentLink, 0, len(links))
	for _, link := range links {
		linkCopy := *link
		result = append(result, &linkCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].OrderPosition < result[j].OrderPosition
	})

	return result, nil
}

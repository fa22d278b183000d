package simplerevision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-revision/pkg/simplerevision/storagekey"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBaseWait = 100 * time.Millisecond
)

// service implements the Service interface
type service struct {
	repository    Repository
	blobStore     BlobStore
	keyGenerator  storagekey.Generator
	retryAttempts int
	retryBaseWait time.Duration
	logger        *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for revision content
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithKeyGenerator overrides the default storage key generator
func WithKeyGenerator(gen storagekey.Generator) Option {
	return func(s *service) {
		s.keyGenerator = gen
	}
}

// WithRetry configures the bounded retry applied to transient blob
// store failures: attempts tries total, waiting baseWait, 2*baseWait,
// 4*baseWait, ... between them.
func WithRetry(attempts int, baseWait time.Duration) Option {
	return func(s *service) {
		if attempts > 0 {
			s.retryAttempts = attempts
		}
		if baseWait > 0 {
			s.retryBaseWait = baseWait
		}
	}
}

// WithLogger sets the structured logger used by the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		keyGenerator:  storagekey.NewDocumentVersionGenerator(),
		retryAttempts: defaultRetryAttempts,
		retryBaseWait: defaultRetryBaseWait,
		logger:        slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// Document operations

func (s *service) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	now := time.Now().UTC()
	doc := &Document{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateDocument(ctx, doc); err != nil {
		return nil, &RevisionError{DocumentID: doc.ID, Op: "create_document", Err: err}
	}

	return doc, nil
}

func (s *service) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.repository.GetDocument(ctx, id)
}

func (s *service) ListDocuments(ctx context.Context) ([]*Document, error) {
	return s.repository.ListDocuments(ctx)
}

// Revision operations

// CreateRevision writes the content blob first and inserts the
// revision row second. The row insert is the durability boundary: a
// revision exists once and only once the insert succeeds. If a racing
// writer claims the same version, the freshly written blob is deleted
// best-effort and the caller gets ErrRevisionExists so it can retry
// against the recomputed latest version.
func (s *service) CreateRevision(ctx context.Context, req CreateRevisionRequest) (*Revision, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repository.GetDocument(ctx, req.DocumentID); err != nil {
		return nil, err
	}

	version, err := s.nextVersion(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	key := s.keyGenerator.GenerateKey(req.DocumentID, version)
	if err := s.putWithRetry(ctx, key, payload); err != nil {
		if errors.Is(err, ErrBlobExists) {
			// The key is derived from (document_id, version), so an
			// occupied key means another writer already owns this
			// version.
			return nil, &RevisionError{DocumentID: req.DocumentID, Version: version, Op: "create", Err: ErrRevisionExists}
		}
		return nil, &StorageError{Key: key, Op: "put", Err: err}
	}

	rev := &Revision{
		ID:            uuid.New(),
		DocumentID:    req.DocumentID,
		Version:       version,
		StorageKey:    key,
		ChangeSummary: req.ChangeSummary,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repository.CreateRevision(ctx, rev); err != nil {
		if errors.Is(err, ErrRevisionExists) {
			s.compensateBlob(ctx, key)
			return nil, &RevisionError{DocumentID: req.DocumentID, Version: version, Op: "create", Err: ErrRevisionExists}
		}

		consistency := &ConsistencyError{
			DocumentID: req.DocumentID,
			Version:    version,
			StorageKey: key,
			Err:        err,
		}
		s.logger.Error("revision insert failed after blob write",
			"document_id", req.DocumentID,
			"version", version,
			"storage_key", key,
			"error", err)
		return nil, consistency
	}

	return rev, nil
}

// nextVersion computes the server-generated version for the document's
// next revision. Concurrent callers may compute the same value; the
// unique constraint in the repository decides the winner.
func (s *service) nextVersion(ctx context.Context, req CreateRevisionRequest) (string, error) {
	latest, err := s.repository.GetLatestRevision(ctx, req.DocumentID)
	if errors.Is(err, ErrRevisionNotFound) {
		return InitialVersion, nil
	}
	if err != nil {
		return "", err
	}

	versionType := req.VersionType
	if versionType == "" {
		versionType = s.classifyChange(ctx, latest, req.Content)
	}
	return IncrementVersion(latest.Version, versionType)
}

// classifyChange derives the version bump from the shape of the change
// against the latest revision. When the latest content cannot be read
// the classification falls back to a minor bump rather than failing
// the write.
func (s *service) classifyChange(ctx context.Context, latest *Revision, content DocumentContent) VersionType {
	reader, err := s.blobStore.Get(ctx, latest.StorageKey)
	if err != nil {
		return VersionTypeMinor
	}
	defer reader.Close()

	var latestContent DocumentContent
	if err := json.NewDecoder(reader).Decode(&latestContent); err != nil {
		return VersionTypeMinor
	}

	return DetermineVersionType(latestContent, content)
}

// compensateBlob deletes an orphaned blob after a lost insert race.
// Failures are logged, not surfaced: the orphan scan will catch
// anything left behind.
func (s *service) compensateBlob(ctx context.Context, key string) {
	if err := s.blobStore.Delete(ctx, key); err != nil {
		s.logger.Warn("orphan blob cleanup failed", "storage_key", key, "error", err)
	}
}

func (s *service) ListRevisions(ctx context.Context, documentID uuid.UUID) ([]*Revision, error) {
	if _, err := s.repository.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.repository.ListRevisions(ctx, documentID)
}

func (s *service) GetRevision(ctx context.Context, documentID uuid.UUID, version string) (*Revision, error) {
	if version == "" {
		return s.repository.GetLatestRevision(ctx, documentID)
	}
	return s.repository.GetRevisionByVersion(ctx, documentID, version)
}

// Content operations

func (s *service) GetContent(ctx context.Context, documentID uuid.UUID, version string) (*DocumentContent, *Revision, error) {
	rev, err := s.GetRevision(ctx, documentID, version)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.getWithRetry(ctx, rev.StorageKey)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return nil, nil, fmt.Errorf("%w: content blob missing for %s", ErrRevisionNotFound, rev.StorageKey)
		}
		return nil, nil, &StorageError{Key: rev.StorageKey, Op: "get", Err: err}
	}
	defer reader.Close()

	var content DocumentContent
	if err := json.NewDecoder(reader).Decode(&content); err != nil {
		return nil, nil, &StorageError{Key: rev.StorageKey, Op: "decode", Err: err}
	}

	return &content, rev, nil
}

// Diff operations

func (s *service) GetDiff(ctx context.Context, documentID uuid.UUID, fromVersion, toVersion string) (*DiffResult, error) {
	fromContent, fromRev, err := s.GetContent(ctx, documentID, fromVersion)
	if err != nil {
		return nil, err
	}
	toContent, toRev, err := s.GetContent(ctx, documentID, toVersion)
	if err != nil {
		return nil, err
	}

	diff := ComputeDiff(*fromContent, *toContent)
	diff.FromVersion = fromRev.Version
	diff.ToVersion = toRev.Version
	return &diff, nil
}

// Node-document link operations

func (s *service) LinkNodeDocument(ctx context.Context, req LinkNodeDocumentRequest) (*NodeDocumentLink, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	if _, err := s.repository.GetDocument(ctx, req.DocumentID); err != nil {
		return nil, err
	}

	relationType := req.RelationType
	if relationType == "" {
		relationType = RelationTypePrimary
	}

	position := 0
	if req.OrderPosition != nil {
		position = *req.OrderPosition
	} else {
		existing, err := s.repository.ListNodeLinks(ctx, req.NodeID)
		if err != nil {
			return nil, err
		}
		for _, link := range existing {
			if link.OrderPosition >= position {
				position = link.OrderPosition + 1
			}
		}
	}

	link := &NodeDocumentLink{
		ID:            uuid.New(),
		NodeID:        req.NodeID,
		DocumentID:    req.DocumentID,
		OrderPosition: position,
		RelationType:  relationType,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repository.CreateNodeLink(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (s *service) UnlinkNodeDocument(ctx context.Context, nodeID, documentID uuid.UUID) error {
	return s.repository.DeleteNodeLink(ctx, nodeID, documentID)
}

func (s *service) ListNodeDocuments(ctx context.Context, nodeID uuid.UUID) ([]*NodeDocumentLink, error) {
	return s.repository.ListNodeLinks(ctx, nodeID)
}

// Retry helpers

// putWithRetry retries transient blob writes with exponential backoff.
// ErrBlobExists is terminal: the key is occupied and retrying cannot
// change that.
func (s *service) putWithRetry(ctx context.Context, key string, payload []byte) error {
	var lastErr error
	wait := s.retryBaseWait

	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
		}

		err := s.blobStore.Put(ctx, key, bytes.NewReader(payload))
		if err == nil || errors.Is(err, ErrBlobExists) {
			return err
		}
		lastErr = err
		s.logger.Warn("blob write failed, retrying", "storage_key", key, "attempt", attempt+1, "error", err)
	}

	return lastErr
}

func (s *service) getWithRetry(ctx context.Context, key string) (io.ReadCloser, error) {
	var lastErr error
	wait := s.retryBaseWait

	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
		}

		reader, err := s.blobStore.Get(ctx, key)
		if err == nil || errors.Is(err, ErrBlobNotFound) {
			return reader, err
		}
		lastErr = err
		s.logger.Warn("blob read failed, retrying", "storage_key", key, "attempt", attempt+1, "error", err)
	}

	return nil, lastErr
}

// Package scan reconciles the blob store against the revision
// repository. CreateRevision writes the content blob before the
// revision row, so a crash or lost insert race can leave blobs with no
// owning revision. A periodic scan finds and disposes of them.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tendant/simple-revision/pkg/simplerevision"
	"github.com/tendant/simple-revision/pkg/simplerevision/storagekey"
)

// Scanner walks revision content keys in a blob store and checks each
// one against the repository.
type Scanner struct {
	repo   simplerevision.Repository
	store  simplerevision.BlobStore
	logger *slog.Logger
}

// New creates a new Scanner instance.
func New(repo simplerevision.Repository, store simplerevision.BlobStore, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{repo: repo, store: store, logger: logger}
}

// Options configures the scan operation.
type Options struct {
	// Prefix limits the scan to keys under this prefix
	// (default: the documents/ content prefix)
	Prefix string

	// Processor defines what happens to each orphan
	// (required unless DryRun is true)
	Processor OrphanProcessor

	// DryRun if true, doesn't touch orphans, just reports them
	DryRun bool

	// OnProgress is called after each key is examined (optional)
	OnProgress func(scanned, orphans int)
}

// Result contains statistics about the scan operation.
type Result struct {
	// TotalScanned is the number of keys examined
	TotalScanned int

	// TotalSkipped is the number of keys not following the revision
	// content layout (foreign objects sharing the bucket)
	TotalSkipped int

	// TotalOrphans is the number of blobs with no matching revision row
	TotalOrphans int

	// TotalProcessed is the number of orphans successfully processed
	TotalProcessed int

	// TotalFailed is the number of orphans that failed processing
	TotalFailed int

	// OrphanKeys contains the keys identified as orphans
	OrphanKeys []string

	// FailedKeys contains the orphan keys that failed processing
	FailedKeys []string
}

// Scan lists keys under the prefix and processes every blob whose
// (document_id, version) has no revision row. Failures on individual
// orphans are recorded and the scan continues.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	if !opts.DryRun && opts.Processor == nil {
		return result, fmt.Errorf("processor is required when DryRun is false")
	}
	if opts.Prefix == "" {
		opts.Prefix = storagekey.Prefix
	}

	keys, err := s.store.List(ctx, opts.Prefix)
	if err != nil {
		return result, fmt.Errorf("failed to list blobs: %w", err)
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.TotalScanned++

		if err := s.examineKey(ctx, opts, result, key); err != nil {
			return result, err
		}

		if opts.OnProgress != nil {
			opts.OnProgress(result.TotalScanned, result.TotalOrphans)
		}
	}

	return result, nil
}

func (s *Scanner) examineKey(ctx context.Context, opts Options, result *Result, key string) error {
	documentID, version, ok := storagekey.ParseKey(key)
	if !ok {
		result.TotalSkipped++
		return nil
	}

	_, err := s.repo.GetRevisionByVersion(ctx, documentID, version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, simplerevision.ErrRevisionNotFound) {
		return fmt.Errorf("failed to look up revision for %s: %w", key, err)
	}

	result.TotalOrphans++
	result.OrphanKeys = append(result.OrphanKeys, key)

	if opts.DryRun {
		s.logger.Info("orphan blob found",
			"storage_key", key,
			"document_id", documentID,
			"version", version)
		return nil
	}

	orphan := Orphan{Key: key, DocumentID: documentID, Version: version}
	if err := opts.Processor.Process(ctx, orphan); err != nil {
		result.TotalFailed++
		result.FailedKeys = append(result.FailedKeys, key)
		s.logger.Error("orphan processing failed", "storage_key", key, "error", err)
		return nil
	}
	result.TotalProcessed++

	return nil
}

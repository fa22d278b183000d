package scan

import (
	"context"

	"github.com/google/uuid"
	"github.com/tendant/simple-revision/pkg/simplerevision"
)

// Orphan is a content blob with no matching revision row: the remnant
// of a CreateRevision that wrote its blob but lost the metadata insert.
type Orphan struct {
	Key        string
	DocumentID uuid.UUID
	Version    string
}

// OrphanProcessor handles individual orphaned blobs found during a
// scan. External apps implement this to define custom handling, such
// as moving the blob to a quarantine prefix or emitting an event.
type OrphanProcessor interface {
	// Process is called for each orphan found during scan. Return an
	// error to mark this orphan as failed (the scan continues with the
	// next one).
	Process(ctx context.Context, orphan Orphan) error
}

// OrphanProcessorFunc adapts a function to the OrphanProcessor
// interface.
type OrphanProcessorFunc func(ctx context.Context, orphan Orphan) error

func (f OrphanProcessorFunc) Process(ctx context.Context, orphan Orphan) error {
	return f(ctx, orphan)
}

// DeleteProcessor removes orphaned blobs from the store.
type DeleteProcessor struct {
	Store simplerevision.BlobStore
}

func (p *DeleteProcessor) Process(ctx context.Context, orphan Orphan) error {
	return p.Store.Delete(ctx, orphan.Key)
}

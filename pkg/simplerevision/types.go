package simplerevision

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RelationType is the domain type for node-document relation kinds.
type RelationType string

// Relation type constants (typed).
const (
	RelationTypePrimary   RelationType = "primary"
	RelationTypeReference RelationType = "reference"
	RelationTypeExample   RelationType = "example"
)

// IsValid reports whether the relation type is one of the known kinds.
func (r RelationType) IsValid() bool {
	switch r {
	case RelationTypePrimary, RelationTypeReference, RelationTypeExample:
		return true
	}
	return false
}

// VersionType selects which component of a semantic version is
// incremented when the server generates the next revision version.
type VersionType string

// Version type constants (typed).
const (
	VersionTypeMajor VersionType = "major"
	VersionTypeMinor VersionType = "minor"
	VersionTypePatch VersionType = "patch"
)

// IsValid reports whether the version type is one of the known kinds.
func (v VersionType) IsValid() bool {
	switch v {
	case VersionTypeMajor, VersionTypeMinor, VersionTypePatch:
		return true
	}
	return false
}

// Document represents a logical document entity. Content is never
// stored on the document itself; it lives in immutable revisions.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Revision represents one immutable, versioned snapshot of a
// document's content. The content itself is addressed by StorageKey in
// a blob store; the revision row carries only metadata. Revisions are
// append-only: there is no update or delete path.
type Revision struct {
	ID            uuid.UUID `json:"id"`
	DocumentID    uuid.UUID `json:"document_id"`
	Version       string    `json:"version"`
	StorageKey    string    `json:"storage_key"`
	ChangeSummary string    `json:"change_summary,omitempty"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// Section is a titled content unit within a document. Sections are the
// atomic unit for diffing: they are matched across revisions by title,
// with Order used only to break ties between duplicate titles.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// UnmarshalJSON requires the content field to be present. Empty content
// is legal; a section payload without a content key is not.
func (s *Section) UnmarshalJSON(data []byte) error {
	var aux struct {
		Title   string  `json:"title"`
		Content *string `json:"content"`
		Order   int     `json:"order"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Content == nil {
		return fmt.Errorf("%w: section %q is missing the content field", ErrInvalidContent, aux.Title)
	}

	s.Title = aux.Title
	s.Content = *aux.Content
	s.Order = aux.Order
	return nil
}

// DocumentContent is the blob payload for one revision. The repository
// layer treats it as opaque bytes; only the diff engine and the API
// layer interpret its structure.
//
// Meta carries forward-compatible fields that are not part of the known
// shape. Unknown keys round-trip through storage untouched.
type DocumentContent struct {
	Title    string         `json:"title"`
	Sections []Section      `json:"sections"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// NodeDocumentLink associates a roadmap graph node with a document.
// Links have an independent lifecycle: removing a link never touches
// the document or its revisions.
type NodeDocumentLink struct {
	ID            uuid.UUID    `json:"id"`
	NodeID        uuid.UUID    `json:"node_id"`
	DocumentID    uuid.UUID    `json:"document_id"`
	OrderPosition int          `json:"order_position"`
	RelationType  RelationType `json:"relation_type"`
	CreatedAt     time.Time    `json:"created_at"`
}

// SectionChange pairs the old and new state of a section whose content
// changed between two revisions.
type SectionChange struct {
	Old Section `json:"old_section"`
	New Section `json:"new_section"`
}

// DiffResult is the section-level structural diff between two
// revisions. Unchanged sections are omitted.
type DiffResult struct {
	FromVersion      string          `json:"from_version"`
	ToVersion        string          `json:"to_version"`
	SectionsAdded    []Section       `json:"sections_added"`
	SectionsRemoved  []Section       `json:"sections_removed"`
	SectionsModified []SectionChange `json:"sections_modified"`
}

// Empty reports whether the diff contains no changes.
func (d *DiffResult) Empty() bool {
	return len(d.SectionsAdded) == 0 && len(d.SectionsRemoved) == 0 && len(d.SectionsModified) == 0
}

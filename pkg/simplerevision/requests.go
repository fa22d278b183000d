package simplerevision

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateDocumentRequest contains parameters for creating a document
type CreateDocumentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Validate validates the create document request
func (r CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
	)
}

// CreateRevisionRequest contains parameters for creating a revision.
// The version is always server-generated: VersionType selects which
// semantic version component is incremented relative to the latest
// revision. When empty, the bump is classified from the shape of the
// change (see DetermineVersionType). The first revision of a document
// is always InitialVersion.
type CreateRevisionRequest struct {
	DocumentID    uuid.UUID       `json:"document_id"`
	Content       DocumentContent `json:"content"`
	ChangeSummary string          `json:"change_summary,omitempty"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	VersionType   VersionType     `json:"version_type,omitempty"`
}

// Validate validates the create revision request, including the
// structural validation of the content payload.
func (r CreateRevisionRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.DocumentID, validation.Required, validation.By(validUUID)),
	); err != nil {
		return err
	}
	if r.VersionType != "" && !r.VersionType.IsValid() {
		return fmt.Errorf("%w: unknown version type %q", ErrInvalidContent, r.VersionType)
	}
	return r.Content.Validate()
}

// Validate checks the structural shape of a content payload: a
// non-empty document title and a present (possibly empty) section list
// whose entries each carry a title.
func (c DocumentContent) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Sections, validation.NotNil, validation.Each(validation.By(validSection))),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return nil
}

func validSection(value interface{}) error {
	sec, ok := value.(Section)
	if !ok {
		return fmt.Errorf("expected a section")
	}
	return validation.ValidateStruct(&sec,
		validation.Field(&sec.Title, validation.Required),
		validation.Field(&sec.Order, validation.Min(0)),
	)
}

func validUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return fmt.Errorf("a valid id is required")
	}
	return nil
}

// LinkNodeDocumentRequest contains parameters for associating a graph
// node with a document. RelationType defaults to primary; a nil
// OrderPosition appends the link after the node's existing links.
type LinkNodeDocumentRequest struct {
	NodeID        uuid.UUID    `json:"node_id"`
	DocumentID    uuid.UUID    `json:"document_id"`
	RelationType  RelationType `json:"relation_type,omitempty"`
	OrderPosition *int         `json:"order_position,omitempty"`
}

// Validate validates the link request
func (r LinkNodeDocumentRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.NodeID, validation.By(validUUID)),
		validation.Field(&r.DocumentID, validation.By(validUUID)),
	); err != nil {
		return err
	}
	if r.RelationType != "" && !r.RelationType.IsValid() {
		return fmt.Errorf("unknown relation type %q", r.RelationType)
	}
	return nil
}
